// Package net provides utilities for working with request contexts
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// ctxKey is an unexported key type for context values
type ctxKey string

const (
	keySessionID ctxKey = "session_id"
	keyActorID   ctxKey = "actor_id"
)

// WithRequest annotates context with common request scoped ids
func WithRequest(ctx context.Context, reqID, sessionID string) context.Context {
	if reqID != "" {
		// set chi RequestID so chimw.GetReqID can retrieve it
		ctx = context.WithValue(ctx, chimw.RequestIDKey, reqID)
	}
	if sessionID != "" {
		ctx = context.WithValue(ctx, keySessionID, sessionID)
	}
	return ctx
}

// WithActor annotates context with the resolved LinkedIn actor urn
func WithActor(ctx context.Context, actorID string) context.Context {
	if actorID != "" {
		ctx = context.WithValue(ctx, keyActorID, actorID)
	}
	return ctx
}

// RequestID returns the request id on the context if present
func RequestID(ctx context.Context) string {
	if v := chimw.GetReqID(ctx); v != "" {
		return v
	}
	return ""
}

// SessionID returns the session id on the context if present
func SessionID(ctx context.Context) string {
	if v, ok := ctx.Value(keySessionID).(string); ok {
		return v
	}
	return ""
}

// ActorID returns the actor urn on the context if present
func ActorID(ctx context.Context) string {
	if v, ok := ctx.Value(keyActorID).(string); ok {
		return v
	}
	return ""
}
