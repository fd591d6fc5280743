// Package httpkit is what service modules import for routing and handler adapters
// so they never reach into internal/platform/net/http directly
package httpkit

import (
	"context"
	"net/http"

	phttp "postpilot/internal/platform/net/http"
	"postpilot/internal/platform/net/http/bind"
)

type (
	// Envelope is the wire shape every response uses
	Envelope = phttp.Envelope
	// Response lets a handler choose its status
	Response = phttp.Response
	// Handler is the platform handler type
	Handler = phttp.Handler
	// Router is the platform router seam
	Router = phttp.Router
)

// OK returns a 200 response
func OK(data any) Response { return phttp.OK(data) }

// Created returns a 201 response
func Created(data any) Response { return phttp.Created(data) }

// NoContent returns a 204 response
func NoContent() Response { return phttp.NoContent() }

// Error maps err to its status and envelope
func Error(err error) Response { return phttp.Error(err) }

// AuthFunc adapts a plain function to middleware.AuthPort
type AuthFunc func(r *http.Request) (context.Context, error)

// Authenticate calls f
func (f AuthFunc) Authenticate(r *http.Request) (context.Context, error) { return f(r) }

// JSON binds and validates the body into T before calling fn
// fn may return a Response to pick its own status
func JSON[T any](fn func(*http.Request, T) (any, error)) Handler {
	return Call(func(r *http.Request) (any, error) {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return nil, err
		}
		return fn(r, in)
	})
}

// Call adapts a handler that takes no JSON body
func Call(fn func(*http.Request) (any, error)) Handler {
	return phttp.Handle(func(r *http.Request) Response {
		out, err := fn(r)
		if err != nil {
			return phttp.Error(err)
		}
		if resp, ok := out.(Response); ok {
			return resp
		}
		return phttp.OK(out)
	})
}

// Get mounts a body-less handler under GET
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, Call(h)) }

// Post mounts a body-less handler under POST
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, Call(h)) }

// Delete mounts a body-less handler under DELETE
func Delete(r Router, path string, h func(*http.Request) (any, error)) { r.Delete(path, Call(h)) }

// PostJSON mounts a bound JSON handler under POST
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, JSON(h))
}
