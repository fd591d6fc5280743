package service

import (
	"context"

	"postpilot/internal/core/credentials"
	perr "postpilot/internal/platform/errors"
	"postpilot/internal/services/api/auth/domain"
)

var (
	errHalfPair = perr.New(perr.ErrorCodeUnauthorized, "access-token and person-urn headers must be sent together")
	errNoCreds  = perr.New(perr.ErrorCodeUnauthorized, "no linkedin credentials, sign in through /auth/linkedin/me first")
)

// Resolve picks the credentials a request runs under
// explicit headers win, then a session id, then the legacy process slot
func (s *Svc) Resolve(ctx context.Context, h domain.Hints) (credentials.Credentials, error) {
	if h.Any() {
		c := credentials.New(h.AccessToken, h.PersonURN)
		if !c.Complete() {
			return credentials.Credentials{}, errHalfPair
		}
		return c, nil
	}

	if h.SessionID != "" {
		if s.opts.Sessions == nil {
			return credentials.Credentials{}, credentials.ErrSessionNotFound
		}
		c, err := s.opts.Sessions.Get(ctx, h.SessionID)
		if err != nil {
			return credentials.Credentials{}, err
		}
		if !c.Complete() {
			return credentials.Credentials{}, errNoCreds
		}
		return c, nil
	}

	if c := s.slot.Credentials(); c.Complete() {
		return c, nil
	}
	return credentials.Credentials{}, errNoCreds
}

// Logout forgets a session; unknown ids are not an error
func (s *Svc) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return perr.WithField(perr.New(perr.ErrorCodeValidation, "session id is required"), domain.HeaderSessionID)
	}
	if s.opts.Sessions == nil {
		return nil
	}
	return s.opts.Sessions.Delete(ctx, sessionID)
}
