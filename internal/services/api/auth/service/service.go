// Package service contains the LinkedIn sign in flow and credential resolution
package service

import (
	"context"
	"strings"
	"time"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/core/credentials"
	"postpilot/internal/platform/logger"
	"postpilot/internal/services/api/auth/domain"

	"github.com/google/uuid"
)

// Service defines the auth service contract
type Service interface {
	domain.ServicePort
}

// Options tunes session handling and the requested scopes
type Options struct {
	// Sessions is optional; without it /me only fills the legacy slot
	Sessions   credentials.Keyed
	SessionTTL time.Duration
	Scopes     []string
}

// Svc implements the auth service
type Svc struct {
	li    domain.LinkedInPort
	slot  *credentials.Slot
	opts  Options
	newID func() string
	log   *logger.Logger
}

// New constructs an auth service
func New(li domain.LinkedInPort, slot *credentials.Slot, opts Options) *Svc {
	if li == nil {
		panic("auth.Service requires a non nil LinkedInPort")
	}
	if slot == nil {
		panic("auth.Service requires a non nil credential Slot")
	}
	return &Svc{
		li:    li,
		slot:  slot,
		opts:  opts,
		newID: uuid.NewString,
		log:   logger.Named("auth"),
	}
}

// Token exchanges an authorization code and returns the upstream payload untouched
func (s *Svc) Token(ctx context.Context, in domain.TokenInput) (linkedin.TokenPayload, error) {
	tok, err := s.li.ExchangeCode(ctx, in.Code, in.RedirectURI)
	if err != nil {
		return linkedin.TokenPayload{}, err
	}
	s.log.Info().Str("redirect_uri", in.RedirectURI).Int64("expires_in", tok.ExpiresIn).Msg("linkedin code exchanged")
	return tok, nil
}

// Me reads the member behind accessToken and parks the pair for later publishes
// the slot is always written; a session is minted only when a keyed store is wired
func (s *Svc) Me(ctx context.Context, accessToken string) (domain.MeOutput, error) {
	id, err := s.li.FetchIdentity(ctx, accessToken)
	if err != nil {
		return domain.MeOutput{}, err
	}

	out := domain.MeOutput{ID: id.ID, Name: id.Name, Email: id.Email}
	if !id.HasActor() {
		// a half pair would clobber a usable slot
		s.log.Warn().Msg("linkedin profile has no id, credentials not stored")
		return out, nil
	}
	urn := id.ActorID
	out.PersonURN = &urn

	s.slot.Set(strings.TrimSpace(accessToken), id.ActorID)

	if s.opts.Sessions != nil {
		sid := s.newID()
		if err := s.opts.Sessions.Put(ctx, sid, credentials.New(accessToken, id.ActorID), s.opts.SessionTTL); err != nil {
			return domain.MeOutput{}, err
		}
		out.SessionID = sid
	}

	s.log.Info().Str("actor", id.ActorID).Bool("session", out.SessionID != "").Msg("linkedin identity resolved")
	return out, nil
}

// AuthorizeURL builds the LinkedIn consent url
func (s *Svc) AuthorizeURL(in domain.AuthorizeURLQuery) (domain.AuthorizeURLOutput, error) {
	scopes := in.Scopes
	if len(scopes) == 0 {
		scopes = s.opts.Scopes
	}
	u, err := s.li.AuthorizeURL(in.RedirectURI, in.State, scopes)
	if err != nil {
		return domain.AuthorizeURLOutput{}, err
	}
	return domain.AuthorizeURLOutput{URL: u}, nil
}
