package linkedin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

const (
	opExchange = "exchange_code"
	opProfile  = "fetch_profile"
	opEmail    = "fetch_email"

	personURNPrefix = "urn:li:person:"
)

// DefaultScopes are requested by AuthorizeURL when the caller passes none
var DefaultScopes = []string{"openid", "profile", "email", "w_member_social"}

// TokenPayload is the token endpoint response
// Raw keeps the upstream body verbatim and is what gets marshaled back out
type TokenPayload struct {
	AccessToken           string `json:"access_token"`
	ExpiresIn             int64  `json:"expires_in,omitempty"`
	Scope                 string `json:"scope,omitempty"`
	RefreshToken          string `json:"refresh_token,omitempty"`
	RefreshTokenExpiresIn int64  `json:"refresh_token_expires_in,omitempty"`
	IDToken               string `json:"id_token,omitempty"`

	Raw json.RawMessage `json:"-"`
}

// MarshalJSON returns the upstream payload untouched when we have it
func (t TokenPayload) MarshalJSON() ([]byte, error) {
	if len(t.Raw) > 0 {
		return t.Raw, nil
	}
	type plain TokenPayload
	return json.Marshal(plain(t))
}

// Identity is what FetchIdentity derives from the profile and email reads
type Identity struct {
	// ID is the opaque profile id, empty when the profile carried none
	ID string `json:"id"`
	// ActorID is urn:li:person:{id}, empty when ID is empty
	ActorID string `json:"person_urn"`
	Name    string `json:"name"`
	// Email is nil when the email read had no usable handle
	Email *string `json:"email"`
}

// HasActor reports whether a publishable actor urn was derived
func (i Identity) HasActor() bool { return i.ActorID != "" }

// ActorURN applies the person urn template, empty id gives empty urn
func ActorURN(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	return personURNPrefix + id
}

// AuthorizeURL builds the browser redirect that starts the authorization code flow
func (c *Client) AuthorizeURL(redirectURI, state string, scopes []string) (string, error) {
	if strings.TrimSpace(redirectURI) == "" {
		return "", &Error{Kind: KindInvalidRequest, Op: "authorize_url", Msg: "redirect_uri is required"}
	}
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.opts.ClientID)
	q.Set("redirect_uri", redirectURI)
	q.Set("scope", strings.Join(scopes, " "))
	if state != "" {
		q.Set("state", state)
	}
	return c.opts.AuthBaseURL + "/oauth/v2/authorization?" + q.Encode(), nil
}

// ExchangeCode trades an authorization code for an access token
// it does not store the result anywhere, that is the caller's call
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (TokenPayload, error) {
	code = strings.TrimSpace(code)
	redirectURI = strings.TrimSpace(redirectURI)
	if code == "" || redirectURI == "" {
		return TokenPayload{}, &Error{Kind: KindInvalidRequest, Op: opExchange, Msg: "missing code or redirect_uri"}
	}

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("client_id", c.opts.ClientID)
	form.Set("client_secret", c.opts.ClientSecret)

	req, err := c.newRequest(ctx, http.MethodPost, c.opts.AuthBaseURL+"/oauth/v2/accessToken", strings.NewReader(form.Encode()), "")
	if err != nil {
		return TokenPayload{}, &Error{Kind: KindInvalidRequest, Op: opExchange, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	rep, err := c.do(opExchange, req)
	if err != nil {
		return TokenPayload{}, err
	}
	if rep.Status != http.StatusOK {
		return TokenPayload{}, c.fail(KindUpstreamAuth, opExchange, req, rep, "token exchange refused")
	}

	var tok TokenPayload
	if err := json.Unmarshal(rep.Body, &tok); err != nil || strings.TrimSpace(tok.AccessToken) == "" {
		return TokenPayload{}, c.fail(KindUpstreamAuth, opExchange, req, rep, "no access token received")
	}
	tok.Raw = append(json.RawMessage(nil), rep.Body...)
	return tok, nil
}

// Profile is the subset of /v2/me we read
type Profile struct {
	ID                 string `json:"id"`
	LocalizedFirstName string `json:"localizedFirstName"`
	LocalizedLastName  string `json:"localizedLastName"`
}

// FetchIdentity reads profile then email with the given token
func (c *Client) FetchIdentity(ctx context.Context, accessToken string) (Identity, error) {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return Identity{}, &Error{Kind: KindInvalidRequest, Op: opProfile, Msg: "access token is required"}
	}

	prof, err := c.FetchProfile(ctx, accessToken)
	if err != nil {
		return Identity{}, err
	}

	req, err := c.newRequest(ctx, http.MethodGet,
		c.opts.APIBaseURL+"/v2/emailAddress?q=members&projection=(elements*(handle~))", nil, accessToken)
	if err != nil {
		return Identity{}, &Error{Kind: KindInvalidRequest, Op: opEmail, Err: err}
	}
	rep, err := c.do(opEmail, req)
	if err != nil {
		return Identity{}, err
	}
	if rep.Status != http.StatusOK {
		return Identity{}, c.fail(KindUpstreamAuth, opEmail, req, rep, "email read refused")
	}

	id := Identity{
		ID:      prof.ID,
		ActorID: ActorURN(prof.ID),
		Name:    strings.TrimSpace(prof.LocalizedFirstName + " " + prof.LocalizedLastName),
	}
	if email, ok := ParseEmail(rep.Body); ok {
		id.Email = &email
	} else {
		c.log.Debug().Str("op", opEmail).Msg("no email handle in response")
	}
	return id, nil
}

// FetchProfile does the bearer profile read on its own; the agent start path uses it to check a token
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, c.opts.APIBaseURL+"/v2/me", nil, accessToken)
	if err != nil {
		return Profile{}, &Error{Kind: KindInvalidRequest, Op: opProfile, Err: err}
	}
	rep, err := c.do(opProfile, req)
	if err != nil {
		return Profile{}, err
	}
	if rep.Status != http.StatusOK {
		return Profile{}, c.fail(KindUpstreamAuth, opProfile, req, rep, "profile read refused")
	}
	var p Profile
	if err := json.Unmarshal(rep.Body, &p); err != nil {
		return Profile{}, c.fail(KindUpstreamAuth, opProfile, req, rep, "malformed profile")
	}
	return p, nil
}

// ParseEmail pulls elements[0]["handle~"].emailAddress out of an email read
// absent or malformed input gives ("", false) and never an error
func ParseEmail(body []byte) (string, bool) {
	var doc struct {
		Elements []struct {
			Handle *struct {
				EmailAddress string `json:"emailAddress"`
			} `json:"handle~"`
		} `json:"elements"`
	}
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", false
	}
	if len(doc.Elements) == 0 || doc.Elements[0].Handle == nil {
		return "", false
	}
	email := strings.TrimSpace(doc.Elements[0].Handle.EmailAddress)
	if email == "" {
		return "", false
	}
	return email, true
}
