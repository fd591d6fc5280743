// Package domain holds DTOs for the LinkedIn auth http and service contracts
package domain

// TokenInput is the authorization code the browser came back with
type TokenInput struct {
	Code        string `json:"code"         validate:"required,max=2048" example:"AQTx9kz..."`
	RedirectURI string `json:"redirect_uri" validate:"required,url,max=2048" example:"http://localhost:5173/auth/callback"`
}

// AuthorizeURLQuery builds the browser redirect that starts the flow
type AuthorizeURLQuery struct {
	RedirectURI string   `json:"redirect_uri" validate:"required,url" example:"http://localhost:5173/auth/callback"`
	State       string   `json:"state,omitempty" validate:"omitempty,max=256" example:"d6f1c0"`
	Scopes      []string `json:"scopes,omitempty" example:"openid,profile,email,w_member_social"`
}

// AuthorizeURLOutput is the url the client should navigate to
type AuthorizeURLOutput struct {
	URL string `json:"url" example:"https://www.linkedin.com/oauth/v2/authorization?client_id=..."`
}

// MeOutput is the signed in member
// person_urn and email are null when LinkedIn did not return them
type MeOutput struct {
	ID        string  `json:"id"                   example:"abcd123"`
	PersonURN *string `json:"person_urn"           example:"urn:li:person:abcd123"`
	Name      string  `json:"name"                 example:"Ada Lovelace"`
	Email     *string `json:"email"                example:"ada@example.com"`
	SessionID string  `json:"session_id,omitempty" example:"5b1f7f0e-8d0c-4a63-9f1e-7f3b1d2f9c11"`
}

// Request headers that carry credentials
const (
	HeaderAccessToken = "access-token"
	HeaderPersonURN   = "person-urn"
	HeaderSessionID   = "X-Session-ID"
)

// Hints are the credential sources a request can carry
type Hints struct {
	AccessToken string
	PersonURN   string
	SessionID   string
}

// Any reports whether the caller sent header credentials
func (h Hints) Any() bool { return h.AccessToken != "" || h.PersonURN != "" }
