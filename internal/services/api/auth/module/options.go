package module

import (
	"time"

	"postpilot/internal/adapters/linkedin"
	"postpilot/internal/platform/config"
)

// Options controls the LinkedIn client and session lifetime
type Options struct {
	ClientID     string
	ClientSecret string
	AuthBaseURL  string
	APIBaseURL   string
	UserAgent    string
	Timeout      time.Duration
	Scopes       []string

	// MediaRoot bounds image uploads, empty disables them
	MediaRoot string

	SessionTTL    time.Duration
	SessionPrefix string
}

// FromConfig reads LINKEDIN_* and SESSION_* values from process config/env
// LINKEDIN_MEDIA_ROOT unset leaves image uploads disabled
// client id and secret are required
func FromConfig(cfg config.Conf) Options {
	lc := cfg.Prefix("LINKEDIN_")
	sc := cfg.Prefix("SESSION_")
	return Options{
		ClientID:      lc.MustString("CLIENT_ID"),
		ClientSecret:  lc.MustString("CLIENT_SECRET"),
		AuthBaseURL:   lc.MayString("AUTH_BASE", ""),
		APIBaseURL:    lc.MayString("API_BASE", ""),
		UserAgent:     lc.MayString("UA", "postpilot"),
		Timeout:       lc.MayDuration("TIMEOUT", 15*time.Second),
		Scopes:        lc.MayCSV("SCOPES", linkedin.DefaultScopes),
		MediaRoot:     lc.MayString("MEDIA_ROOT", ""),
		SessionTTL:    sc.MayDuration("TTL", 24*time.Hour),
		SessionPrefix: sc.MayString("KEY_PREFIX", ""),
	}
}
