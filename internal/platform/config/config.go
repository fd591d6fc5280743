// Package config reads settings from the environment through prefixed views
// e.g. New().Prefix("LINKEDIN_").MustString("CLIENT_ID") reads LINKEDIN_CLIENT_ID
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"postpilot/internal/platform/logger"
)

// Conf is a namespaced view over environment variables
type Conf struct{ prefix string }

// New returns the unprefixed root view
func New() Conf { return Conf{} }

// Prefix returns a child view, e.g. root.Prefix("CORE_API_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

func (c Conf) lookup(key string) (name, val string) {
	name = c.prefix + key
	return name, strings.TrimSpace(os.Getenv(name))
}

// MustString panics when the key is unset or blank
func (c Conf) MustString(key string) string {
	name, v := c.lookup(key)
	if v == "" {
		logger.Get().Panic().Str("key", name).Msg("missing required env")
	}
	return v
}

// MayString returns def when the key is unset or blank
func (c Conf) MayString(key, def string) string {
	if _, v := c.lookup(key); v != "" {
		return v
	}
	return def
}

// may parses the key with parse; a bad value logs a warning and falls back to def
func may[T any](c Conf, key string, def T, parse func(string) (T, error)) T {
	name, s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", name).Str("value", s).Interface("default", def).Msg("invalid env value, using default")
		return def
	}
	return v
}

// MayInt reads a base 10 int
func (c Conf) MayInt(key string, def int) int { return may(c, key, def, strconv.Atoi) }

// MayBool accepts what strconv.ParseBool accepts
func (c Conf) MayBool(key string, def bool) bool { return may(c, key, def, strconv.ParseBool) }

// MayDuration reads a Go duration such as 250ms or 2m
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return may(c, key, def, time.ParseDuration)
}

// MayCSV splits on commas and drops blanks; def when nothing is left
func (c Conf) MayCSV(key string, def []string) []string {
	_, s := c.lookup(key)
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
