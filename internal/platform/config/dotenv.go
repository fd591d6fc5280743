package config

import (
	"os"

	"postpilot/internal/platform/logger"

	"github.com/joho/godotenv"
)

// DefaultEnvFiles are read by LoadDotEnv when no files are named
var DefaultEnvFiles = []string{".env.local", ".env"}

// LoadDotEnv reads env files into the process environment and returns the ones loaded
// earlier files win over later ones and the real environment wins over all of them
// missing files are skipped
func LoadDotEnv(files ...string) []string {
	if len(files) == 0 {
		files = DefaultEnvFiles
	}
	loaded := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			logger.Get().Warn().Err(err).Str("file", f).Msg("env file not loaded")
			continue
		}
		loaded = append(loaded, f)
	}
	if len(loaded) == 0 {
		logger.Get().Debug().Msg("no env files loaded, using process environment")
	} else {
		logger.Get().Debug().Strs("files", loaded).Msg("env files loaded")
	}
	return loaded
}
