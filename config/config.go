// Package config assembles runtime settings from the environment.
package config

import (
	"fmt"
	"os"
)

// Settings holds everything the process needs to run. Populated once at
// startup; treated as read-only afterwards.
type Settings struct {
	// TelegramToken authenticates the bot with the chat transport.
	TelegramToken string
	// TMDBAPIKey authenticates requests to the metadata provider.
	TMDBAPIKey string
	// DatabaseDSN is the connection string for the library store.
	DatabaseDSN string

	// BotLanguage selects the UI string table.
	BotLanguage string
	// TMDBLanguage is passed through to the metadata provider.
	TMDBLanguage string

	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFile, when set, mirrors logs into a size-rotated file.
	LogFile string
	// StatusAddr, when set, serves /healthz and /readyz on that address.
	StatusAddr string
}

const (
	defaultBotLanguage  = "en"
	defaultTMDBLanguage = "en-US"
	defaultLogLevel     = "info"
)

// FromEnv reads settings from environment variables. The three secrets
// the process cannot run without are required; everything else has a
// sensible default or is optional.
func FromEnv() (*Settings, error) {
	s := &Settings{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		TMDBAPIKey:    os.Getenv("TMDB_API_KEY"),
		DatabaseDSN:   os.Getenv("DATABASE_DSN"),
		BotLanguage:   envOrDefault("BOT_LANGUAGE", defaultBotLanguage),
		TMDBLanguage:  envOrDefault("TMDB_LANGUAGE", defaultTMDBLanguage),
		LogLevel:      envOrDefault("LOG_LEVEL", defaultLogLevel),
		LogFile:       os.Getenv("LOG_FILE"),
		StatusAddr:    os.Getenv("STATUS_ADDR"),
	}

	if s.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN not set")
	}
	if s.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY not set")
	}
	if s.DatabaseDSN == "" {
		return nil, fmt.Errorf("DATABASE_DSN not set")
	}

	return s, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
