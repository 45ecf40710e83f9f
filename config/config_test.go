package config

import (
	"strings"
	"testing"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("TMDB_API_KEY", "key")
	t.Setenv("DATABASE_DSN", "/tmp/kinoteka.db")
}

func TestFromEnvDefaults(t *testing.T) {
	setRequired(t)

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if s.BotLanguage != "en" {
		t.Errorf("BotLanguage = %q, want en", s.BotLanguage)
	}
	if s.TMDBLanguage != "en-US" {
		t.Errorf("TMDBLanguage = %q, want en-US", s.TMDBLanguage)
	}
	if s.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", s.LogLevel)
	}
	if s.LogFile != "" || s.StatusAddr != "" {
		t.Errorf("optional settings should default empty, got %q / %q", s.LogFile, s.StatusAddr)
	}
}

func TestFromEnvOverrides(t *testing.T) {
	setRequired(t)
	t.Setenv("BOT_LANGUAGE", "ru")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STATUS_ADDR", ":8080")

	s, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv() error = %v", err)
	}
	if s.BotLanguage != "ru" || s.LogLevel != "debug" || s.StatusAddr != ":8080" {
		t.Errorf("overrides not applied: %+v", s)
	}
}

func TestFromEnvRequiredSettings(t *testing.T) {
	for _, key := range []string{"TELEGRAM_TOKEN", "TMDB_API_KEY", "DATABASE_DSN"} {
		t.Run(key, func(t *testing.T) {
			setRequired(t)
			t.Setenv(key, "")

			_, err := FromEnv()
			if err == nil || !strings.Contains(err.Error(), key) {
				t.Fatalf("FromEnv() error = %v, want mention of %s", err, key)
			}
		})
	}
}
