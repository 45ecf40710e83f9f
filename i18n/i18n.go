// Package i18n loads the bot's user-facing string tables.
//
// Locales are JSON files embedded at build time, two levels deep
// (category -> key). Lookups use the flattened "Category.Key" form.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
)

//go:embed locales/*.json
var localeFiles embed.FS

const fallbackLanguage = "en"

// Bundle is an immutable string table for one language.
type Bundle struct {
	language string
	strings  map[string]string
}

// Load reads the string table for the given language code. An unknown
// language falls back to English rather than failing startup.
func Load(language string) (*Bundle, error) {
	data, err := localeFiles.ReadFile("locales/" + language + ".json")
	if err != nil {
		if language == fallbackLanguage {
			return nil, fmt.Errorf("failed to read locale %q: %w", language, err)
		}
		slog.Warn("i18n.locale_missing", "language", language, "fallback", fallbackLanguage)
		return Load(fallbackLanguage)
	}

	var nested map[string]map[string]string
	if err := json.Unmarshal(data, &nested); err != nil {
		return nil, fmt.Errorf("failed to parse locale %q: %w", language, err)
	}

	flat := make(map[string]string)
	for category, entries := range nested {
		for key, value := range entries {
			flat[category+"."+key] = value
		}
	}

	return &Bundle{language: language, strings: flat}, nil
}

// Language returns the language code the bundle was loaded for.
func (b *Bundle) Language() string {
	return b.language
}

// Get returns the string for the flattened key, substituting args
// fmt-style. A missing key renders as "[key]" so broken lookups are
// visible in chat instead of silently blank.
func (b *Bundle) Get(key string, args ...any) string {
	msg, ok := b.strings[key]
	if !ok {
		slog.Warn("i18n.key_missing", "key", key, "language", b.language)
		return "[" + key + "]"
	}
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}
