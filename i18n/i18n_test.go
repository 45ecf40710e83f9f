package i18n

import (
	"strings"
	"testing"
)

func TestLoadKnownLanguages(t *testing.T) {
	for _, lang := range []string{"en", "ru"} {
		b, err := Load(lang)
		if err != nil {
			t.Fatalf("Load(%q) error = %v", lang, err)
		}
		if b.Language() != lang {
			t.Errorf("Language() = %q, want %q", b.Language(), lang)
		}
		if got := b.Get("Messages.Greetings"); got == "" || strings.HasPrefix(got, "[") {
			t.Errorf("Get(Messages.Greetings) for %q = %q", lang, got)
		}
	}
}

func TestLoadUnknownLanguageFallsBack(t *testing.T) {
	b, err := Load("xx")
	if err != nil {
		t.Fatalf("Load(xx) error = %v", err)
	}
	if b.Language() != "en" {
		t.Errorf("Language() = %q, want en fallback", b.Language())
	}
}

func TestGetFormatsArguments(t *testing.T) {
	b, err := Load("en")
	if err != nil {
		t.Fatalf("Load(en) error = %v", err)
	}

	got := b.Get("Messages.LibraryPagination", 2, 5)
	if !strings.Contains(got, "2") || !strings.Contains(got, "5") {
		t.Errorf("Get(LibraryPagination, 2, 5) = %q", got)
	}
}

func TestGetMissingKeyIsMarked(t *testing.T) {
	b, err := Load("en")
	if err != nil {
		t.Fatalf("Load(en) error = %v", err)
	}

	if got := b.Get("Messages.DoesNotExist"); got != "[Messages.DoesNotExist]" {
		t.Errorf("Get(missing) = %q", got)
	}
}
