package i18n

import "testing"

func TestParseAcceptLanguage(t *testing.T) {
	tests := []struct {
		header string
		want   Locale
	}{
		{"", LocalePl},
		{"pl", LocalePl},
		{"pl-PL,pl;q=0.9,en-US;q=0.8", LocalePl},
		{"en-US,en;q=0.9", LocaleEn},
		{"fr-FR,fr;q=0.9", LocalePl}, // unsupported → fallback
		{"en", LocaleEn},
	}

	for _, tt := range tests {
		got := ParseAcceptLanguage(tt.header)
		if got != tt.want {
			t.Errorf("ParseAcceptLanguage(%q) = %q, want %q", tt.header, got, tt.want)
		}
	}
}

func TestBundleTranslation(t *testing.T) {
	b := NewBundle(LocalePl)
	for locale, msgs := range DefaultMessages() {
		b.LoadMessages(locale, msgs)
	}

	// Polish
	if got := b.T(LocalePl, "priority.high"); got != "Wysoki" {
		t.Errorf("pl priority.high = %q", got)
	}

	// English
	if got := b.T(LocaleEn, "priority.high"); got != "High" {
		t.Errorf("en priority.high = %q", got)
	}

	// Unknown key returns the key itself
	if got := b.T(LocaleEn, "unknown.key"); got != "unknown.key" {
		t.Errorf("unknown key = %q, want key itself", got)
	}
}
