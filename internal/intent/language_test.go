package intent

import (
	"testing"

	"github.com/frankbeauty/salon-bot/internal/session"
)

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want session.Language
	}{
		{"niaje msee", session.LanguageSheng},
		{"habari, nataka miadi", session.LanguageSwenglish},
		{"hello, I would like a facial", session.LanguageEnglish},
		// Sheng wins when markers from several registers appear.
		{"niaje, how much is a manicure", session.LanguageSheng},
		// No marker at all falls back to the code-mixed default.
		{"ok", session.LanguageSwenglish},
		{"", session.LanguageSwenglish},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.text); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestDetectLanguageStrict(t *testing.T) {
	if _, ok := DetectLanguageStrict("ok"); ok {
		t.Fatal("markerless text must not report a detection")
	}
	lang, ok := DetectLanguageStrict("manze vipi")
	if !ok || lang != session.LanguageSheng {
		t.Fatalf("got (%q, %v), want (sheng, true)", lang, ok)
	}
}

func TestParseLanguageChoice(t *testing.T) {
	tests := []struct {
		text   string
		want   session.Language
		wantOK bool
	}{
		{"english please", session.LanguageEnglish, true},
		{"Swahili", session.LanguageSwenglish, true},
		{"kiswahili tu", session.LanguageSwenglish, true},
		{"sheng", session.LanguageSheng, true},
		{"3", "", false},
		{"french", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseLanguageChoice(tt.text)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseLanguageChoice(%q) = (%q, %v), want (%q, %v)", tt.text, got, ok, tt.want, tt.wantOK)
		}
	}
}
