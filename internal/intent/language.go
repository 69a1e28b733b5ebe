package intent

import (
	"strings"

	"github.com/frankbeauty/salon-bot/internal/session"
)

// Marker words per register. Sheng is checked first since it borrows freely
// from both Swahili and English; pure-Swahili markers then map to the
// code-mixed swenglish register, and clearly-English phrasing to english.
var (
	shengMarkers   = []string{"niaje", "manze", "maze", "msee", "buda", "fiti", "noma", "mbogi", "aje", "vipi", "poa sana"}
	swahiliMarkers = []string{"habari", "tafadhali", "asante", "nataka", "nipo", "huduma", "bei", "wapi", "lipa", "miadi", "karibu", "saa ngapi"}
	englishMarkers = []string{"hello", "please", "would like", "i want", "how much", "good morning", "good afternoon"}
)

// DetectLanguage infers the response register from a message, defaulting to
// swenglish when no marker matches. Applied once per session (at the first
// message or while idle) and sticky thereafter.
func DetectLanguage(text string) session.Language {
	if lang, ok := DetectLanguageStrict(text); ok {
		return lang
	}
	return session.LanguageSwenglish
}

// DetectLanguageStrict is DetectLanguage without the default: ok is false when
// the message carries no register marker at all, so callers can keep an
// earlier detection instead of downgrading it.
func DetectLanguageStrict(text string) (session.Language, bool) {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, shengMarkers):
		return session.LanguageSheng, true
	case containsAny(lower, swahiliMarkers):
		return session.LanguageSwenglish, true
	case containsAny(lower, englishMarkers):
		return session.LanguageEnglish, true
	}
	return "", false
}

// ParseLanguageChoice maps an explicit language selection ("english",
// "swahili", "sheng") to a register, for the choosing-language step.
func ParseLanguageChoice(text string) (session.Language, bool) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "sheng"):
		return session.LanguageSheng, true
	case strings.Contains(lower, "swahili"), strings.Contains(lower, "swenglish"), strings.Contains(lower, "kiswahili"):
		return session.LanguageSwenglish, true
	case strings.Contains(lower, "english"):
		return session.LanguageEnglish, true
	}
	return "", false
}
