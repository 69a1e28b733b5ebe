// Package templates is the response template bank: language-keyed canned
// replies with named substitution slots. Pure lookup, no logic beyond picking
// a random variant when a key has several.
package templates

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/frankbeauty/salon-bot/internal/session"
)

// Template keys understood by the bank. Names describe the reply, not the
// state that triggers it.
const (
	KeyGreeting         = "greeting"
	KeyMainMenu         = "main_menu"
	KeyServicesList     = "services_list"
	KeyPriceList        = "price_list"
	KeyLocation         = "location"
	KeyThanks           = "thanks"
	KeyAskService       = "ask_service"
	KeyAskServiceAgain  = "ask_service_again"
	KeyAskDate          = "ask_date"
	KeyAskDateDirect    = "ask_date_direct"
	KeyAskDateAgain     = "ask_date_again"
	KeyAskTime          = "ask_time"
	KeyAskTimeAgain     = "ask_time_again"
	KeyAskName          = "ask_name"
	KeyAskNameAgain     = "ask_name_again"
	KeyAskPhone         = "ask_phone"
	KeyAskPhoneAgain    = "ask_phone_again"
	KeyConfirmSummary   = "confirm_summary"
	KeyPaymentInfo      = "payment_info"
	KeyPaymentOptions   = "payment_options"
	KeyPaymentPhone     = "payment_phone_prompt"
	KeyPaymentSent      = "payment_sent"
	KeyPaymentFailed    = "payment_failed"
	KeyPaymentConfirmed = "payment_confirmed"
	KeyManualMpesa      = "manual_mpesa"
	KeyCashConfirmed    = "cash_confirmed"
	KeyCancelled        = "cancelled"
	KeyChooseLanguage   = "choose_language"
	KeyLanguageSet      = "language_set"
	KeyLanguageInvalid  = "language_invalid"
	KeyGenericError     = "generic_error"
)

// Bank selects and fills templates. The random source is injected so tests can
// seed it and assert deterministically.
type Bank struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBank creates a bank with the given random source; nil gets a time-seeded one.
func NewBank(rng *rand.Rand) *Bank {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Bank{rng: rng}
}

// Render picks a variant for (key, language) and fills the {slot} placeholders
// from subs. Unknown keys are an error; unknown languages fall back to
// swenglish. No escaping is applied to substituted values.
func (b *Bank) Render(key string, lang session.Language, subs map[string]string) (string, error) {
	variants := b.Variants(key, lang)
	if len(variants) == 0 {
		return "", fmt.Errorf("templates: no template for key %q", key)
	}

	b.mu.Lock()
	chosen := variants[b.rng.Intn(len(variants))]
	b.mu.Unlock()

	if len(subs) == 0 {
		return chosen, nil
	}
	pairs := make([]string, 0, len(subs)*2)
	for slot, value := range subs {
		pairs = append(pairs, "{"+slot+"}", value)
	}
	return strings.NewReplacer(pairs...).Replace(chosen), nil
}

// Variants returns the candidate strings for a key in a language, falling back
// to swenglish for unknown languages or missing translations.
func (b *Bank) Variants(key string, lang session.Language) []string {
	byKey, ok := bank[lang]
	if !ok {
		byKey = bank[session.LanguageSwenglish]
	}
	variants := byKey[key]
	if len(variants) == 0 && lang != session.LanguageSwenglish {
		variants = bank[session.LanguageSwenglish][key]
	}
	return variants
}
