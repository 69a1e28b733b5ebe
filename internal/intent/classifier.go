package intent

import "strings"

// Intent is the coarse classification of a customer message.
type Intent string

const (
	IntentGreeting        Intent = "greeting"
	IntentServiceInquiry  Intent = "service_inquiry"
	IntentPriceInquiry    Intent = "price_inquiry"
	IntentLocationInquiry Intent = "location_inquiry"
	IntentBookingRequest  Intent = "booking_request"
	IntentPaymentInquiry  Intent = "payment_inquiry"
	IntentThanks          Intent = "thanks"
	IntentLanguageChange  Intent = "language_change"
	IntentServiceSelect   Intent = "service_selection"
	IntentUnknown         Intent = "unknown"
)

// Keyword sets per intent. English, Swahili and Sheng terms are mixed on
// purpose; customers code-switch mid-sentence.
var (
	greetingKeywords = []string{"hi", "hello", "hey", "niaje", "habari", "mambo", "sasa", "start"}
	serviceKeywords  = []string{"service", "services", "offer", "huduma"}
	priceKeywords    = []string{"price", "prices", "cost", "how much", "bei", "ngapi", "charges"}
	locationKeywords = []string{"where", "location", "address", "wapi", "place", "mko"}
	bookingKeywords  = []string{"book", "appointment", "schedule", "miadi", "weka", "nikaweke", "reserve", "i want", "need"}
	paymentKeywords  = []string{"pay", "payment", "mpesa", "m-pesa", "lipa", "till", "deposit"}
	thanksKeywords   = []string{"thanks", "thank you", "asante", "shukran"}
	languageKeywords = []string{"language", "lugha", "english", "swahili", "sheng", "badilisha"}
)

// Classify maps free text to an Intent by case-insensitive substring matching.
// Categories are tested in a fixed priority order and the first match wins;
// there is no stemming and no negation handling ("I don't want to book" still
// classifies as a booking request).
func Classify(text string) Intent {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, greetingKeywords):
		return IntentGreeting
	case containsAny(lower, serviceKeywords):
		return IntentServiceInquiry
	case containsAny(lower, priceKeywords):
		return IntentPriceInquiry
	case containsAny(lower, locationKeywords):
		return IntentLocationInquiry
	case containsAny(lower, bookingKeywords):
		return IntentBookingRequest
	case containsAny(lower, paymentKeywords):
		return IntentPaymentInquiry
	case containsAny(lower, thanksKeywords):
		return IntentThanks
	case containsAny(lower, languageKeywords):
		return IntentLanguageChange
	case ExtractService(lower) != ServiceNone:
		return IntentServiceSelect
	default:
		return IntentUnknown
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
