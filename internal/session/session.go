package session

import (
	"time"
)

// State is the position of a user inside the booking flow.
type State string

const (
	StateIdle                 State = "idle"
	StateViewingServices      State = "viewing_services"
	StateAwaitingService      State = "awaiting_service"
	StateAwaitingDate         State = "awaiting_date"
	StateAwaitingTime         State = "awaiting_time"
	StateAwaitingName         State = "awaiting_name"
	StateAwaitingPhone        State = "awaiting_phone"
	StateAwaitingConfirmation State = "awaiting_confirmation"
	StateAwaitingPayment      State = "awaiting_payment"
	StateChoosingLanguage     State = "choosing_language"
)

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	switch s {
	case StateIdle, StateViewingServices, StateAwaitingService, StateAwaitingDate,
		StateAwaitingTime, StateAwaitingName, StateAwaitingPhone,
		StateAwaitingConfirmation, StateAwaitingPayment, StateChoosingLanguage:
		return true
	}
	return false
}

// Language is a response register, not a locale.
type Language string

const (
	LanguageSheng     Language = "sheng"
	LanguageSwenglish Language = "swenglish"
	LanguageEnglish   Language = "english"
)

// Valid reports whether l is a known register.
func (l Language) Valid() bool {
	return l == LanguageSheng || l == LanguageSwenglish || l == LanguageEnglish
}

// Draft is the in-progress appointment attached to a session. Fields fill in
// monotonically as the flow advances; only the confirmation step requires all
// of them.
type Draft struct {
	Service       string `json:"service,omitempty"`
	Date          string `json:"date,omitempty"`
	Time          string `json:"time,omitempty"`
	CustomerName  string `json:"customer_name,omitempty"`
	CustomerPhone string `json:"customer_phone,omitempty"`
	PriceKES      int    `json:"price_kes,omitempty"`
	PaymentMethod string `json:"payment_method,omitempty"`
	AppointmentID string `json:"appointment_id,omitempty"`
}

// Empty reports whether no field has been filled yet.
func (d Draft) Empty() bool {
	return d == Draft{}
}

// ReadyToConfirm reports whether every field the confirmation summary needs is set.
func (d Draft) ReadyToConfirm() bool {
	return d.Service != "" && d.Date != "" && d.Time != "" &&
		d.CustomerName != "" && d.CustomerPhone != ""
}

// Merge copies the non-zero fields of other into d (shallow-merge semantics).
func (d *Draft) Merge(other Draft) {
	if other.Service != "" {
		d.Service = other.Service
	}
	if other.Date != "" {
		d.Date = other.Date
	}
	if other.Time != "" {
		d.Time = other.Time
	}
	if other.CustomerName != "" {
		d.CustomerName = other.CustomerName
	}
	if other.CustomerPhone != "" {
		d.CustomerPhone = other.CustomerPhone
	}
	if other.PriceKES != 0 {
		d.PriceKES = other.PriceKES
	}
	if other.PaymentMethod != "" {
		d.PaymentMethod = other.PaymentMethod
	}
	if other.AppointmentID != "" {
		d.AppointmentID = other.AppointmentID
	}
}

// HistoryEntry is one turn of the conversation, kept for heuristic use only.
type HistoryEntry struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// HistoryLimit bounds the per-session history ring.
const HistoryLimit = 10

// Session is the per-user ephemeral conversational state. Losing it on restart
// is acceptable; durable appointment data lives in the bookings repository.
type Session struct {
	UserID           string         `json:"user_id"`
	Platform         string         `json:"platform"`
	State            State          `json:"state"`
	Draft            Draft          `json:"draft"`
	Language         Language       `json:"language"`
	LanguageLocked   bool           `json:"language_locked"`
	LastActivity     time.Time      `json:"last_activity"`
	ServicesViewedAt time.Time      `json:"services_viewed_at,omitempty"`
	History          []HistoryEntry `json:"history,omitempty"`
}

// New creates a fresh idle session for a platform user id.
func New(userID, platform string) *Session {
	return &Session{
		UserID:   userID,
		Platform: platform,
		State:    StateIdle,
		Language: LanguageSwenglish,
	}
}

// Touch records inbound activity.
func (s *Session) Touch(now time.Time) {
	s.LastActivity = now
}

// Expired reports whether the session has been inactive past the timeout.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	if s.LastActivity.IsZero() {
		return false
	}
	return now.Sub(s.LastActivity) > timeout
}

// Reset returns the session to idle and discards the draft. Language sticks.
func (s *Session) Reset() {
	s.State = StateIdle
	s.Draft = Draft{}
	s.ServicesViewedAt = time.Time{}
}

// AppendHistory records a turn, keeping at most HistoryLimit entries.
func (s *Session) AppendHistory(role, text string, at time.Time) {
	s.History = append(s.History, HistoryEntry{Role: role, Text: text, At: at})
	if len(s.History) > HistoryLimit {
		s.History = s.History[len(s.History)-HistoryLimit:]
	}
}

// RecentlyViewedServices reports whether the service list was shown inside the window.
func (s *Session) RecentlyViewedServices(now time.Time, window time.Duration) bool {
	if s.ServicesViewedAt.IsZero() {
		return false
	}
	return now.Sub(s.ServicesViewedAt) <= window
}
