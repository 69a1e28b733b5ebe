package bookings

import "time"

// Appointment statuses. An appointment starts pending payment and is
// confirmed once a deposit clears (or cash is chosen, in which case staff
// confirm on arrival).
const (
	StatusPendingPayment = "pending_payment"
	StatusConfirmed      = "confirmed"
	StatusCompleted      = "completed"
	StatusCancelled      = "cancelled"
)

// Payment statuses tracked against the Daraja checkout id.
const (
	PaymentPending  = "pending"
	PaymentPaid     = "paid"
	PaymentFailed   = "failed"
	PaymentRefunded = "refunded"
)

// Customer is one platform user; the same person on Telegram and WhatsApp is
// two customer rows, keyed by (platform, platform_user_id).
type Customer struct {
	ID                string
	Platform          string
	PlatformUserID    string
	Name              string
	Phone             string
	PreferredLanguage string
	Interactions      int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Appointment is a confirmed booking draft persisted for staff.
type Appointment struct {
	ID            string
	CustomerID    string
	Service       string
	Date          string // ISO date YYYY-MM-DD
	Time          string // HH:MM
	DepositKES    int
	Status        string
	PaymentMethod string
	CreatedAt     time.Time

	// Joined customer fields, populated on reads.
	CustomerName  string
	CustomerPhone string
}

// Payment is one STK push attempt against an appointment.
type Payment struct {
	ID                string
	AppointmentID     string
	CheckoutRequestID string
	MerchantRequestID string
	Phone             string
	AmountKES         int
	Receipt           string
	Status            string
	CreatedAt         time.Time
}

// PaymentContext is what the Daraja callback handler needs to close the loop:
// which appointment was paid and who to notify on which channel.
type PaymentContext struct {
	AppointmentID  string
	Service        string
	Platform       string
	PlatformUserID string
}
