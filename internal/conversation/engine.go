// Package conversation implements the booking state machine: one inbound
// message plus the stored session in, one reply plus the updated session out.
// Channel adapters stay thin; everything stateful happens here.
package conversation

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/frankbeauty/salon-bot/internal/intent"
	"github.com/frankbeauty/salon-bot/internal/observability/metrics"
	"github.com/frankbeauty/salon-bot/internal/salon"
	"github.com/frankbeauty/salon-bot/internal/session"
	"github.com/frankbeauty/salon-bot/internal/templates"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

var conversationTracer = otel.Tracer("salonbot.internal.conversation")

// BookingRequest is a confirmed draft handed to the bookings layer.
type BookingRequest struct {
	UserID        string
	Platform      string
	Service       string
	Date          string
	Time          string
	CustomerName  string
	CustomerPhone string
	Language      string
	DepositKES    int
}

// AppointmentSaver persists a confirmed booking and returns its id.
type AppointmentSaver interface {
	SaveAppointment(ctx context.Context, req BookingRequest) (string, error)
}

// STKPushRequest asks the payments layer to fire an M-Pesa prompt at a phone.
type STKPushRequest struct {
	AppointmentID    string
	Phone            string
	AmountKES        int
	AccountReference string
	Description      string
}

// STKPushResult is the synchronous acknowledgement of an STK push; actual
// payment confirmation arrives later on the Daraja callback.
type STKPushResult struct {
	CheckoutRequestID string
	CustomerMessage   string
}

// PaymentInitiator fires STK pushes. Implementations record the pending
// payment so the callback can be matched back to the appointment.
type PaymentInitiator interface {
	InitiateSTKPush(ctx context.Context, req STKPushRequest) (STKPushResult, error)
}

// Token sets for the yes/no steps. Matched against the whole trimmed message,
// not as substrings, so a name like "Hapana Achieng" is never read as a cancel.
var (
	affirmTokens = map[string]bool{"yes": true, "y": true, "ndio": true, "confirm": true, "ok": true, "sawa": true}
	cancelTokens = map[string]bool{"no": true, "n": true, "hapana": true, "cancel": true, "change": true}
)

// Engine drives the conversation. Construct with NewEngine; the With methods
// override tuning knobs and may only be called before first use.
type Engine struct {
	sessions     session.Store
	bank         *templates.Bank
	appointments AppointmentSaver
	payments     PaymentInitiator
	logger       *logging.Logger
	metrics      *metrics.BotMetrics

	clock          func() time.Time
	sessionTimeout time.Duration
	viewedWindow   time.Duration
	paybill        string
	depositKES     int
}

func NewEngine(sessions session.Store, bank *templates.Bank, appointments AppointmentSaver, payments PaymentInitiator, logger *logging.Logger) *Engine {
	if sessions == nil {
		panic("conversation: session store is required")
	}
	if bank == nil {
		panic("conversation: template bank is required")
	}
	if appointments == nil {
		panic("conversation: appointment saver is required")
	}
	if payments == nil {
		panic("conversation: payment initiator is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Engine{
		sessions:       sessions,
		bank:           bank,
		appointments:   appointments,
		payments:       payments,
		logger:         logger,
		clock:          time.Now,
		sessionTimeout: 30 * time.Minute,
		viewedWindow:   2 * time.Minute,
		paybill:        "174379",
		depositKES:     500,
	}
}

func (e *Engine) WithClock(clock func() time.Time) *Engine {
	if clock != nil {
		e.clock = clock
	}
	return e
}

func (e *Engine) WithSessionTimeout(d time.Duration) *Engine {
	if d > 0 {
		e.sessionTimeout = d
	}
	return e
}

func (e *Engine) WithViewedWindow(d time.Duration) *Engine {
	if d > 0 {
		e.viewedWindow = d
	}
	return e
}

func (e *Engine) WithPaybill(shortcode string) *Engine {
	if shortcode != "" {
		e.paybill = shortcode
	}
	return e
}

// WithDepositAmount sets the deposit charged when a catalogue entry carries none.
func (e *Engine) WithDepositAmount(kes int) *Engine {
	if kes > 0 {
		e.depositKES = kes
	}
	return e
}

func (e *Engine) WithMetrics(m *metrics.BotMetrics) *Engine {
	e.metrics = m
	return e
}

// HandleMessage processes one inbound message for a platform user and returns
// the reply text. The session is loaded, advanced and stored inside this call;
// unexpected internal failures reset the session to idle and produce the
// generic error reply instead of surfacing to the channel adapter.
func (e *Engine) HandleMessage(ctx context.Context, userID, platform, text string) (string, error) {
	ctx, span := conversationTracer.Start(ctx, "conversation.handle_message",
		trace.WithAttributes(attribute.String("platform", platform)))
	defer span.End()

	start := e.clock()
	now := start

	s, err := e.sessions.Get(ctx, userID)
	if err != nil {
		// Degrade to a stateless turn rather than going silent.
		e.logger.Error("session load failed", "error", err, "user_id", userID)
		s = nil
	}
	if s == nil {
		s = session.New(userID, platform)
		s.Language = intent.DetectLanguage(text)
	} else if s.Expired(now, e.sessionTimeout) {
		s.Reset()
	}
	if s.State == session.StateIdle && !s.LanguageLocked {
		if lang, ok := intent.DetectLanguageStrict(text); ok {
			s.Language = lang
		}
	}
	s.Touch(now)
	s.AppendHistory("user", text, now)

	it := intent.Classify(text)
	e.metrics.ObserveInbound(platform, string(it))
	span.SetAttributes(attribute.String("intent", string(it)))

	from := s.State
	reply, err := e.dispatch(ctx, s, text, it, now)
	if err != nil {
		e.logger.Error("message handling failed", "error", err, "user_id", userID, "state", string(from))
		s.Reset()
		reply = e.render(s, templates.KeyGenericError, nil)
	}
	if s.State != from {
		e.metrics.ObserveTransition(string(from), string(s.State))
	}
	s.AppendHistory("bot", reply, now)

	if err := e.sessions.Put(ctx, s); err != nil {
		e.logger.Error("session save failed", "error", err, "user_id", userID)
	}
	e.metrics.ObserveHandleLatency(platform, e.clock().Sub(start).Seconds())
	return reply, nil
}

func (e *Engine) dispatch(ctx context.Context, s *session.Session, text string, it intent.Intent, now time.Time) (string, error) {
	token := strings.ToLower(strings.TrimSpace(text))

	// The service list is a browsing aid, not a held flow: whatever arrives
	// next is handled as an idle message. ServicesViewedAt keeps the implicit
	// selection grace window alive across the drop.
	if s.State == session.StateViewingServices {
		s.State = session.StateIdle
	}

	// Explicit cancel bails out of any in-progress flow.
	if s.State != session.StateIdle && cancelTokens[token] {
		s.Reset()
		return e.render(s, templates.KeyCancelled, nil), nil
	}

	switch s.State {
	case session.StateIdle:
		return e.handleIdle(ctx, s, text, it, now), nil
	case session.StateAwaitingService:
		return e.handleAwaitingService(s, text, now), nil
	case session.StateAwaitingDate:
		return e.handleAwaitingDate(s, text, now), nil
	case session.StateAwaitingTime:
		return e.handleAwaitingTime(s, text), nil
	case session.StateAwaitingName:
		return e.handleAwaitingName(s, text), nil
	case session.StateAwaitingPhone:
		return e.handleAwaitingPhone(s, text), nil
	case session.StateAwaitingConfirmation:
		return e.handleAwaitingConfirmation(ctx, s, token), nil
	case session.StateAwaitingPayment:
		return e.handleAwaitingPayment(ctx, s, text, token), nil
	case session.StateChoosingLanguage:
		return e.handleChoosingLanguage(s, text), nil
	default:
		return "", fmt.Errorf("conversation: session %s in unknown state %q", s.UserID, s.State)
	}
}

func (e *Engine) handleIdle(ctx context.Context, s *session.Session, text string, it intent.Intent, now time.Time) string {
	switch it {
	case intent.IntentGreeting:
		return e.render(s, templates.KeyGreeting, nil)
	case intent.IntentServiceInquiry:
		s.State = session.StateViewingServices
		s.ServicesViewedAt = now
		return e.render(s, templates.KeyServicesList, map[string]string{"menu": salon.ServiceMenu()})
	case intent.IntentPriceInquiry:
		return e.render(s, templates.KeyPriceList, map[string]string{
			"prices":  salon.PriceList(),
			"deposit": fmt.Sprintf("%d", e.depositKES),
		})
	case intent.IntentLocationInquiry:
		hours := salon.FAQs["hours"]
		if salon.IsOpen(now) {
			hours += "\n\nWe're open right now!"
		}
		return e.render(s, templates.KeyLocation, map[string]string{
			"location": salon.FAQs["location"],
			"hours":    hours,
		})
	case intent.IntentBookingRequest:
		return e.handleBookingRequest(s, text, now)
	case intent.IntentPaymentInquiry:
		return e.render(s, templates.KeyPaymentInfo, map[string]string{
			"deposit": fmt.Sprintf("%d", e.depositKES),
		})
	case intent.IntentThanks:
		return e.render(s, templates.KeyThanks, nil)
	case intent.IntentLanguageChange:
		s.State = session.StateChoosingLanguage
		return e.render(s, templates.KeyChooseLanguage, nil)
	case intent.IntentServiceSelect:
		// A bare service name always starts the booking. The only difference
		// is tone: a customer who just saw the menu gets the "excellent
		// choice" copy, one who led with the service gets a direct opener.
		svc := intent.ExtractService(text)
		if s.RecentlyViewedServices(now, e.viewedWindow) {
			return e.startBooking(s, svc)
		}
		return e.startBookingDirect(s, svc)
	default:
		return e.render(s, templates.KeyMainMenu, nil)
	}
}

// handleBookingRequest starts the flow, pre-filling every detail the opening
// message already carries ("book a haircut tomorrow at 2pm" jumps straight to
// the name step).
func (e *Engine) handleBookingRequest(s *session.Session, text string, now time.Time) string {
	s.Draft.Merge(scheduleDetails(text, now))
	if svc := intent.ExtractService(text); svc != intent.ServiceNone {
		return e.startBooking(s, svc)
	}
	s.State = session.StateAwaitingService
	return e.render(s, templates.KeyAskService, map[string]string{"menu": salon.ServiceMenu()})
}

// scheduleDetails pulls any date and time mentioned in free text into a
// partial draft suitable for merging.
func scheduleDetails(text string, now time.Time) session.Draft {
	var d session.Draft
	if date, ok := ParseDate(text, now); ok {
		d.Date = date
	}
	if tm, ok := ParseTime(text); ok {
		d.Time = tm
	}
	return d
}

// startBooking records the chosen service and advances past any steps the
// draft has already filled.
func (e *Engine) startBooking(s *session.Session, svc intent.Service) string {
	return e.beginBooking(s, svc, templates.KeyAskDate)
}

// startBookingDirect is startBooking for a service named out of the blue,
// with an opener that doesn't assume the customer was browsing the menu.
func (e *Engine) startBookingDirect(s *session.Session, svc intent.Service) string {
	return e.beginBooking(s, svc, templates.KeyAskDateDirect)
}

func (e *Engine) beginBooking(s *session.Session, svc intent.Service, dateKey string) string {
	info, ok := salon.Lookup(svc)
	if !ok {
		s.State = session.StateAwaitingService
		return e.render(s, templates.KeyAskService, map[string]string{"menu": salon.ServiceMenu()})
	}
	s.Draft.Service = info.DisplayName
	s.Draft.PriceKES = info.DepositKES
	if s.Draft.PriceKES == 0 {
		s.Draft.PriceKES = e.depositKES
	}

	switch {
	case s.Draft.Date == "":
		s.State = session.StateAwaitingDate
		return e.render(s, dateKey, map[string]string{"service": info.DisplayName})
	case s.Draft.Time == "":
		s.State = session.StateAwaitingTime
		return e.render(s, templates.KeyAskTime, map[string]string{"service": info.DisplayName, "date": s.Draft.Date})
	default:
		s.State = session.StateAwaitingName
		return e.render(s, templates.KeyAskName, map[string]string{"service": info.DisplayName})
	}
}

func (e *Engine) handleAwaitingService(s *session.Session, text string, now time.Time) string {
	if svc := intent.ExtractService(text); svc != intent.ServiceNone {
		s.Draft.Merge(scheduleDetails(text, now))
		return e.startBooking(s, svc)
	}
	return e.render(s, templates.KeyAskServiceAgain, map[string]string{"menu": salon.ServiceMenu()})
}

func (e *Engine) handleAwaitingDate(s *session.Session, text string, now time.Time) string {
	date, ok := ParseDate(text, now)
	if !ok {
		return e.render(s, templates.KeyAskDateAgain, map[string]string{"service": s.Draft.Service})
	}
	s.Draft.Date = date
	if tm, ok := ParseTime(text); ok {
		s.Draft.Time = tm
	}
	if s.Draft.Time != "" {
		s.State = session.StateAwaitingName
		return e.render(s, templates.KeyAskName, map[string]string{"service": s.Draft.Service})
	}
	s.State = session.StateAwaitingTime
	return e.render(s, templates.KeyAskTime, map[string]string{"service": s.Draft.Service, "date": date})
}

func (e *Engine) handleAwaitingTime(s *session.Session, text string) string {
	tm, ok := ParseTime(text)
	if !ok {
		return e.render(s, templates.KeyAskTimeAgain, nil)
	}
	s.Draft.Time = tm
	s.State = session.StateAwaitingName
	return e.render(s, templates.KeyAskName, map[string]string{"service": s.Draft.Service})
}

func (e *Engine) handleAwaitingName(s *session.Session, text string) string {
	name := strings.TrimSpace(text)
	if utf8.RuneCountInString(name) < 2 {
		return e.render(s, templates.KeyAskNameAgain, nil)
	}
	s.Draft.CustomerName = name
	s.State = session.StateAwaitingPhone
	return e.render(s, templates.KeyAskPhone, nil)
}

func (e *Engine) handleAwaitingPhone(s *session.Session, text string) string {
	phone, ok := NormalizePhone(text)
	if !ok {
		return e.render(s, templates.KeyAskPhoneAgain, nil)
	}
	s.Draft.CustomerPhone = phone
	s.State = session.StateAwaitingConfirmation
	return e.render(s, templates.KeyConfirmSummary, e.summarySubs(s))
}

func (e *Engine) summarySubs(s *session.Session) map[string]string {
	return map[string]string{
		"service": s.Draft.Service,
		"date":    s.Draft.Date,
		"time":    s.Draft.Time,
		"name":    s.Draft.CustomerName,
		"phone":   s.Draft.CustomerPhone,
		"amount":  fmt.Sprintf("%d", s.Draft.PriceKES),
	}
}

func (e *Engine) handleAwaitingConfirmation(ctx context.Context, s *session.Session, token string) string {
	if !affirmTokens[token] {
		// Cancel tokens were handled in dispatch; anything else re-shows the summary.
		return e.render(s, templates.KeyConfirmSummary, e.summarySubs(s))
	}
	if !s.Draft.ReadyToConfirm() {
		// Only reachable if a stored session lost draft fields; never persist
		// a half-filled appointment.
		e.logger.Error("confirmation reached with incomplete draft", "user_id", s.UserID, "draft", fmt.Sprintf("%+v", s.Draft))
		s.Reset()
		return e.render(s, templates.KeyGenericError, nil)
	}

	id, err := e.appointments.SaveAppointment(ctx, BookingRequest{
		UserID:        s.UserID,
		Platform:      s.Platform,
		Service:       s.Draft.Service,
		Date:          s.Draft.Date,
		Time:          s.Draft.Time,
		CustomerName:  s.Draft.CustomerName,
		CustomerPhone: s.Draft.CustomerPhone,
		Language:      string(s.Language),
		DepositKES:    s.Draft.PriceKES,
	})
	if err != nil {
		e.logger.Error("appointment save failed", "error", err, "user_id", s.UserID)
		s.Reset()
		return e.render(s, templates.KeyGenericError, nil)
	}
	s.Draft.AppointmentID = id
	s.State = session.StateAwaitingPayment
	return e.render(s, templates.KeyPaymentOptions, map[string]string{
		"service": s.Draft.Service,
		"amount":  fmt.Sprintf("%d", s.Draft.PriceKES),
	})
}

func (e *Engine) handleAwaitingPayment(ctx context.Context, s *session.Session, text, token string) string {
	amount := fmt.Sprintf("%d", s.Draft.PriceKES)

	switch {
	case strings.Contains(token, "cash"):
		s.Draft.PaymentMethod = "cash"
		reply := e.render(s, templates.KeyCashConfirmed, map[string]string{"service": s.Draft.Service})
		s.Reset()
		return reply

	case strings.Contains(token, "manual"), strings.Contains(token, "paybill"), strings.Contains(token, "till"):
		s.Draft.PaymentMethod = "mpesa_manual"
		reply := e.render(s, templates.KeyManualMpesa, map[string]string{
			"service":   s.Draft.Service,
			"shortcode": e.paybill,
			"account":   accountReference(s.Draft.Service, s.UserID),
			"amount":    amount,
		})
		s.Reset()
		return reply
	}

	if phone, ok := NormalizePhone(text); ok {
		return e.initiateSTKPush(ctx, s, phone)
	}

	if strings.Contains(token, "stk") || strings.Contains(token, "push") ||
		strings.Contains(token, "mpesa") || strings.Contains(token, "m-pesa") {
		return e.render(s, templates.KeyPaymentPhone, map[string]string{
			"service": s.Draft.Service,
			"amount":  amount,
		})
	}
	return e.render(s, templates.KeyPaymentOptions, map[string]string{
		"service": s.Draft.Service,
		"amount":  amount,
	})
}

func (e *Engine) initiateSTKPush(ctx context.Context, s *session.Session, phone string) string {
	s.Draft.PaymentMethod = "mpesa_stk"
	amount := fmt.Sprintf("%d", s.Draft.PriceKES)

	_, err := e.payments.InitiateSTKPush(ctx, STKPushRequest{
		AppointmentID:    s.Draft.AppointmentID,
		Phone:            phone,
		AmountKES:        s.Draft.PriceKES,
		AccountReference: accountReference(s.Draft.Service, s.UserID),
		Description:      s.Draft.Service + " deposit",
	})
	if err != nil {
		e.logger.Error("stk push failed", "error", err, "user_id", s.UserID, "appointment_id", s.Draft.AppointmentID)
		reply := e.render(s, templates.KeyPaymentFailed, nil)
		s.Reset()
		return reply
	}
	reply := e.render(s, templates.KeyPaymentSent, map[string]string{"amount": amount})
	s.Reset()
	return reply
}

func (e *Engine) handleChoosingLanguage(s *session.Session, text string) string {
	lang, ok := intent.ParseLanguageChoice(text)
	if !ok {
		return e.render(s, templates.KeyLanguageInvalid, nil)
	}
	s.Language = lang
	s.LanguageLocked = true
	s.State = session.StateIdle
	return e.render(s, templates.KeyLanguageSet, nil)
}

// render fills a template for the session's language; a missing template is a
// programming error, logged and papered over with a plain fallback line.
func (e *Engine) render(s *session.Session, key string, subs map[string]string) string {
	reply, err := e.bank.Render(key, s.Language, subs)
	if err != nil {
		e.logger.Error("template render failed", "error", err, "key", key)
		return "Sorry, something went wrong. Please try again."
	}
	return reply
}

// accountReference builds the M-Pesa account number shown in paybill
// instructions, e.g. "HAIRCUT_12345" for user …12345.
func accountReference(service, userID string) string {
	word := service
	if i := strings.IndexAny(service, " &/"); i > 0 {
		word = service[:i]
	}
	var b strings.Builder
	for _, r := range strings.ToUpper(word) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	tail := userID
	if len(tail) > 5 {
		tail = tail[len(tail)-5:]
	}
	return b.String() + "_" + tail
}
