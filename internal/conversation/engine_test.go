package conversation

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/frankbeauty/salon-bot/internal/session"
	"github.com/frankbeauty/salon-bot/internal/templates"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

type fakeSaver struct {
	reqs []BookingRequest
	err  error
}

func (f *fakeSaver) SaveAppointment(_ context.Context, req BookingRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.reqs = append(f.reqs, req)
	return "appt-1", nil
}

type fakePayments struct {
	reqs []STKPushRequest
	err  error
}

func (f *fakePayments) InitiateSTKPush(_ context.Context, req STKPushRequest) (STKPushResult, error) {
	if f.err != nil {
		return STKPushResult{}, f.err
	}
	f.reqs = append(f.reqs, req)
	return STKPushResult{CheckoutRequestID: "ws_CO_1", CustomerMessage: "Success"}, nil
}

type engineHarness struct {
	engine   *Engine
	store    *session.MemoryStore
	saver    *fakeSaver
	payments *fakePayments
	now      time.Time
}

// Tuesday 2026-03-03, mid-morning.
var engineNow = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

func newHarness(t *testing.T) *engineHarness {
	t.Helper()
	h := &engineHarness{
		store:    session.NewMemoryStore(),
		saver:    &fakeSaver{},
		payments: &fakePayments{},
		now:      engineNow,
	}
	bank := templates.NewBank(rand.New(rand.NewSource(1)))
	h.engine = NewEngine(h.store, bank, h.saver, h.payments, logging.Default()).
		WithClock(func() time.Time { return h.now })
	return h
}

func (h *engineHarness) send(t *testing.T, text string) string {
	t.Helper()
	reply, err := h.engine.HandleMessage(context.Background(), "user-12345", "telegram", text)
	if err != nil {
		t.Fatalf("HandleMessage(%q): %v", text, err)
	}
	if reply == "" {
		t.Fatalf("HandleMessage(%q) returned empty reply", text)
	}
	return reply
}

func (h *engineHarness) sessionState(t *testing.T) *session.Session {
	t.Helper()
	s, err := h.store.Get(context.Background(), "user-12345")
	if err != nil {
		t.Fatalf("store.Get: %v", err)
	}
	if s == nil {
		t.Fatal("no session stored")
	}
	return s
}

func TestEngineHappyPathToSTKPush(t *testing.T) {
	h := newHarness(t)

	h.send(t, "hi")
	h.send(t, "I want to book a haircut")
	if got := h.sessionState(t); got.State != session.StateAwaitingDate {
		t.Fatalf("state after service = %s, want %s", got.State, session.StateAwaitingDate)
	}
	h.send(t, "tomorrow")
	h.send(t, "2pm")
	h.send(t, "Wanjiku Kamau")
	reply := h.send(t, "0712345678")
	if !strings.Contains(reply, "Haircut & Styling") || !strings.Contains(reply, "2026-03-04") ||
		!strings.Contains(reply, "14:00") || !strings.Contains(reply, "254712345678") {
		t.Fatalf("confirmation summary missing details: %q", reply)
	}

	h.send(t, "yes")
	if len(h.saver.reqs) != 1 {
		t.Fatalf("appointments saved = %d, want 1", len(h.saver.reqs))
	}
	saved := h.saver.reqs[0]
	if saved.Service != "Haircut & Styling" || saved.Date != "2026-03-04" ||
		saved.Time != "14:00" || saved.CustomerPhone != "254712345678" || saved.DepositKES != 500 {
		t.Fatalf("unexpected booking request: %+v", saved)
	}
	if got := h.sessionState(t); got.State != session.StateAwaitingPayment {
		t.Fatalf("state after confirm = %s", got.State)
	}

	h.send(t, "0712345678")
	if len(h.payments.reqs) != 1 {
		t.Fatalf("stk pushes = %d, want 1", len(h.payments.reqs))
	}
	push := h.payments.reqs[0]
	if push.Phone != "254712345678" || push.AmountKES != 500 || push.AppointmentID != "appt-1" {
		t.Fatalf("unexpected stk push: %+v", push)
	}
	if got := h.sessionState(t); got.State != session.StateIdle || !got.Draft.Empty() {
		t.Fatalf("session not reset after payment: state=%s draft=%+v", got.State, got.Draft)
	}
}

func TestEngineCombinedExtraction(t *testing.T) {
	h := newHarness(t)

	h.send(t, "book a haircut tomorrow at 2pm")
	got := h.sessionState(t)
	if got.State != session.StateAwaitingName {
		t.Fatalf("state = %s, want %s", got.State, session.StateAwaitingName)
	}
	if got.Draft.Service != "Haircut & Styling" || got.Draft.Date != "2026-03-04" || got.Draft.Time != "14:00" {
		t.Fatalf("draft not pre-filled: %+v", got.Draft)
	}
}

func TestEngineServiceSelectionAfterViewing(t *testing.T) {
	h := newHarness(t)

	h.send(t, "what services do you offer?")
	if got := h.sessionState(t); got.State != session.StateViewingServices {
		t.Fatalf("state = %s, want %s", got.State, session.StateViewingServices)
	}
	h.send(t, "manicure")
	got := h.sessionState(t)
	if got.State != session.StateAwaitingDate || got.Draft.Service != "Manicure/Pedicure" {
		t.Fatalf("implicit selection failed: state=%s draft=%+v", got.State, got.Draft)
	}
}

func TestEngineBareServiceNameStartsBooking(t *testing.T) {
	h := newHarness(t)

	h.send(t, "hi")
	h.send(t, "haircut")
	if got := h.sessionState(t); got.State != session.StateAwaitingDate || got.Draft.Service != "Haircut & Styling" {
		t.Fatalf("bare service name did not start booking: state=%s draft=%+v", got.State, got.Draft)
	}

	h.send(t, "tomorrow")
	h.send(t, "2pm")
	h.send(t, "Jane")
	h.send(t, "0712345678")
	h.send(t, "yes")

	got := h.sessionState(t)
	if got.State != session.StateAwaitingPayment {
		t.Fatalf("state = %s, want %s", got.State, session.StateAwaitingPayment)
	}
	if got.Draft.Service != "Haircut & Styling" || got.Draft.Date != "2026-03-04" ||
		got.Draft.Time != "14:00" || got.Draft.CustomerName != "Jane" ||
		got.Draft.CustomerPhone != "254712345678" {
		t.Fatalf("draft incomplete: %+v", got.Draft)
	}
	if len(h.saver.reqs) != 1 || h.saver.reqs[0].Service != "Haircut & Styling" {
		t.Fatalf("appointments saved = %+v", h.saver.reqs)
	}
}

func TestEngineServiceListReleasesOnUnrelatedInput(t *testing.T) {
	h := newHarness(t)

	h.send(t, "what services do you offer?")
	reply := h.send(t, "where are you located?")
	if !strings.Contains(reply, "Tom Mboya") {
		t.Fatalf("expected location reply, got %q", reply)
	}
	if got := h.sessionState(t); got.State != session.StateIdle {
		t.Fatalf("state = %s, want %s", got.State, session.StateIdle)
	}
}

func TestEngineLoneNoAfterServicesShowsMenu(t *testing.T) {
	h := newHarness(t)

	h.send(t, "what services do you offer?")
	reply := h.send(t, "no")
	if strings.Contains(strings.ToLower(reply), "cancel") {
		t.Fatalf("lone no outside a flow read as a cancel: %q", reply)
	}
	if got := h.sessionState(t); got.State != session.StateIdle {
		t.Fatalf("state = %s, want %s", got.State, session.StateIdle)
	}
}

func TestEngineReprompts(t *testing.T) {
	h := newHarness(t)

	h.send(t, "book a facial")
	h.send(t, "sometime soon") // not a date
	if got := h.sessionState(t); got.State != session.StateAwaitingDate {
		t.Fatalf("bad date advanced state to %s", got.State)
	}
	h.send(t, "friday")
	h.send(t, "whenever") // not a time
	if got := h.sessionState(t); got.State != session.StateAwaitingTime {
		t.Fatalf("bad time advanced state to %s", got.State)
	}
	h.send(t, "10am")
	h.send(t, "x") // too short for a name
	if got := h.sessionState(t); got.State != session.StateAwaitingName {
		t.Fatalf("bad name advanced state to %s", got.State)
	}
	h.send(t, "Amina")
	h.send(t, "12345") // not a phone
	if got := h.sessionState(t); got.State != session.StateAwaitingPhone {
		t.Fatalf("bad phone advanced state to %s", got.State)
	}
}

func TestEngineCancelMidFlow(t *testing.T) {
	h := newHarness(t)

	h.send(t, "book a massage")
	h.send(t, "cancel")
	got := h.sessionState(t)
	if got.State != session.StateIdle || !got.Draft.Empty() {
		t.Fatalf("cancel did not reset: state=%s draft=%+v", got.State, got.Draft)
	}
	if len(h.saver.reqs) != 0 {
		t.Fatal("cancelled flow still saved an appointment")
	}
}

func TestEngineDeclineAtConfirmation(t *testing.T) {
	h := newHarness(t)

	h.send(t, "book a haircut tomorrow at 2pm")
	h.send(t, "Wanjiku")
	h.send(t, "0712345678")
	h.send(t, "no")
	got := h.sessionState(t)
	if got.State != session.StateIdle || !got.Draft.Empty() {
		t.Fatalf("decline did not reset: state=%s draft=%+v", got.State, got.Draft)
	}
	if len(h.saver.reqs) != 0 {
		t.Fatal("declined booking was saved")
	}
}

func TestEngineInactivityTimeout(t *testing.T) {
	h := newHarness(t)

	h.send(t, "book a haircut")
	if got := h.sessionState(t); got.State != session.StateAwaitingDate {
		t.Fatalf("setup state = %s", got.State)
	}

	h.now = h.now.Add(31 * time.Minute)
	h.send(t, "tomorrow")
	// The expired draft was discarded, so "tomorrow" lands on an idle session.
	got := h.sessionState(t)
	if got.State != session.StateIdle || got.Draft.Service != "" {
		t.Fatalf("timeout not applied: state=%s draft=%+v", got.State, got.Draft)
	}
}

func TestEngineLanguageStickiness(t *testing.T) {
	h := newHarness(t)

	h.send(t, "niaje msee")
	if got := h.sessionState(t); got.Language != session.LanguageSheng {
		t.Fatalf("language = %s, want sheng", got.Language)
	}
	// A markerless message mid-session must not downgrade the register.
	h.send(t, "ok")
	if got := h.sessionState(t); got.Language != session.LanguageSheng {
		t.Fatalf("language downgraded to %s", got.Language)
	}
}

func TestEngineExplicitLanguageChange(t *testing.T) {
	h := newHarness(t)

	h.send(t, "change language")
	if got := h.sessionState(t); got.State != session.StateChoosingLanguage {
		t.Fatalf("state = %s, want %s", got.State, session.StateChoosingLanguage)
	}
	h.send(t, "english please")
	got := h.sessionState(t)
	if got.State != session.StateIdle || got.Language != session.LanguageEnglish || !got.LanguageLocked {
		t.Fatalf("language change failed: %+v", got)
	}
}

func TestEngineSaveFailureResetsSession(t *testing.T) {
	h := newHarness(t)
	h.saver.err = errors.New("db down")

	h.send(t, "book a haircut tomorrow at 2pm")
	h.send(t, "Wanjiku")
	h.send(t, "0712345678")
	h.send(t, "yes")
	got := h.sessionState(t)
	if got.State != session.StateIdle || !got.Draft.Empty() {
		t.Fatalf("save failure did not reset: state=%s draft=%+v", got.State, got.Draft)
	}
}

func TestEngineSTKFailureStillResets(t *testing.T) {
	h := newHarness(t)
	h.payments.err = errors.New("daraja timeout")

	h.send(t, "book a haircut tomorrow at 2pm")
	h.send(t, "Wanjiku")
	h.send(t, "0712345678")
	h.send(t, "yes")
	reply := h.send(t, "0712345678")
	if !strings.Contains(strings.ToLower(reply), "fail") && !strings.Contains(strings.ToLower(reply), "imekataa") {
		t.Fatalf("expected failure copy, got %q", reply)
	}
	got := h.sessionState(t)
	if got.State != session.StateIdle || !got.Draft.Empty() {
		t.Fatalf("stk failure did not reset: state=%s draft=%+v", got.State, got.Draft)
	}
}

func TestEngineCashOption(t *testing.T) {
	h := newHarness(t)

	h.send(t, "book a haircut tomorrow at 2pm")
	h.send(t, "Wanjiku")
	h.send(t, "0712345678")
	h.send(t, "yes")
	h.send(t, "cash")
	got := h.sessionState(t)
	if got.State != session.StateIdle {
		t.Fatalf("cash option left state %s", got.State)
	}
	if len(h.payments.reqs) != 0 {
		t.Fatal("cash option fired an stk push")
	}
}

func TestEnginePaymentInquiryUsesSessionRegister(t *testing.T) {
	h := newHarness(t)
	s := session.New("user-12345", "telegram")
	s.Language = session.LanguageSheng
	s.LanguageLocked = true
	if err := h.store.Put(context.Background(), s); err != nil {
		t.Fatalf("put: %v", err)
	}

	reply := h.send(t, "mpesa?")
	if !strings.Contains(reply, "Till: 123456") {
		t.Fatalf("payment info missing till details: %q", reply)
	}
	if !strings.Contains(reply, "inashikilia") {
		t.Fatalf("payment info not in the session register: %q", reply)
	}
	if !strings.Contains(reply, "500") {
		t.Fatalf("payment info missing deposit amount: %q", reply)
	}
}

func TestEngineConfirmationWithIncompleteDraft(t *testing.T) {
	h := newHarness(t)
	s := session.New("user-12345", "telegram")
	s.State = session.StateAwaitingConfirmation
	s.Draft.Service = "Haircut & Styling"
	if err := h.store.Put(context.Background(), s); err != nil {
		t.Fatalf("put: %v", err)
	}

	reply := h.send(t, "yes")
	if !strings.Contains(strings.ToLower(reply), "wrong") {
		t.Fatalf("expected error copy, got %q", reply)
	}
	if len(h.saver.reqs) != 0 {
		t.Fatal("incomplete draft was saved")
	}
	got := h.sessionState(t)
	if got.State != session.StateIdle || !got.Draft.Empty() {
		t.Fatalf("incomplete draft not reset: state=%s draft=%+v", got.State, got.Draft)
	}
}

func TestEngineLocationIncludesOpenStatus(t *testing.T) {
	h := newHarness(t)

	// Tuesday 10:00 is inside opening hours.
	reply := h.send(t, "where are you located?")
	if !strings.Contains(reply, "open right now") {
		t.Fatalf("expected open-now note, got %q", reply)
	}

	h.now = time.Date(2026, 3, 3, 22, 0, 0, 0, time.UTC)
	reply = h.send(t, "where are you located?")
	if strings.Contains(reply, "open right now") {
		t.Fatalf("open-now note after closing time: %q", reply)
	}
}

func TestEngineHistoryBounded(t *testing.T) {
	h := newHarness(t)

	for i := 0; i < 20; i++ {
		h.send(t, "hi")
	}
	got := h.sessionState(t)
	if len(got.History) != session.HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(got.History), session.HistoryLimit)
	}
}
