// Package payments coordinates M-Pesa deposits: it fires STK pushes for the
// conversation engine, records them against appointments, and settles them
// when Daraja's asynchronous callback lands.
package payments

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/frankbeauty/salon-bot/internal/bookings"
	"github.com/frankbeauty/salon-bot/internal/conversation"
	"github.com/frankbeauty/salon-bot/internal/observability/metrics"
	"github.com/frankbeauty/salon-bot/internal/payments/mpesa"
	"github.com/frankbeauty/salon-bot/internal/session"
	"github.com/frankbeauty/salon-bot/internal/templates"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

var paymentsTracer = otel.Tracer("salonbot.internal.payments")

// STKPusher is the slice of the Daraja client this service needs.
type STKPusher interface {
	InitiateSTKPush(ctx context.Context, phone string, amountKES int, accountRef, description string) (*mpesa.STKPushResponse, error)
	QueryStatus(ctx context.Context, checkoutRequestID string) (*mpesa.QueryResponse, error)
}

// Store is the slice of the bookings repository this service needs.
type Store interface {
	RecordPaymentInitiation(ctx context.Context, p bookings.Payment) error
	SetPaymentMethod(ctx context.Context, appointmentID, method string) error
	CompletePayment(ctx context.Context, checkoutRequestID, receipt string) (*bookings.PaymentContext, error)
	FailPayment(ctx context.Context, checkoutRequestID, reason string) error
}

// Notifier pushes a message to a customer on their channel. Implemented by
// the channel mux in the API wiring.
type Notifier interface {
	SendText(ctx context.Context, platform, userID, text string) error
}

// Service satisfies conversation.PaymentInitiator and handles Daraja callbacks.
type Service struct {
	daraja   STKPusher
	store    Store
	logger   *logging.Logger
	metrics  *metrics.PaymentMetrics
	notifier Notifier
	sessions session.Store
	bank     *templates.Bank
}

func NewService(daraja STKPusher, store Store, logger *logging.Logger) *Service {
	if daraja == nil {
		panic("payments: daraja client required")
	}
	if store == nil {
		panic("payments: store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{daraja: daraja, store: store, logger: logger}
}

// WithNotifier enables the payment-confirmed message back to the customer,
// rendered in the language their session last used.
func (s *Service) WithNotifier(n Notifier, sessions session.Store, bank *templates.Bank) *Service {
	s.notifier = n
	s.sessions = sessions
	s.bank = bank
	return s
}

func (s *Service) WithMetrics(m *metrics.PaymentMetrics) *Service {
	s.metrics = m
	return s
}

// InitiateSTKPush fires the prompt and records the pending payment so the
// callback can be matched back. A recording failure after a successful push is
// logged but not surfaced; the customer already has the prompt on their phone.
func (s *Service) InitiateSTKPush(ctx context.Context, req conversation.STKPushRequest) (conversation.STKPushResult, error) {
	ctx, span := paymentsTracer.Start(ctx, "payments.initiate_stk_push",
		trace.WithAttributes(attribute.String("appointment_id", req.AppointmentID)))
	defer span.End()

	resp, err := s.daraja.InitiateSTKPush(ctx, req.Phone, req.AmountKES, req.AccountReference, req.Description)
	if err != nil {
		span.RecordError(err)
		return conversation.STKPushResult{}, err
	}

	if err := s.store.RecordPaymentInitiation(ctx, bookings.Payment{
		AppointmentID:     req.AppointmentID,
		CheckoutRequestID: resp.CheckoutRequestID,
		MerchantRequestID: resp.MerchantRequestID,
		Phone:             req.Phone,
		AmountKES:         req.AmountKES,
	}); err != nil {
		s.logger.Error("payment initiation not recorded; reconcile manually",
			"error", err, "checkout_request_id", resp.CheckoutRequestID, "appointment_id", req.AppointmentID)
	}
	if err := s.store.SetPaymentMethod(ctx, req.AppointmentID, "mpesa_stk"); err != nil {
		s.logger.Error("payment method not recorded", "error", err, "appointment_id", req.AppointmentID)
	}

	return conversation.STKPushResult{
		CheckoutRequestID: resp.CheckoutRequestID,
		CustomerMessage:   resp.CustomerMessage,
	}, nil
}

// PaymentStatus asks Daraja how an earlier STK push settled. Used from the
// admin surface to reconcile payments whose callback never arrived.
func (s *Service) PaymentStatus(ctx context.Context, checkoutRequestID string) (*mpesa.QueryResponse, error) {
	ctx, span := paymentsTracer.Start(ctx, "payments.payment_status",
		trace.WithAttributes(attribute.String("checkout_request_id", checkoutRequestID)))
	defer span.End()

	resp, err := s.daraja.QueryStatus(ctx, checkoutRequestID)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("payments: query status: %w", err)
	}
	return resp, nil
}

// HandleCallback settles a Daraja payment result. Unknown checkout ids are an
// error so the HTTP handler can log replayed or forged callbacks.
func (s *Service) HandleCallback(ctx context.Context, env mpesa.CallbackEnvelope) error {
	ctx, span := paymentsTracer.Start(ctx, "payments.handle_callback")
	defer span.End()

	cb := env.Body.STKCallback
	if !cb.Succeeded() {
		s.metrics.ObserveCallback("failed")
		s.logger.Info("payment not completed",
			"checkout_request_id", cb.CheckoutRequestID, "result_code", cb.ResultCode, "result_desc", cb.ResultDesc)
		if err := s.store.FailPayment(ctx, cb.CheckoutRequestID, cb.ResultDesc); err != nil {
			return fmt.Errorf("payments: mark failed: %w", err)
		}
		return nil
	}

	details := cb.PaymentDetails()
	pc, err := s.store.CompletePayment(ctx, cb.CheckoutRequestID, details.Receipt)
	if err != nil {
		s.metrics.ObserveCallback("unmatched")
		return fmt.Errorf("payments: complete payment: %w", err)
	}
	s.metrics.ObserveCallback("paid")
	s.logger.Info("payment confirmed",
		"checkout_request_id", cb.CheckoutRequestID, "receipt", details.Receipt,
		"appointment_id", pc.AppointmentID, "amount_kes", details.AmountKES)

	s.notifyPaid(ctx, pc, details.Receipt)
	return nil
}

// notifyPaid tells the customer their deposit cleared. Best effort; the
// payment is already settled either way.
func (s *Service) notifyPaid(ctx context.Context, pc *bookings.PaymentContext, receipt string) {
	if s.notifier == nil || s.bank == nil {
		return
	}
	lang := session.LanguageSwenglish
	if s.sessions != nil {
		if sess, err := s.sessions.Get(ctx, pc.PlatformUserID); err == nil && sess != nil {
			lang = sess.Language
		}
	}
	text, err := s.bank.Render(templates.KeyPaymentConfirmed, lang, map[string]string{"receipt": receipt})
	if err != nil {
		s.logger.Error("payment confirmation render failed", "error", err)
		return
	}
	if err := s.notifier.SendText(ctx, pc.Platform, pc.PlatformUserID, text); err != nil {
		s.logger.Error("payment confirmation not delivered",
			"error", err, "platform", pc.Platform, "user_id", pc.PlatformUserID)
	}
}
