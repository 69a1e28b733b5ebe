package bookings

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/frankbeauty/salon-bot/internal/conversation"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

var bookingsTracer = otel.Tracer("salonbot.internal.bookings")

// Service persists confirmed drafts coming out of the conversation engine.
// It satisfies conversation.AppointmentSaver.
type Service struct {
	repo   *Repository
	logger *logging.Logger
}

// NewService constructs a bookings service.
func NewService(repo *Repository, logger *logging.Logger) *Service {
	if repo == nil {
		panic("bookings: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// SaveAppointment upserts the customer and inserts a pending-payment
// appointment, returning the appointment id.
func (s *Service) SaveAppointment(ctx context.Context, req conversation.BookingRequest) (string, error) {
	ctx, span := bookingsTracer.Start(ctx, "bookings.save_appointment")
	defer span.End()
	span.SetAttributes(
		attribute.String("platform", req.Platform),
		attribute.String("service", req.Service),
	)

	customerID, err := s.repo.UpsertCustomer(ctx, req.Platform, req.UserID, req.CustomerName, req.CustomerPhone, req.Language)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	apptID, err := s.repo.CreateAppointment(ctx, customerID, req.Service, req.Date, req.Time, req.DepositKES)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	s.logger.Info("appointment saved",
		"appointment_id", apptID, "customer_id", customerID,
		"service", req.Service, "date", req.Date, "time", req.Time)
	return apptID, nil
}
