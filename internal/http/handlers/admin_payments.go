package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/frankbeauty/salon-bot/internal/bookings"
	"github.com/frankbeauty/salon-bot/internal/payments/mpesa"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

const defaultPaymentLimit = 50

// PaymentStatusQuerier asks Daraja how an earlier STK push settled.
// Implemented by the payments service.
type PaymentStatusQuerier interface {
	PaymentStatus(ctx context.Context, checkoutRequestID string) (*mpesa.QueryResponse, error)
}

// AdminPaymentsHandler serves the staff-facing payment reconciliation views.
type AdminPaymentsHandler struct {
	repo   *bookings.Repository
	status PaymentStatusQuerier
	logger *logging.Logger
}

func NewAdminPaymentsHandler(repo *bookings.Repository, logger *logging.Logger) *AdminPaymentsHandler {
	if repo == nil {
		panic("handlers: bookings repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminPaymentsHandler{repo: repo, logger: logger}
}

// WithStatusQuerier enables the per-payment Daraja status endpoint.
func (h *AdminPaymentsHandler) WithStatusQuerier(q PaymentStatusQuerier) *AdminPaymentsHandler {
	h.status = q
	return h
}

type paymentView struct {
	ID                string    `json:"id"`
	AppointmentID     string    `json:"appointment_id"`
	CheckoutRequestID string    `json:"checkout_request_id"`
	Phone             string    `json:"phone"`
	AmountKES         int       `json:"amount_kes"`
	Receipt           string    `json:"receipt,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
}

// List returns the latest payment attempts, newest first. Query param: limit.
func (h *AdminPaymentsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultPaymentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	payments, err := h.repo.ListRecentPayments(r.Context(), limit)
	if err != nil {
		h.logger.Error("payment list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	views := make([]paymentView, 0, len(payments))
	for _, p := range payments {
		views = append(views, paymentView{
			ID:                p.ID,
			AppointmentID:     p.AppointmentID,
			CheckoutRequestID: p.CheckoutRequestID,
			Phone:             p.Phone,
			AmountKES:         p.AmountKES,
			Receipt:           p.Receipt,
			Status:            p.Status,
			CreatedAt:         p.CreatedAt,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"payments": views})
}

// Status queries Daraja for the live state of one STK push, for payments that
// are still pending because the callback never landed.
func (h *AdminPaymentsHandler) Status(w http.ResponseWriter, r *http.Request) {
	if h.status == nil {
		http.Error(w, "status queries not configured", http.StatusNotFound)
		return
	}
	checkoutID := chi.URLParam(r, "checkoutRequestID")
	if checkoutID == "" {
		http.Error(w, "missing checkout request id", http.StatusBadRequest)
		return
	}

	resp, err := h.status.PaymentStatus(r.Context(), checkoutID)
	if err != nil {
		h.logger.Error("payment status query failed", "error", err, "checkout_request_id", checkoutID)
		http.Error(w, "status query failed", http.StatusBadGateway)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
