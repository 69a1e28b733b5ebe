package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/frankbeauty/salon-bot/internal/bookings"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

const defaultAppointmentLimit = 50

// AdminAppointmentsHandler serves the staff-facing appointment list.
type AdminAppointmentsHandler struct {
	repo   *bookings.Repository
	logger *logging.Logger
	clock  func() time.Time
}

func NewAdminAppointmentsHandler(repo *bookings.Repository, logger *logging.Logger) *AdminAppointmentsHandler {
	if repo == nil {
		panic("handlers: bookings repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminAppointmentsHandler{repo: repo, logger: logger, clock: time.Now}
}

func (h *AdminAppointmentsHandler) WithClock(clock func() time.Time) *AdminAppointmentsHandler {
	if clock != nil {
		h.clock = clock
	}
	return h
}

type appointmentView struct {
	ID            string `json:"id"`
	Service       string `json:"service"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	DepositKES    int    `json:"deposit_kes"`
	Status        string `json:"status"`
	PaymentMethod string `json:"payment_method,omitempty"`
}

// List returns upcoming appointments. Query params: from (ISO date, default
// today) and limit.
func (h *AdminAppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	from := r.URL.Query().Get("from")
	if from == "" {
		from = h.clock().Format("2006-01-02")
	} else if _, err := time.Parse("2006-01-02", from); err != nil {
		http.Error(w, "invalid from date, want YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	limit := defaultAppointmentLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = n
	}

	appts, err := h.repo.ListUpcoming(r.Context(), from, limit)
	if err != nil {
		h.logger.Error("appointment list failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	views := make([]appointmentView, 0, len(appts))
	for _, a := range appts {
		views = append(views, appointmentView{
			ID:            a.ID,
			Service:       a.Service,
			Date:          a.Date,
			Time:          a.Time,
			CustomerName:  a.CustomerName,
			CustomerPhone: a.CustomerPhone,
			DepositKES:    a.DepositKES,
			Status:        a.Status,
			PaymentMethod: a.PaymentMethod,
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"appointments": views})
}
