package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"

	"github.com/frankbeauty/salon-bot/internal/bookings"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

func TestAdminAppointmentsList(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT a.id`).
		WithArgs("2026-03-03", bookings.StatusCancelled, 50).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "customer_id", "service", "date", "time", "deposit_kes",
			"status", "payment_method", "created_at", "name", "phone",
		}).AddRow("appt-1", "cust-1", "Haircut & Styling", "2026-03-04", "14:00", 500,
			bookings.StatusConfirmed, "mpesa_stk", time.Now(), "Wanjiku", "254712345678"))

	h := NewAdminAppointmentsHandler(bookings.NewRepository(db), logging.Default()).
		WithClock(func() time.Time { return time.Date(2026, 3, 3, 8, 0, 0, 0, time.UTC) })

	req := httptest.NewRequest(http.MethodGet, "/admin/appointments", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Appointments []appointmentView `json:"appointments"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Appointments) != 1 || resp.Appointments[0].CustomerName != "Wanjiku" {
		t.Fatalf("appointments = %+v", resp.Appointments)
	}
}

func TestAdminAppointmentsBadParams(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()
	h := NewAdminAppointmentsHandler(bookings.NewRepository(db), logging.Default())

	for _, url := range []string{
		"/admin/appointments?from=03-03-2026",
		"/admin/appointments?limit=0",
		"/admin/appointments?limit=banana",
	} {
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rec := httptest.NewRecorder()
		h.List(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", url, rec.Code)
		}
	}
}
