// Package bookings persists customers, appointments and deposit payments in
// Postgres. Conversation state stays in the session store; everything here is
// the durable record staff and the admin API read.
package bookings

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository provides persistence helpers for bookings.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a repository backed by a database/sql pool.
func NewRepository(db *sql.DB) *Repository {
	if db == nil {
		panic("bookings: db required")
	}
	return &Repository{db: db}
}

// UpsertCustomer creates or refreshes the customer row for a platform user
// and returns its id. Name, phone and language overwrite earlier values;
// customers re-book with corrected details all the time. Each call counts as
// one interaction.
func (r *Repository) UpsertCustomer(ctx context.Context, platform, platformUserID, name, phone, language string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO customers (id, platform, platform_user_id, name, phone, preferred_language, interactions)
		VALUES ($1, $2, $3, $4, $5, $6, 1)
		ON CONFLICT (platform, platform_user_id)
		DO UPDATE SET name = EXCLUDED.name, phone = EXCLUDED.phone,
			preferred_language = EXCLUDED.preferred_language,
			interactions = customers.interactions + 1, updated_at = now()
		RETURNING id`,
		uuid.NewString(), platform, platformUserID, name, phone, language,
	).Scan(&id)
	if err != nil {
		return "", fmt.Errorf("bookings: upsert customer: %w", err)
	}
	return id, nil
}

// CreateAppointment inserts a pending-payment appointment and returns its id.
func (r *Repository) CreateAppointment(ctx context.Context, customerID, service, date, timeOfDay string, depositKES int) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO appointments (id, customer_id, service, date, time, deposit_kes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, customerID, service, date, timeOfDay, depositKES, StatusPendingPayment,
	)
	if err != nil {
		return "", fmt.Errorf("bookings: insert appointment: %w", err)
	}
	return id, nil
}

// SetPaymentMethod records how the customer chose to pay.
func (r *Repository) SetPaymentMethod(ctx context.Context, appointmentID, method string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE appointments SET payment_method = $1, updated_at = now() WHERE id = $2`,
		method, appointmentID,
	)
	if err != nil {
		return fmt.Errorf("bookings: set payment method: %w", err)
	}
	return nil
}

// ListUpcoming returns appointments from a date onward, soonest first, with
// customer details joined in for the admin view.
func (r *Repository) ListUpcoming(ctx context.Context, fromDate string, limit int) ([]Appointment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.customer_id, a.service, a.date, a.time, a.deposit_kes,
		       a.status, COALESCE(a.payment_method, ''), a.created_at,
		       c.name, c.phone
		FROM appointments a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.date >= $1 AND a.status <> $2
		ORDER BY a.date, a.time
		LIMIT $3`,
		fromDate, StatusCancelled, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: list upcoming: %w", err)
	}
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		var a Appointment
		if err := rows.Scan(&a.ID, &a.CustomerID, &a.Service, &a.Date, &a.Time, &a.DepositKES,
			&a.Status, &a.PaymentMethod, &a.CreatedAt, &a.CustomerName, &a.CustomerPhone); err != nil {
			return nil, fmt.Errorf("bookings: scan appointment: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: iterate appointments: %w", err)
	}
	return out, nil
}

// ListRecentPayments returns the latest payment attempts, newest first, for
// the admin reconciliation view.
func (r *Repository) ListRecentPayments(ctx context.Context, limit int) ([]Payment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, appointment_id, checkout_request_id, merchant_request_id,
		       phone, amount_kes, COALESCE(receipt, ''), status, created_at
		FROM payments
		ORDER BY created_at DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("bookings: list payments: %w", err)
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.AppointmentID, &p.CheckoutRequestID, &p.MerchantRequestID,
			&p.Phone, &p.AmountKES, &p.Receipt, &p.Status, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("bookings: scan payment: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("bookings: iterate payments: %w", err)
	}
	return out, nil
}

// RecordPaymentInitiation inserts a pending payment row keyed by the Daraja
// checkout id so the asynchronous callback can find its appointment.
func (r *Repository) RecordPaymentInitiation(ctx context.Context, p Payment) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO payments (id, appointment_id, checkout_request_id, merchant_request_id, phone, amount_kes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		uuid.NewString(), p.AppointmentID, p.CheckoutRequestID, p.MerchantRequestID, p.Phone, p.AmountKES, PaymentPending,
	)
	if err != nil {
		return fmt.Errorf("bookings: record payment initiation: %w", err)
	}
	return nil
}

// CompletePayment marks a payment paid, confirms its appointment and returns
// the context needed to notify the customer. sql.ErrNoRows when the checkout
// id is unknown (replayed or forged callback).
func (r *Repository) CompletePayment(ctx context.Context, checkoutRequestID, receipt string) (*PaymentContext, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("bookings: begin complete payment: %w", err)
	}
	defer tx.Rollback()

	var appointmentID string
	err = tx.QueryRowContext(ctx, `
		UPDATE payments SET status = $1, receipt = $2, updated_at = now()
		WHERE checkout_request_id = $3 AND status = $4
		RETURNING appointment_id`,
		PaymentPaid, receipt, checkoutRequestID, PaymentPending,
	).Scan(&appointmentID)
	if err != nil {
		return nil, fmt.Errorf("bookings: complete payment %s: %w", checkoutRequestID, err)
	}

	pc := &PaymentContext{AppointmentID: appointmentID}
	err = tx.QueryRowContext(ctx, `
		UPDATE appointments a SET status = $1, updated_at = now()
		FROM customers c
		WHERE a.id = $2 AND c.id = a.customer_id
		RETURNING a.service, c.platform, c.platform_user_id`,
		StatusConfirmed, appointmentID,
	).Scan(&pc.Service, &pc.Platform, &pc.PlatformUserID)
	if err != nil {
		return nil, fmt.Errorf("bookings: confirm appointment %s: %w", appointmentID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("bookings: commit complete payment: %w", err)
	}
	return pc, nil
}

// FailPayment marks a pending payment failed; the appointment stays
// pending_payment so the customer can retry or pay at the salon.
func (r *Repository) FailPayment(ctx context.Context, checkoutRequestID, reason string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE payments SET status = $1, failure_reason = $2, updated_at = now()
		WHERE checkout_request_id = $3 AND status = $4`,
		PaymentFailed, reason, checkoutRequestID, PaymentPending,
	)
	if err != nil {
		return fmt.Errorf("bookings: fail payment %s: %w", checkoutRequestID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
