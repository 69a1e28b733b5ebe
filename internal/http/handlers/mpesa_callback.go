package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/frankbeauty/salon-bot/internal/payments"
	"github.com/frankbeauty/salon-bot/internal/payments/mpesa"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// MpesaCallbackHandler receives Daraja's asynchronous STK push results.
type MpesaCallbackHandler struct {
	payments *payments.Service
	logger   *logging.Logger
}

func NewMpesaCallbackHandler(svc *payments.Service, logger *logging.Logger) *MpesaCallbackHandler {
	if svc == nil {
		panic("handlers: payments service required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &MpesaCallbackHandler{payments: svc, logger: logger}
}

// Handle acknowledges every delivery with Daraja's expected envelope; a non-ack
// makes Safaricom retry, and a forged or replayed callback is not worth a
// retry storm. Failures are logged for reconciliation instead.
func (h *MpesaCallbackHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var env mpesa.CallbackEnvelope
	if err := json.NewDecoder(r.Body).Decode(&env); err != nil {
		h.logger.Warn("mpesa callback decode failed", "error", err)
		h.ack(w)
		return
	}

	if err := h.payments.HandleCallback(r.Context(), env); err != nil {
		h.logger.Error("mpesa callback not settled",
			"error", err, "checkout_request_id", env.Body.STKCallback.CheckoutRequestID)
	}
	h.ack(w)
}

func (h *MpesaCallbackHandler) ack(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"ResultCode": 0, "ResultDesc": "Accepted"})
}
