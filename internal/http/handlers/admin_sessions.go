package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/frankbeauty/salon-bot/internal/session"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

// AdminSessionsHandler exposes a customer's live conversation state so staff
// can see where a stuck booking got to.
type AdminSessionsHandler struct {
	sessions session.Store
	logger   *logging.Logger
}

func NewAdminSessionsHandler(sessions session.Store, logger *logging.Logger) *AdminSessionsHandler {
	if sessions == nil {
		panic("handlers: session store required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AdminSessionsHandler{sessions: sessions, logger: logger}
}

// Get returns the session for a platform user id, or 404 when no conversation
// is in progress.
func (h *AdminSessionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	if userID == "" {
		http.Error(w, "user id required", http.StatusBadRequest)
		return
	}

	s, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		h.logger.Error("session lookup failed", "error", err, "user_id", userID)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if s == nil {
		http.Error(w, "no active session", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}
