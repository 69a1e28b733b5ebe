package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/frankbeauty/salon-bot/internal/session"
	"github.com/frankbeauty/salon-bot/pkg/logging"
)

func newSessionsRouter(store session.Store) http.Handler {
	r := chi.NewRouter()
	h := NewAdminSessionsHandler(store, logging.Default())
	r.Get("/admin/sessions/{userID}", h.Get)
	return r
}

func TestAdminSessionGet(t *testing.T) {
	store := session.NewMemoryStore()
	s := session.New("42", "telegram")
	s.State = session.StateAwaitingDate
	s.Language = session.LanguageSheng
	s.Draft.Service = "Haircut & Styling"
	if err := store.Put(context.Background(), s); err != nil {
		t.Fatalf("put: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/sessions/42", nil)
	rec := httptest.NewRecorder()
	newSessionsRouter(store).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var got session.Session
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.State != session.StateAwaitingDate || got.Language != session.LanguageSheng {
		t.Fatalf("session = %+v", got)
	}
}

func TestAdminSessionNotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/admin/sessions/nobody", nil)
	rec := httptest.NewRecorder()
	newSessionsRouter(session.NewMemoryStore()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
