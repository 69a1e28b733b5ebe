package whatsapp

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSendText(t *testing.T) {
	var gotPath, gotAuth string
	var gotReq sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("decode: %v", err)
		}
		json.NewEncoder(w).Encode(SendResponse{MessagingProduct: "whatsapp"})
	}))
	defer srv.Close()

	c := NewClient("token-1", "10987654321")
	c.SetGraphAPIBase(srv.URL)

	if _, err := c.SendText(context.Background(), "254712345678", "Karibu!"); err != nil {
		t.Fatalf("SendText: %v", err)
	}
	if gotPath != "/v18.0/10987654321/messages" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotAuth != "Bearer token-1" {
		t.Fatalf("auth = %q", gotAuth)
	}
	if gotReq.To != "254712345678" || gotReq.Type != "text" || gotReq.Text == nil || gotReq.Text.Body != "Karibu!" {
		t.Fatalf("request = %+v", gotReq)
	}
}

func TestSendButtons(t *testing.T) {
	var gotReq sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(SendResponse{})
	}))
	defer srv.Close()

	c := NewClient("token-1", "10987654321")
	c.SetGraphAPIBase(srv.URL)

	_, err := c.SendButtons(context.Background(), "254712345678", "Choose:", []ButtonReply{
		{ID: "services", Title: "Services"},
		{ID: "prices", Title: "Prices"},
	})
	if err != nil {
		t.Fatalf("SendButtons: %v", err)
	}
	if gotReq.Type != "interactive" || gotReq.Interactive == nil ||
		len(gotReq.Interactive.Action.Buttons) != 2 ||
		gotReq.Interactive.Action.Buttons[0].Reply.ID != "services" {
		t.Fatalf("request = %+v", gotReq)
	}
}

func TestSendTextGraphError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"message":"Invalid OAuth access token"}}`))
	}))
	defer srv.Close()

	c := NewClient("bad", "10987654321")
	c.SetGraphAPIBase(srv.URL)
	if _, err := c.SendText(context.Background(), "254712345678", "hi"); err == nil {
		t.Fatal("expected error for non-200 response")
	}
}

func TestInboundTexts(t *testing.T) {
	payload := `{
	  "object": "whatsapp_business_account",
	  "entry": [{"id": "1", "changes": [{"field": "messages", "value": {
	    "messaging_product": "whatsapp",
	    "metadata": {"display_phone_number": "254700000000", "phone_number_id": "10987654321"},
	    "messages": [
	      {"from": "254712345678", "id": "wamid.1", "type": "text", "text": {"body": "niaje"}},
	      {"from": "254712345678", "id": "wamid.2", "type": "interactive",
	       "interactive": {"type": "button_reply", "button_reply": {"id": "prices", "title": "Prices"}}},
	      {"from": "254712345678", "id": "wamid.3", "type": "image"}
	    ]
	  }}]}]
	}`
	var event WebhookEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	msgs := event.InboundTexts()
	if len(msgs) != 2 {
		t.Fatalf("messages = %+v", msgs)
	}
	if msgs[0].Text != "niaje" || msgs[1].Text != "prices" || msgs[0].From != "254712345678" {
		t.Fatalf("messages = %+v", msgs)
	}
}

func TestInboundTextsIgnoresStatuses(t *testing.T) {
	payload := `{"object":"whatsapp_business_account","entry":[{"id":"1","changes":[{"field":"messages","value":{
	  "messaging_product":"whatsapp",
	  "statuses":[{"id":"wamid.1","status":"delivered","timestamp":"1700000000"}]
	}}]}]}`
	var event WebhookEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msgs := event.InboundTexts(); len(msgs) != 0 {
		t.Fatalf("status-only event produced messages: %+v", msgs)
	}
}

func TestVerifySignature(t *testing.T) {
	secret := "app-secret"
	body := []byte(`{"object":"whatsapp_business_account"}`)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	header := "sha256=" + hex.EncodeToString(mac.Sum(nil))

	if !VerifySignature(secret, body, header) {
		t.Fatal("valid signature rejected")
	}
	if VerifySignature(secret, body, "sha256=deadbeef") {
		t.Fatal("bad signature accepted")
	}
	if VerifySignature(secret, body, "") {
		t.Fatal("empty header accepted")
	}
	if VerifySignature("wrong-secret", body, header) {
		t.Fatal("wrong secret accepted")
	}
}
