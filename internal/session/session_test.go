package session

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC)

func TestExpired(t *testing.T) {
	s := New("u1", "telegram")
	if s.Expired(testNow, 30*time.Minute) {
		t.Fatal("fresh session with no activity must not be expired")
	}
	s.Touch(testNow)
	if s.Expired(testNow.Add(30*time.Minute), 30*time.Minute) {
		t.Fatal("exactly at the timeout is still live")
	}
	if !s.Expired(testNow.Add(31*time.Minute), 30*time.Minute) {
		t.Fatal("past the timeout must be expired")
	}
}

func TestResetKeepsLanguage(t *testing.T) {
	s := New("u1", "telegram")
	s.Language = LanguageSheng
	s.State = StateAwaitingDate
	s.Draft = Draft{Service: "Haircut & Styling", Date: "2026-03-04"}
	s.ServicesViewedAt = testNow

	s.Reset()
	if s.State != StateIdle || !s.Draft.Empty() || !s.ServicesViewedAt.IsZero() {
		t.Fatalf("reset incomplete: %+v", s)
	}
	if s.Language != LanguageSheng {
		t.Fatal("reset must not touch language")
	}
}

func TestAppendHistoryBounded(t *testing.T) {
	s := New("u1", "telegram")
	for i := 0; i < HistoryLimit+5; i++ {
		s.AppendHistory("user", "msg", testNow)
	}
	if len(s.History) != HistoryLimit {
		t.Fatalf("history length = %d, want %d", len(s.History), HistoryLimit)
	}
}

func TestDraftMerge(t *testing.T) {
	d := Draft{Service: "Haircut & Styling", Date: "2026-03-04"}
	d.Merge(Draft{Time: "14:00", Date: ""})
	if d.Service != "Haircut & Styling" || d.Date != "2026-03-04" || d.Time != "14:00" {
		t.Fatalf("merge result: %+v", d)
	}
}

func TestDraftReadyToConfirm(t *testing.T) {
	d := Draft{Service: "s", Date: "d", Time: "t", CustomerName: "n"}
	if d.ReadyToConfirm() {
		t.Fatal("missing phone must not be ready")
	}
	d.CustomerPhone = "254712345678"
	if !d.ReadyToConfirm() {
		t.Fatal("complete draft must be ready")
	}
}

func TestRecentlyViewedServices(t *testing.T) {
	s := New("u1", "telegram")
	if s.RecentlyViewedServices(testNow, 2*time.Minute) {
		t.Fatal("never viewed must be false")
	}
	s.ServicesViewedAt = testNow
	if !s.RecentlyViewedServices(testNow.Add(time.Minute), 2*time.Minute) {
		t.Fatal("inside the window must be true")
	}
	if s.RecentlyViewedServices(testNow.Add(3*time.Minute), 2*time.Minute) {
		t.Fatal("outside the window must be false")
	}
}
