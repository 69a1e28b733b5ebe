package salon

import (
	"strings"
	"testing"
	"time"

	"github.com/frankbeauty/salon-bot/internal/intent"
)

func TestLookup(t *testing.T) {
	info, ok := Lookup(intent.ServiceHair)
	if !ok {
		t.Fatal("hair must be in the catalogue")
	}
	if info.DisplayName != "Haircut & Styling" || info.DepositKES != 500 {
		t.Fatalf("unexpected entry: %+v", info)
	}

	if _, ok := Lookup(intent.ServiceNone); ok {
		t.Fatal("empty category must not resolve")
	}
}

func TestServiceMenu(t *testing.T) {
	menu := ServiceMenu()
	lines := strings.Split(menu, "\n")
	if len(lines) != len(Catalogue) {
		t.Fatalf("menu has %d lines, want %d", len(lines), len(Catalogue))
	}
	if !strings.Contains(menu, "Haircut & Styling - From KES 500") {
		t.Fatalf("menu missing hair entry:\n%s", menu)
	}
	if strings.HasSuffix(menu, "\n") {
		t.Fatal("menu must not end with a newline")
	}
}

func TestPriceList(t *testing.T) {
	prices := PriceList()
	if !strings.Contains(prices, "Makeup Services: KES 1500-3000") {
		t.Fatalf("price list missing makeup range:\n%s", prices)
	}
}

func TestIsOpen(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"weekday mid-morning", time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC), true},  // Wednesday
		{"weekday at open", time.Date(2026, 3, 4, 8, 0, 0, 0, time.UTC), true},
		{"weekday before open", time.Date(2026, 3, 4, 7, 59, 0, 0, time.UTC), false},
		{"weekday at close", time.Date(2026, 3, 4, 19, 0, 0, 0, time.UTC), true},
		{"weekday after close", time.Date(2026, 3, 4, 19, 1, 0, 0, time.UTC), false},
		{"saturday morning", time.Date(2026, 3, 7, 9, 30, 0, 0, time.UTC), true},
		{"sunday evening", time.Date(2026, 3, 8, 17, 0, 0, 0, time.UTC), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOpen(tt.at); got != tt.want {
				t.Fatalf("IsOpen(%v) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}
