package conversation

import (
	"testing"
	"time"
)

// Wednesday 2026-03-04, mid-morning.
var parseNow = time.Date(2026, 3, 4, 10, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"today", "today please", "2026-03-04", true},
		{"leo", "leo tu", "2026-03-04", true},
		{"tomorrow", "Tomorrow", "2026-03-05", true},
		{"kesho", "kesho asubuhi", "2026-03-05", true},
		{"later this week", "friday", "2026-03-06", true},
		{"earlier weekday rolls forward", "monday", "2026-03-09", true},
		{"same weekday means next week", "wednesday", "2026-03-11", true},
		{"embedded weekday", "can I come on Saturday?", "2026-03-07", true},
		{"unparseable", "sometime soon", "", false},
		{"numeric date unsupported", "12/03/2026", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(tt.input, parseNow)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ParseDate(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParseTime(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
		ok    bool
	}{
		{"pm literal", "2pm", "14:00", true},
		{"am literal", "10am", "10:00", true},
		{"spaced literal", "10 am", "10:00", true},
		{"with minutes", "2:30 pm", "14:30", true},
		{"noon", "12pm", "12:00", true},
		{"midnight", "12am", "00:00", true},
		{"morning bucket", "in the morning", "09:00", true},
		{"afternoon bucket", "afternoon works", "14:00", true},
		{"evening bucket", "evening", "17:00", true},
		{"jioni", "jioni", "17:00", true},
		{"literal beats bucket", "tomorrow morning at 11am", "11:00", true},
		{"no time", "whenever", "", false},
		{"24h unsupported", "14:00", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Fatalf("ParseTime(%q) = %q, %v; want %q, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}
