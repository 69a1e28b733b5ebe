package conversation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Date and time parsing is deliberately minimal: a fixed vocabulary of
// relative-day words and coarse time-of-day buckets plus literal clock times.
// Anything outside the vocabulary is rejected and the user is re-prompted;
// there is no general natural-language parser here.

var weekdays = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

// ParseDate maps a date phrase to an ISO date (YYYY-MM-DD) relative to now.
// Understands today/tomorrow (and the Swahili leo/kesho) and weekday names,
// which resolve to the next occurrence of that day.
func ParseDate(text string, now time.Time) (string, bool) {
	lower := strings.ToLower(text)

	switch {
	case strings.Contains(lower, "tomorrow"), strings.Contains(lower, "kesho"):
		return now.AddDate(0, 0, 1).Format("2006-01-02"), true
	case strings.Contains(lower, "today"), strings.Contains(lower, "leo"):
		return now.Format("2006-01-02"), true
	}

	for name, day := range weekdays {
		if strings.Contains(lower, name) {
			offset := (int(day) - int(now.Weekday()) + 7) % 7
			if offset == 0 {
				offset = 7
			}
			return now.AddDate(0, 0, offset).Format("2006-01-02"), true
		}
	}
	return "", false
}

var clockRe = regexp.MustCompile(`(\d{1,2})(?::(\d{2}))?\s*(am|pm)`)

// ParseTime maps a time phrase to HH:MM. Literal clock times ("2pm",
// "10:30 am") win over the coarse buckets morning/afternoon/evening.
func ParseTime(text string) (string, bool) {
	lower := strings.ToLower(text)

	if m := clockRe.FindStringSubmatch(lower); m != nil {
		hour, err := strconv.Atoi(m[1])
		if err == nil && hour >= 1 && hour <= 12 {
			minute := 0
			if m[2] != "" {
				minute, _ = strconv.Atoi(m[2])
			}
			if minute < 60 {
				if m[3] == "pm" && hour != 12 {
					hour += 12
				}
				if m[3] == "am" && hour == 12 {
					hour = 0
				}
				return fmt.Sprintf("%02d:%02d", hour, minute), true
			}
		}
	}

	switch {
	case strings.Contains(lower, "morning"), strings.Contains(lower, "asubuhi"):
		return "09:00", true
	case strings.Contains(lower, "afternoon"), strings.Contains(lower, "mchana"):
		return "14:00", true
	case strings.Contains(lower, "evening"), strings.Contains(lower, "jioni"):
		return "17:00", true
	}
	return "", false
}
