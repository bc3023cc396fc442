// Package timetable holds the running-order algorithms: clock arithmetic,
// canonical slot ordering, generation from a roster, draft edits and the
// publish gate. Nothing here performs I/O.
package timetable

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kirinyoku/ttgo/internal/domain"
)

// DayMinutes is the length of one day in minutes.
const DayMinutes = 24 * 60

// MaxClockHours bounds the hour field. Schedules may run past midnight
// but never into a third day.
const MaxClockHours = 48

// ParseClock parses "H:MM", "HH:MM" or "HH:MM:SS" into minutes since
// midnight. Hours are not capped at 23 so generated schedules that ran past
// midnight still parse. Every field is plain digits; signs are rejected.
func ParseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}

	if len(parts[0]) > 2 {
		return 0, false
	}
	h, ok := clockDigits(parts[0])
	if !ok || h >= MaxClockHours {
		return 0, false
	}

	if len(parts[1]) != 2 {
		return 0, false
	}
	m, ok := clockDigits(parts[1])
	if !ok || m > 59 {
		return 0, false
	}

	if len(parts) == 3 {
		if len(parts[2]) != 2 {
			return 0, false
		}
		sec, ok := clockDigits(parts[2])
		if !ok || sec > 59 {
			return 0, false
		}
	}

	return h*60 + m, true
}

func clockDigits(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FormatClock renders minutes as zero-padded "HH:MM". It does not wrap.
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// WrapDay normalises minutes into [0, DayMinutes).
func WrapDay(minutes int) int {
	v := minutes % DayMinutes
	if v < 0 {
		v += DayMinutes
	}
	return v
}

func parseClockPtr(s *string) (int, bool) {
	if s == nil || *s == "" {
		return 0, false
	}
	return ParseClock(*s)
}

func clockPtr(minutes int) *string {
	s := FormatClock(minutes)
	return &s
}

// SlotDuration returns the slot length in minutes. An end before the start
// is read as crossing midnight once. Missing bounds or a non-positive length
// report false.
func SlotDuration(s domain.Slot) (int, bool) {
	start, ok := parseClockPtr(s.StartTime)
	if !ok {
		return 0, false
	}
	end, ok := parseClockPtr(s.EndTime)
	if !ok {
		return 0, false
	}

	d := end - start
	if d < 0 {
		d += DayMinutes
	}
	if d <= 0 {
		return 0, false
	}
	return d, true
}
