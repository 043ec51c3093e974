package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// TimePattern is the lexical shape of a clock token. It is deliberately
// loose (99:99 tokenizes); ParseClock enforces the range.
const TimePattern = `\d?\d:\d{2}`

var clockRe = regexp.MustCompile(`^` + TimePattern + `$`)

// Clock is a same-day time of day, in minutes since midnight.
//
// Promotion may push a Clock before midnight or past 23:59; such values are
// kept as-is since schedules never span days.
type Clock int

// NewClock builds a Clock from an hour and minute without range checks.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses an H:MM or HH:MM token with hour 0-23 and minute 0-59.
func ParseClock(tok string) (Clock, error) {
	tok = strings.TrimSpace(tok)
	if !clockRe.MatchString(tok) {
		return 0, fmt.Errorf("parse clock %q: %w", tok, ErrInvalidTimeFormat)
	}

	h, m, _ := strings.Cut(tok, ":")
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: hour: %w", tok, ErrInvalidTimeFormat)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: minute: %w", tok, ErrInvalidTimeFormat)
	}

	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range: %w", tok, ErrInvalidTimeFormat)
	}

	return NewClock(hour, minute), nil
}

func (c Clock) Add(d time.Duration) Clock {
	return c + Clock(d/time.Minute)
}

func (c Clock) Sub(other Clock) time.Duration {
	return time.Duration(c-other) * time.Minute
}

func (c Clock) Before(other Clock) bool { return c < other }

func (c Clock) Hour() int { return int(c) / 60 }

func (c Clock) Minute() int { return int(c) % 60 }

// String renders the clock as H:MM. Values before midnight carry a leading minus.
func (c Clock) String() string {
	if c < 0 {
		return "-" + (-c).String()
	}
	return fmt.Sprintf("%d:%02d", c.Hour(), c.Minute())
}

// FormatDuration renders a duration as H:MM.
func FormatDuration(d time.Duration) string {
	return Clock(d / time.Minute).String()
}
