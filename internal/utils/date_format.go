package utils

import (
	"fmt"
	"strings"
	"time"
)

// SQLDateLayout is the storage and fallback input layout.
const SQLDateLayout = "2006-01-02"

// DateFormatter converts dates from and to their display form.
type DateFormatter struct {
	display string
	input   []string
}

// NewDateFormatter builds a formatter for a day/month/year ordering: "dmy", "mdy" or "ymd".
// Unknown orderings fall back to "dmy".
func NewDateFormatter(order string) *DateFormatter {
	switch strings.ToLower(order) {
	case "mdy":
		return &DateFormatter{display: "01/02/2006", input: []string{"1/2/2006", "1-2-2006", SQLDateLayout}}
	case "ymd":
		return &DateFormatter{display: SQLDateLayout, input: []string{SQLDateLayout, "2006/1/2"}}
	default:
		return &DateFormatter{display: "02/01/2006", input: []string{"2/1/2006", "2-1-2006", "2.1.2006", SQLDateLayout}}
	}
}

// Parse reads a display date; the result is midnight UTC.
func (f *DateFormatter) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range f.input {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Format renders a date, or an empty string for the zero time.
func (f *DateFormatter) Format(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.display)
}

// FormatTimestamp renders a timestamp with the display date and a 24h time.
func (f *DateFormatter) FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(f.display + " 15:04:05")
}

// ParseTimestamp reads a display timestamp; a bare date is accepted as midnight.
func (f *DateFormatter) ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range f.input {
		if t, err := time.ParseInLocation(layout+" 15:04:05", s, time.UTC); err == nil {
			return t, nil
		}
		if t, err := time.ParseInLocation(layout+" 15:04", s, time.UTC); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return f.Parse(s)
}
