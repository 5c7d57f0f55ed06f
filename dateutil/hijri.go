// Package dateutil converts and formats the calendar dates stored on leave
// records.
package dateutil

import (
	"fmt"
	"strings"
	"time"

	"github.com/hablullah/go-hijri"
)

// layouts accepted by Parse, most specific first.
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Parse reads a stored or submitted date value. Only the calendar date
// matters; a zoned timestamp keeps the date of its own zone.
func Parse(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ToHijri converts a Gregorian date value to its Umm al-Qura date formatted
// as DD-MM-YYYY. It reports false for empty, unparseable or out of range
// input. The result is meant to be stored when the record is written.
func ToHijri(value string) (string, bool) {
	t, ok := Parse(value)
	if !ok {
		return "", false
	}
	return HijriOf(t)
}

// HijriOf is ToHijri for an already parsed date.
func HijriOf(t time.Time) (string, bool) {
	if t.IsZero() {
		return "", false
	}
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	h, err := hijri.CreateUmmAlQuraDate(day)
	if err != nil {
		return "", false
	}
	return fmt.Sprintf("%02d-%02d-%d", h.Day, h.Month, h.Year), true
}

// HijriPtr returns the conversion as a nullable column value.
func HijriPtr(value string) *string {
	h, ok := ToHijri(value)
	if !ok {
		return nil
	}
	return &h
}
