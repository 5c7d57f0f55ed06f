package dateutil

import "time"

const (
	// LayoutDMY is the day-first form printed on certificates.
	LayoutDMY = "02-01-2006"
	// LayoutISO is the form used by the inquiry pages and the API.
	LayoutISO = "2006-01-02"
)

// FormatDMY renders t as DD-MM-YYYY, or "" for the zero time.
func FormatDMY(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutDMY)
}

// FormatISO renders t as YYYY-MM-DD, or "" for the zero time.
func FormatISO(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LayoutISO)
}

// ReformatDMY parses value and renders it as DD-MM-YYYY. Values that do not
// parse are returned unchanged.
func ReformatDMY(value string) string {
	t, ok := Parse(value)
	if !ok {
		return value
	}
	return FormatDMY(t)
}

// ReformatISO parses value and renders it as YYYY-MM-DD. Values that do not
// parse are returned unchanged.
func ReformatISO(value string) string {
	t, ok := Parse(value)
	if !ok {
		return value
	}
	return FormatISO(t)
}
