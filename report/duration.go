package report

import (
	"fmt"
	"strconv"
	"time"

	"medleave_backend/dateutil"
)

const arabicTo = " الى "

// ArabicDayWord is the noun printed after the day count. Counts above ten
// take the singular form, as printed on issued certificates.
func ArabicDayWord(days int) string {
	switch {
	case days == 2:
		return "يومان"
	case days >= 3 && days <= 10:
		return "أيام"
	}
	return "يوم"
}

// DurationAr is the Arabic count and noun, e.g. "3 أيام".
func DurationAr(days int) string {
	if days < 0 {
		days = 0
	}
	return fmt.Sprintf("%d %s", days, ArabicDayWord(days))
}

// DurationEn is the English duration cell, e.g. "3 days (01-01-2025 to 03-01-2025)".
func DurationEn(days int, from, to time.Time) string {
	if days < 0 {
		days = 0
	}
	unit := "days"
	if days == 1 {
		unit = "day"
	}
	return fmt.Sprintf("%d %s (%s to %s)", days, unit, orDash(dateutil.FormatDMY(from)), orDash(dateutil.FormatDMY(to)))
}

// DurationArText is the Arabic duration sentence in logical order.
func DurationArText(days int, hijriFrom, hijriTo string) string {
	return fmt.Sprintf("%s (%s%s%s)", DurationAr(days), orDash(hijriFrom), arabicTo, orDash(hijriTo))
}

// DurationFragments splits the Arabic duration sentence into fragments in
// visual order, left to right: the closing parenthesis, end date,
// separator word, start date, opening parenthesis, the unit word and the
// count. Dates, digits and brackets use the Latin face.
func DurationFragments(days int, hijriFrom, hijriTo string) []Fragment {
	if days < 0 {
		days = 0
	}
	return []Fragment{
		{Text: "(", Face: LatinRegular},
		{Text: orDash(hijriTo), Face: LatinRegular},
		{Text: arabicTo, Face: ArabicRegular, RTL: true},
		{Text: orDash(hijriFrom), Face: LatinRegular},
		{Text: ")", Face: LatinRegular},
		{Text: " ", Face: LatinRegular},
		{Text: ArabicDayWord(days), Face: ArabicRegular, RTL: true},
		{Text: " ", Face: LatinRegular},
		{Text: strconv.Itoa(days), Face: LatinRegular},
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
