package report

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/bidi"
)

var (
	nonNumeric  = regexp.MustCompile(`[^0-9\-/]`)
	numericOnly = regexp.MustCompile(`^[0-9\-/]+$`)
)

// NumericPart strips everything except digits, hyphens and slashes.
func NumericPart(s string) string {
	return strings.TrimSpace(nonNumeric.ReplaceAllString(s, ""))
}

// IsNumericLike reports whether s is a number or date once everything but
// digits, hyphens and slashes is removed. Such values are always set in the
// Latin face, whatever column they sit in.
func IsNumericLike(s string) bool {
	clean := NumericPart(s)
	return clean != "" && numericOnly.MatchString(clean)
}

// CleanArabic replaces slashes, which the Arabic faces draw as boxes.
func CleanArabic(s string) string {
	return strings.NewReplacer("/", " - ", "／", " - ").Replace(s)
}

// HasRTL reports whether s contains right-to-left letters.
func HasRTL(s string) bool {
	for _, r := range s {
		if c := classOf(r); c == bidi.R || c == bidi.AL {
			return true
		}
	}
	return false
}

func classOf(r rune) bidi.Class {
	p, _ := bidi.LookupRune(r)
	return p.Class()
}

// direction of a resolved rune inside a right-to-left paragraph.
type direction uint8

const (
	dirRTL direction = iota
	dirLTR
	dirNumber
)

// resolve assigns every rune a direction for a right-to-left paragraph.
// Numbers keep their digit order; a single separator between two digits
// stays with them; neutrals join a left-to-right run only when letters of
// that direction are on both sides.
func resolve(runes []rune) []direction {
	n := len(runes)
	classes := make([]bidi.Class, n)
	for i, r := range runes {
		classes[i] = classOf(r)
	}
	dirs := make([]direction, n)
	strong := make([]bool, n)
	for i, c := range classes {
		switch c {
		case bidi.L:
			dirs[i], strong[i] = dirLTR, true
		case bidi.R, bidi.AL:
			dirs[i], strong[i] = dirRTL, true
		case bidi.EN, bidi.AN:
			dirs[i], strong[i] = dirNumber, true
		case bidi.NSM:
			if i > 0 {
				dirs[i], strong[i] = dirs[i-1], strong[i-1]
			}
		}
	}
	for i, c := range classes {
		if strong[i] {
			continue
		}
		if (c == bidi.ES || c == bidi.CS) && i > 0 && i < n-1 &&
			dirs[i-1] == dirNumber && strong[i-1] && dirs[i+1] == dirNumber && strong[i+1] {
			dirs[i], strong[i] = dirNumber, true
		}
	}
	for i, c := range classes {
		if strong[i] {
			continue
		}
		if c == bidi.ET && ((i > 0 && dirs[i-1] == dirNumber && strong[i-1]) || (i < n-1 && dirs[i+1] == dirNumber && strong[i+1])) {
			dirs[i], strong[i] = dirNumber, true
		}
	}
	for i := 0; i < n; i++ {
		if strong[i] {
			continue
		}
		j := i
		for j < n && !strong[j] {
			j++
		}
		d := dirRTL
		if i > 0 && j < n && dirs[i-1] == dirLTR && dirs[j] == dirLTR {
			d = dirLTR
		}
		for k := i; k < j; k++ {
			dirs[k] = d
		}
		i = j - 1
	}
	return dirs
}

var mirrors = map[rune]rune{
	'(': ')', ')': '(',
	'[': ']', ']': '[',
	'{': '}', '}': '{',
	'<': '>', '>': '<',
	'«': '»', '»': '«',
}

// Reorder converts a logical right-to-left line to left-to-right display
// order. Lines without right-to-left letters are returned unchanged.
func Reorder(s string) string {
	if !HasRTL(s) {
		return s
	}
	runes := []rune(s)
	dirs := resolve(runes)

	type run struct {
		start, end int
		rtl        bool
	}
	var runs []run
	for i := 0; i < len(runes); {
		rtl := dirs[i] == dirRTL
		j := i + 1
		for j < len(runes) && (dirs[j] == dirRTL) == rtl {
			j++
		}
		runs = append(runs, run{i, j, rtl})
		i = j
	}

	out := make([]rune, 0, len(runes))
	for k := len(runs) - 1; k >= 0; k-- {
		r := runs[k]
		if !r.rtl {
			out = append(out, runes[r.start:r.end]...)
			continue
		}
		for i := r.end - 1; i >= r.start; i-- {
			c := runes[i]
			if m, ok := mirrors[c]; ok {
				c = m
			}
			out = append(out, c)
		}
	}
	return string(out)
}

// Visual prepares one logical line of Arabic text for drawing: slashes are
// replaced, letters shaped and the line reordered. Without a script-capable
// face the cleaned logical text is returned as a best effort.
func Visual(s string, shaping bool) string {
	s = CleanArabic(s)
	if !shaping {
		return s
	}
	return Reorder(Shape(s))
}

// Fragment is a piece of a mixed-script phrase with its own face. RTL
// fragments hold logical Arabic text and are shaped before measuring.
type Fragment struct {
	Text string
	Face Face
	RTL  bool
}

// Placed is a fragment positioned on a line.
type Placed struct {
	Fragment
	Display string
	X       float64
	Width   float64
}

// Measurer is the text metrics part of a Canvas.
type Measurer interface {
	SetFont(face Face, size float64)
	StringWidth(s string) float64
}

// LayoutFragments measures each fragment in its own face and places them
// left to right, in the order given, centered inside [x, x+width]. Frags
// must already be in visual order.
func LayoutFragments(m Measurer, frags []Fragment, size, x, width float64, shaping bool) []Placed {
	placed := make([]Placed, len(frags))
	total := 0.0
	for i, f := range frags {
		display := f.Text
		if f.RTL {
			display = Visual(f.Text, shaping)
		}
		m.SetFont(f.Face, size)
		w := m.StringWidth(display)
		placed[i] = Placed{Fragment: f, Display: display, Width: w}
		total += w
	}
	cur := x + (width-total)/2
	for i := range placed {
		placed[i].X = cur
		cur += placed[i].Width
	}
	return placed
}
