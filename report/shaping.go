package report

import "github.com/01walid/goarabic"

// Contextual shaping for fonts that carry the Arabic Presentation Forms-B
// block. PDF text is placed glyph by glyph without an OpenType shaper, so
// each letter is replaced by its isolated, final, initial or medial form
// before the run is reordered for display.
//
// goarabic picks the letter forms. It does not compose lam-alef and treats
// harakat as word breaks, so both are handled here around its call.

// lamAlef maps the alef following a lam to the isolated and final ligature.
var lamAlef = map[rune][2]rune{
	0x0622: {0xFEF5, 0xFEF6},
	0x0623: {0xFEF7, 0xFEF8},
	0x0625: {0xFEF9, 0xFEFA},
	0x0627: {0xFEFB, 0xFEFC},
}

const (
	lam = 0x0644
	// ligature stands in for every lam-alef while goarabic shapes the run;
	// it is the only ligature whose forms goarabic knows for all alefs.
	ligature      = 0xFEFB
	ligatureFinal = 0xFEFC
)

// transparent marks (harakat, superscript alef) do not break joining.
func transparent(r rune) bool {
	return (r >= 0x064B && r <= 0x065F) || r == 0x0670
}

// Shape replaces Arabic letters with their contextual presentation forms.
// Text is expected in logical order; other characters pass through.
func Shape(s string) string {
	runes := []rune(s)

	// Letters without their marks; marks[i] follow base[i].
	base := make([]rune, 0, len(runes))
	marks := make(map[int][]rune)
	// alefs[i] is the alef folded into a lam-alef at base[i].
	alefs := make(map[int]rune)
	var leading []rune
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if transparent(r) {
			if len(base) == 0 {
				leading = append(leading, r)
				continue
			}
			marks[len(base)-1] = append(marks[len(base)-1], r)
			continue
		}
		if r == lam {
			j := i + 1
			for j < len(runes) && transparent(runes[j]) {
				j++
			}
			if j < len(runes) {
				if _, ok := lamAlef[runes[j]]; ok {
					alefs[len(base)] = runes[j]
					base = append(base, ligature)
					marks[len(base)-1] = append(marks[len(base)-1], runes[i+1:j]...)
					i = j
					continue
				}
			}
		}
		base = append(base, r)
	}

	// A lam-alef never joins the letter after it, so the run is cut after
	// each one and the pieces shaped on their own.
	shaped := make([]rune, 0, len(base))
	start := 0
	for i := range base {
		if _, ok := alefs[i]; ok || i == len(base)-1 {
			shaped = append(shaped, []rune(goarabic.ToGlyph(string(base[start:i+1])))...)
			start = i + 1
		}
	}

	out := make([]rune, 0, len(runes))
	out = append(out, leading...)
	for i, r := range shaped {
		if alef, ok := alefs[i]; ok {
			if r == ligatureFinal {
				r = lamAlef[alef][1]
			} else {
				r = lamAlef[alef][0]
			}
		}
		out = append(out, r)
		out = append(out, marks[i]...)
	}
	return string(out)
}
