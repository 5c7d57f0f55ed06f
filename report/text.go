package report

import "strings"

// lineHeight is the leading used to stack wrapped lines. Arabic faces need
// more room for their ascenders and dots.
func lineHeight(face Face, size float64) float64 {
	if face.Arabic() {
		return size * 1.6
	}
	return size * 1.2
}

// Block is text wrapped to a width, ready to draw. Lines are in display
// order.
type Block struct {
	Lines      []string
	Face       Face
	Size       float64
	LineHeight float64
}

// Height is the vertical space the block occupies.
func (b Block) Height() float64 {
	return float64(len(b.Lines)) * b.LineHeight
}

// Typesetter wraps and places text on a canvas.
type Typesetter struct {
	c       Canvas
	shaping bool
}

// NewTypesetter returns a typesetter drawing on c. Shaping should be
// enabled only when the Arabic faces are script-capable.
func NewTypesetter(c Canvas, shaping bool) *Typesetter {
	return &Typesetter{c: c, shaping: shaping}
}

func (t *Typesetter) display(face Face, line string) string {
	if face.Arabic() && t.shaping {
		return Reorder(Shape(line))
	}
	return line
}

// Layout wraps text at width without drawing. Words are broken across
// lines in logical order; each line is then converted to display order.
func (t *Typesetter) Layout(text string, face Face, size, width float64) Block {
	if face.Arabic() {
		text = CleanArabic(text)
	}
	t.c.SetFont(face, size)
	measure := func(line string) float64 {
		return t.c.StringWidth(t.display(face, line))
	}
	b := Block{Face: face, Size: size, LineHeight: lineHeight(face, size)}
	if strings.TrimSpace(text) == "" {
		return b
	}
	for _, para := range strings.Split(text, "\n") {
		for _, line := range wrap(para, width, measure) {
			b.Lines = append(b.Lines, t.display(face, line))
		}
	}
	return b
}

// Width measures a single line of text in face.
func (t *Typesetter) Width(text string, face Face, size float64) float64 {
	if face.Arabic() {
		text = CleanArabic(text)
	}
	t.c.SetFont(face, size)
	return t.c.StringWidth(t.display(face, text))
}

// Draw places b with its top at y inside the column [x, x+w].
func (t *Typesetter) Draw(b Block, x, y, w float64, align Align) {
	t.c.SetFont(b.Face, b.Size)
	for i, line := range b.Lines {
		t.c.Text(x, y+float64(i)*b.LineHeight, w, b.LineHeight, line, align)
	}
}

// Print lays out and draws text in one step and returns the block.
func (t *Typesetter) Print(text string, face Face, size, x, y, w float64, align Align) Block {
	b := t.Layout(text, face, size, w)
	t.Draw(b, x, y, w, align)
	return b
}

// wrap breaks a paragraph into lines no wider than width. A word wider than
// the column is split between characters.
func wrap(para string, width float64, measure func(string) float64) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	var lines []string
	cur := ""
	for _, word := range words {
		if measure(word) > width {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			pieces := splitWord(word, width, measure)
			lines = append(lines, pieces[:len(pieces)-1]...)
			cur = pieces[len(pieces)-1]
			continue
		}
		candidate := word
		if cur != "" {
			candidate = cur + " " + word
		}
		if cur != "" && measure(candidate) > width {
			lines = append(lines, cur)
			cur = word
			continue
		}
		cur = candidate
	}
	return append(lines, cur)
}

func splitWord(word string, width float64, measure func(string) float64) []string {
	var pieces []string
	runes := []rune(word)
	start := 0
	for i := 1; i <= len(runes); i++ {
		if i-start > 1 && measure(string(runes[start:i])) > width {
			pieces = append(pieces, string(runes[start:i-1]))
			start = i - 1
		}
	}
	return append(pieces, string(runes[start:]))
}
