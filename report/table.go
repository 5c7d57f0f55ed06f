package report

import "math"

// Value is the content of a row's middle column: Text for single rows, Pair
// for double rows.
type Value struct {
	Text string
	Pair Pair
}

// RowStyle selects how a row is drawn.
type RowStyle int

const (
	StylePlain RowStyle = iota
	// StyleDuration is the dark, fixed height duration row.
	StyleDuration
)

// RowSpec describes one certificate row.
type RowSpec struct {
	LabelEn    string
	LabelAr    string
	Double     bool
	Background *Color
	Style      RowStyle
	Value      func(r *Record) Value
	// Fragments supplies the Arabic side of a StyleDuration row.
	Fragments func(r *Record) []Fragment
}

// Metrics are the table geometry and typography of a variant.
type Metrics struct {
	X          float64
	Width      float64
	LabelWidth float64
	// Inset is the horizontal space kept inside each cell edge.
	Inset        float64
	LabelSize    float64
	ValueSize    float64
	Padding      float64
	MinRowHeight float64

	LabelColor  Color
	ValueColor  Color
	BorderColor Color

	DurationHeight    float64
	DurationLabelSize float64
	DurationValueSize float64
	DurationFill      Color
	// DurationRaise lifts Arabic fragments so they sit on the Latin baseline.
	DurationRaise float64
}

func (m Metrics) valueWidth() float64 { return m.Width - 2*m.LabelWidth }

// Table draws rows top to bottom starting at Y.
type Table struct {
	c  Canvas
	ts *Typesetter
	m  Metrics
	Y  float64
}

// NewTable starts a table at y.
func NewTable(c Canvas, ts *Typesetter, m Metrics, y float64) *Table {
	return &Table{c: c, ts: ts, m: m, Y: y}
}

type cell struct {
	block Block
	x, w  float64
	align Align
	color Color
}

type rowLayout struct {
	height float64
	cells  []cell
	double bool
}

// layout measures every text block of a plain row at the width it will be
// drawn with, so the height is final before anything is drawn.
func (t *Table) layout(labelEn, labelAr string, v Value, double bool) rowLayout {
	m := t.m
	col2 := m.valueWidth()
	labelW := m.LabelWidth - 2*m.Inset
	rl := rowLayout{double: double}
	rl.cells = append(rl.cells,
		cell{t.ts.Layout(labelEn, LatinBold, m.LabelSize, labelW), m.X + m.Inset, labelW, AlignCenter, m.LabelColor},
		cell{t.ts.Layout(labelAr, ArabicBold, m.LabelSize, labelW), m.X + m.LabelWidth + col2 + m.Inset, labelW, AlignCenter, m.LabelColor},
	)
	if double {
		sub := col2 / 2
		w := sub - 2*m.Inset
		en := orDash(v.Pair.En)
		rl.cells = append(rl.cells, cell{t.ts.Layout(en, LatinRegular, m.ValueSize, w), m.X + m.LabelWidth + m.Inset, w, AlignCenter, m.ValueColor})
		ar := orDash(v.Pair.Ar)
		var b Block
		if IsNumericLike(ar) {
			b = t.ts.Layout(NumericPart(ar), LatinRegular, m.ValueSize, w)
		} else {
			b = t.ts.Layout(ar, ArabicRegular, m.ValueSize, w)
		}
		rl.cells = append(rl.cells, cell{b, m.X + m.LabelWidth + sub + m.Inset, w, AlignCenter, m.ValueColor})
	} else {
		w := col2 - 2*m.Inset
		text := orDash(v.Text)
		face := LatinRegular
		if HasRTL(text) && !IsNumericLike(text) {
			face = ArabicRegular
		}
		rl.cells = append(rl.cells, cell{t.ts.Layout(text, face, m.ValueSize, w), m.X + m.LabelWidth + m.Inset, w, AlignCenter, m.ValueColor})
	}
	tallest := 0.0
	for _, c := range rl.cells {
		tallest = math.Max(tallest, c.block.Height())
	}
	rl.height = math.Max(m.MinRowHeight, tallest+m.Padding)
	return rl
}

// MeasureRow returns the height spec would take for r without drawing.
func (t *Table) MeasureRow(spec RowSpec, r *Record) float64 {
	if spec.Style == StyleDuration {
		h, _, _ := t.durationLayout(spec, r)
		return h
	}
	v := spec.Value(r)
	return t.layout(spec.LabelEn, spec.LabelAr, v, spec.Double).height
}

// Draw draws spec for r at the cursor, advances the cursor and returns the
// row height.
func (t *Table) Draw(spec RowSpec, r *Record) float64 {
	if spec.Style == StyleDuration {
		return t.drawDuration(spec, r)
	}
	return t.DrawRow(spec.LabelEn, spec.LabelAr, spec.Value(r), spec.Double, spec.Background)
}

// DrawRow draws a plain row: optional background, outer border, column
// separators and each text block centered vertically in the row.
func (t *Table) DrawRow(labelEn, labelAr string, v Value, double bool, bg *Color) float64 {
	m := t.m
	rl := t.layout(labelEn, labelAr, v, double)
	top, h := t.Y, rl.height

	if bg != nil {
		t.c.SetFillColor(*bg)
		t.c.Rect(m.X, top, m.Width, h, true, false)
	}
	t.c.SetDrawColor(m.BorderColor)
	t.c.SetLineWidth(1)
	t.c.Rect(m.X, top, m.Width, h, false, true)
	t.separators(top, h, double)

	for _, c := range rl.cells {
		t.c.SetTextColor(c.color)
		t.ts.Draw(c.block, c.x, top+(h-c.block.Height())/2, c.w, c.align)
	}
	t.Y += h
	return h
}

func (t *Table) separators(top, h float64, double bool) {
	m := t.m
	col2 := m.valueWidth()
	t.c.Line(m.X+m.LabelWidth, top, m.X+m.LabelWidth, top+h)
	t.c.Line(m.X+m.LabelWidth+col2, top, m.X+m.LabelWidth+col2, top+h)
	if double {
		t.c.Line(m.X+m.LabelWidth+col2/2, top, m.X+m.LabelWidth+col2/2, top+h)
	}
}

// durationLayout measures the duration row. The row keeps its fixed height
// unless the wrapped text needs more.
func (t *Table) durationLayout(spec RowSpec, r *Record) (float64, []cell, []Fragment) {
	m := t.m
	col2 := m.valueWidth()
	sub := col2 / 2
	labelW := m.LabelWidth - 2*m.Inset
	valueW := sub - 2*m.Inset
	cells := []cell{
		{t.ts.Layout(spec.LabelEn, LatinBold, m.DurationLabelSize, labelW), m.X + m.Inset, labelW, AlignCenter, White},
		{t.ts.Layout(spec.LabelAr, ArabicBold, m.DurationLabelSize, labelW), m.X + m.LabelWidth + col2 + m.Inset, labelW, AlignCenter, White},
		{t.ts.Layout(orDash(spec.Value(r).Text), LatinRegular, m.DurationValueSize, valueW), m.X + m.LabelWidth + m.Inset, valueW, AlignCenter, White},
	}
	var frags []Fragment
	if spec.Fragments != nil {
		frags = spec.Fragments(r)
	}
	tallest := math.Max(lineHeight(ArabicRegular, m.DurationValueSize), lineHeight(LatinRegular, m.DurationValueSize)) + 2*m.DurationRaise
	for _, c := range cells {
		tallest = math.Max(tallest, c.block.Height())
	}
	return math.Max(m.DurationHeight, tallest+m.Padding), cells, frags
}

func (t *Table) drawDuration(spec RowSpec, r *Record) float64 {
	m := t.m
	h, cells, frags := t.durationLayout(spec, r)
	top := t.Y
	col2 := m.valueWidth()
	sub := col2 / 2

	t.c.SetFillColor(m.DurationFill)
	t.c.Rect(m.X, top, m.Width, h, true, false)
	t.c.SetDrawColor(White)
	t.c.SetLineWidth(1)
	t.separators(top, h, true)

	for _, c := range cells {
		t.c.SetTextColor(c.color)
		t.ts.Draw(c.block, c.x, top+(h-c.block.Height())/2, c.w, c.align)
	}

	t.c.SetTextColor(White)
	placed := LayoutFragments(t.c, frags, m.DurationValueSize, m.X+m.LabelWidth+sub, sub, t.ts.shaping)
	for _, p := range placed {
		lh := lineHeight(p.Face, m.DurationValueSize)
		y := top + (h-lh)/2
		if p.RTL {
			y -= m.DurationRaise
		}
		t.c.SetFont(p.Face, m.DurationValueSize)
		t.c.Text(p.X, y, p.Width, lh, p.Display, AlignLeft)
	}
	t.Y += h
	return h
}
