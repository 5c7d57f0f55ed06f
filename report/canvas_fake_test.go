package report

import (
	"io"
	"time"
	"unicode/utf8"
)

type drawnText struct {
	X, Y, W, H float64
	Text       string
	Face       Face
	Size       float64
	Color      Color
}

type drawnImage struct {
	Name       string
	X, Y, W, H float64
}

// fakeCanvas records drawing calls. Every rune is half the font size wide.
type fakeCanvas struct {
	face   Face
	size   float64
	color  Color
	texts  []drawnText
	rects  int
	lines  int
	images []drawnImage
	links  []string
	err    error
}

func (f *fakeCanvas) SetFont(face Face, size float64) { f.face, f.size = face, size }
func (f *fakeCanvas) StringWidth(s string) float64 {
	return float64(utf8.RuneCountInString(s)) * f.size / 2
}
func (f *fakeCanvas) SetTextColor(c Color)    { f.color = c }
func (f *fakeCanvas) SetFillColor(Color)      {}
func (f *fakeCanvas) SetDrawColor(Color)      {}
func (f *fakeCanvas) SetLineWidth(float64)    {}
func (f *fakeCanvas) SetUnderline(bool)       {}
func (f *fakeCanvas) Line(_, _, _, _ float64) { f.lines++ }
func (f *fakeCanvas) Rect(_, _, _, _ float64, _, _ bool) {
	f.rects++
}
func (f *fakeCanvas) Text(x, y, w, h float64, s string, _ Align) {
	f.texts = append(f.texts, drawnText{X: x, Y: y, W: w, H: h, Text: s, Face: f.face, Size: f.size, Color: f.color})
}
func (f *fakeCanvas) Image(img Image, x, y, w, h float64) {
	f.images = append(f.images, drawnImage{Name: img.Name, X: x, Y: y, W: w, H: h})
}
func (f *fakeCanvas) Link(_, _, _, _ float64, url string) { f.links = append(f.links, url) }
func (f *fakeCanvas) Err() error                          { return f.err }
func (f *fakeCanvas) Output(w io.Writer) error {
	_, err := io.WriteString(w, "%PDF-fake")
	return err
}

func (f *fakeCanvas) find(text string) (drawnText, bool) {
	for _, t := range f.texts {
		if t.Text == text {
			return t, true
		}
	}
	return drawnText{}, false
}

// fakeFactory hands out one fake canvas and remembers it.
type fakeFactory struct {
	canvas *fakeCanvas
	title  string
}

func (ff *fakeFactory) open(fonts FontSet, title string, _ time.Time) (Canvas, FontSet) {
	ff.canvas = &fakeCanvas{}
	ff.title = title
	return ff.canvas, fonts
}
