package report

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// Face is one of the four faces a certificate uses.
type Face int

const (
	LatinRegular Face = iota
	LatinBold
	ArabicRegular
	ArabicBold
)

// Arabic reports whether the face is from the Arabic font set.
func (f Face) Arabic() bool { return f == ArabicRegular || f == ArabicBold }

// Bold reports whether the face is a bold weight.
func (f Face) Bold() bool { return f == LatinBold || f == ArabicBold }

// Color is an RGB fill, stroke or text color.
type Color struct{ R, G, B int }

// Hex parses "#rrggbb". Malformed input gives black.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
	Blue  = Color{0, 0, 255}
)

// Align is the horizontal alignment of a text line inside its box.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Canvas is the drawing capability a certificate is rendered on. Text
// passed to Text is already in display order; coordinates are points from
// the top left corner of the page.
type Canvas interface {
	Measurer
	SetTextColor(c Color)
	SetFillColor(c Color)
	SetDrawColor(c Color)
	SetLineWidth(w float64)
	SetUnderline(on bool)
	// Text draws one line vertically centered in a box of height h.
	Text(x, y, w, h float64, s string, align Align)
	Rect(x, y, w, h float64, fill, stroke bool)
	Line(x1, y1, x2, y2 float64)
	Image(img Image, x, y, w, h float64)
	Link(x, y, w, h float64, url string)
	Err() error
	Output(w io.Writer) error
}

// PageWidth and PageHeight describe the A3 sheet in points. Footer
// positions are measured from PageHeight, which sits above the physical
// bottom edge.
const (
	PageWidth  = 841.89
	PageHeight = 1150.0
	PageMargin = 40.0
)

type pdfCanvas struct {
	pdf       *gofpdf.Fpdf
	fonts     FontSet
	latin     func(string) string
	face      Face
	size      float64
	underline bool
	images    map[string]bool
}

// NewPDFCanvas starts an A3 portrait document with one page. Arabic faces
// from fonts are embedded; if they fail to load the canvas falls back to
// the built-in face and the returned set reports it.
func NewPDFCanvas(fonts FontSet, title string, created time.Time) (Canvas, FontSet) {
	pdf := gofpdf.New("P", "pt", "A3", "")
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)
	pdf.SetTitle(title, true)
	pdf.SetCreator("medleave", false)
	if !created.IsZero() {
		pdf.SetCreationDate(created)
	}

	if fonts.ScriptCapable() {
		if err := registerFonts(pdf, fonts); err != nil {
			pdf.ClearError()
			fonts = BuiltInFonts()
		}
	}
	pdf.AddPage()

	c := &pdfCanvas{
		pdf:    pdf,
		fonts:  fonts,
		latin:  pdf.UnicodeTranslatorFromDescriptor(""),
		images: make(map[string]bool),
	}
	c.SetFont(LatinRegular, 12)
	return c, fonts
}

// registerFonts embeds the Arabic pair. The TrueType parser can panic on a
// corrupt file, which is reported as an error.
func registerFonts(pdf *gofpdf.Fpdf, fonts FontSet) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("load fonts %s: %v", fonts.Family, r)
		}
	}()
	regular, err := os.ReadFile(fonts.Regular)
	if err != nil {
		return err
	}
	bold, err := os.ReadFile(fonts.Bold)
	if err != nil {
		return err
	}
	pdf.AddUTF8FontFromBytes(fonts.Family, "", regular)
	pdf.AddUTF8FontFromBytes(fonts.Family, "B", bold)
	if err := pdf.Error(); err != nil {
		return err
	}
	// A file that fails to parse is skipped without setting an error.
	for _, style := range []string{"", "B"} {
		if pdf.GetFontDesc(fonts.Family, style) == (gofpdf.FontDescType{}) {
			return fmt.Errorf("load fonts %s: %q style not registered", fonts.Family, style)
		}
	}
	return nil
}

func (c *pdfCanvas) SetFont(face Face, size float64) {
	c.face, c.size = face, size
	c.apply()
}

func (c *pdfCanvas) apply() {
	style := ""
	if c.face.Bold() {
		style = "B"
	}
	if c.underline {
		style += "U"
	}
	family := "Times"
	if c.face.Arabic() {
		family = c.fonts.Family
	}
	c.pdf.SetFont(family, style, c.size)
}

func (c *pdfCanvas) utf8() bool {
	return c.face.Arabic() && c.fonts.ScriptCapable()
}

// encode prepares s for the current face. Core faces take cp1252 bytes;
// embedded faces only cover the basic multilingual plane.
func (c *pdfCanvas) encode(s string) string {
	if !c.utf8() {
		return c.latin(s)
	}
	return strings.Map(func(r rune) rune {
		if r >= 0xFFFF {
			return '?'
		}
		return r
	}, s)
}

func (c *pdfCanvas) StringWidth(s string) float64 {
	return c.pdf.GetStringWidth(c.encode(s))
}

func (c *pdfCanvas) SetTextColor(col Color) { c.pdf.SetTextColor(col.R, col.G, col.B) }
func (c *pdfCanvas) SetFillColor(col Color) { c.pdf.SetFillColor(col.R, col.G, col.B) }
func (c *pdfCanvas) SetDrawColor(col Color) { c.pdf.SetDrawColor(col.R, col.G, col.B) }
func (c *pdfCanvas) SetLineWidth(w float64) { c.pdf.SetLineWidth(w) }

func (c *pdfCanvas) SetUnderline(on bool) {
	c.underline = on
	c.apply()
}

func (c *pdfCanvas) Text(x, y, w, h float64, s string, align Align) {
	c.pdf.SetXY(x, y)
	c.pdf.CellFormat(w, h, c.encode(s), "", 0, string(align), false, 0, "")
}

func (c *pdfCanvas) Rect(x, y, w, h float64, fill, stroke bool) {
	style := ""
	if fill {
		style += "F"
	}
	if stroke {
		style += "D"
	}
	if style == "" {
		return
	}
	c.pdf.Rect(x, y, w, h, style)
}

func (c *pdfCanvas) Line(x1, y1, x2, y2 float64) {
	c.pdf.Line(x1, y1, x2, y2)
}

func (c *pdfCanvas) Image(img Image, x, y, w, h float64) {
	opts := gofpdf.ImageOptions{ImageType: img.Type, ReadDpi: false}
	if !c.images[img.Name] {
		c.pdf.RegisterImageOptionsReader(img.Name, opts, bytes.NewReader(img.Data))
		c.images[img.Name] = true
	}
	c.pdf.ImageOptions(img.Name, x, y, w, h, false, opts, 0, "")
}

func (c *pdfCanvas) Link(x, y, w, h float64, url string) {
	c.pdf.LinkString(x, y, w, h, url)
}

func (c *pdfCanvas) Err() error {
	return c.pdf.Error()
}

func (c *pdfCanvas) Output(w io.Writer) error {
	if err := c.pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}
