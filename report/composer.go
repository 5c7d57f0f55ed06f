package report

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// InquiryURLKey is the setting holding the public verification URL.
	InquiryURLKey = "APP_URL_INQUIRY"
	// DefaultInquiryURL is used when the setting is absent or unreadable.
	DefaultInquiryURL = "https://www.seha.sa/#/inquiries/slenquiry"
	// DefaultLicense is printed for a hospital without a license number.
	DefaultLicense = "1410101201200443"

	inquiryLinkText = "www.seha.sa/#/inquiries/slenquiry"
	verifyNoteAr    = "للتحقق من بيانات التقرير يرجى التأكد من زيارة موقع منصة صحة الرسمي"
	verifyNoteEn    = "To check the report please visit Seha's official website"
	licenseLabelAr  = "رقم الترخيص"
	kingdomEn       = "Kingdom of Saudi Arabia"
)

// ConfigLookup reads a named setting. A missing setting is reported with
// ok false and no error.
type ConfigLookup interface {
	Get(ctx context.Context, name string) (value string, ok bool, err error)
}

// CanvasFactory opens a fresh one page canvas. It reports the font set it
// actually loaded.
type CanvasFactory func(fonts FontSet, title string, created time.Time) (Canvas, FontSet)

// Composer renders leave certificates. It holds no per request state and is
// safe for concurrent use.
type Composer struct {
	Assets Assets
	QR     QREncoder
	Config ConfigLookup
	Log    zerolog.Logger
	// Now stamps the issue date default and the bottom footer.
	Now func() time.Time
	// Location is the zone the bottom footer is printed in.
	Location  *time.Location
	NewCanvas CanvasFactory
}

// NewComposer returns a composer drawing on gofpdf with go-qrcode.
func NewComposer(assets Assets, config ConfigLookup, log zerolog.Logger) *Composer {
	return &Composer{
		Assets:    assets,
		QR:        DefaultQR,
		Config:    config,
		Log:       log,
		Now:       time.Now,
		Location:  time.Local,
		NewCanvas: NewPDFCanvas,
	}
}

// Document is a fully drawn certificate waiting to be written.
type Document struct {
	Kind     Kind
	Filename string
	// Rows lists the English row labels in drawing order with their
	// heights.
	Rows    []string
	Heights []float64
	Fonts   FontSet
	// TableBottom is the y of the last row's lower edge.
	TableBottom float64

	canvas Canvas
}

// WriteTo streams the encoded PDF to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	err := d.canvas.Output(cw)
	return cw.n, err
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Generate renders rec and writes it to w.
func (c *Composer) Generate(ctx context.Context, kind Kind, rec *Record, w io.Writer) error {
	doc, err := c.Render(ctx, kind, rec)
	if err != nil {
		return err
	}
	_, err = doc.WriteTo(w)
	return err
}

// Render draws the whole certificate in memory: header, titles, table rows
// and footer, in that order. Missing images, settings or a failed QR code
// are logged and skipped; only an unknown kind, an unusable record or a
// drawing failure is an error.
func (c *Composer) Render(ctx context.Context, kind Kind, rec *Record) (*Document, error) {
	v, err := VariantFor(kind)
	if err != nil {
		return nil, err
	}
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := c.now()
	r := *rec
	if r.IssueDate.IsZero() {
		r.IssueDate = now
	}

	factory := c.NewCanvas
	if factory == nil {
		factory = NewPDFCanvas
	}
	canvas, fonts := factory(c.Assets.Fonts, v.Title, now)
	if fonts.Source != c.Assets.Fonts.Source {
		c.Log.Warn().Str("family", c.Assets.Fonts.Family).Msg("arabic font could not be embedded, using built-in face")
	}

	log := c.Log.With().Str("kind", string(kind)).Str("code", r.Code).Logger()
	p := &page{
		c:      c,
		v:      v,
		canvas: canvas,
		ts:     NewTypesetter(canvas, fonts.ScriptCapable()),
		rec:    &r,
		log:    log,
		doc:    &Document{Kind: kind, Filename: Filename(kind, r.Code), Fonts: fonts, canvas: canvas},
	}
	p.header()
	p.titles()
	p.rows()
	p.footer(ctx)
	p.bottom(now)

	if err := canvas.Err(); err != nil {
		return nil, fmt.Errorf("render %s certificate: %w", kind, err)
	}
	log.Debug().Int("rows", len(p.doc.Rows)).Str("fonts", fonts.Source.String()).Msg("certificate rendered")
	return p.doc, nil
}

func (c *Composer) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

func (c *Composer) location() *time.Location {
	if c.Location == nil {
		return time.Local
	}
	return c.Location
}

// inquiryURL reads the configured verification URL, falling back to the
// default when the setting is missing, blank or unreadable.
func (c *Composer) inquiryURL(ctx context.Context, log zerolog.Logger) string {
	if c.Config == nil {
		return DefaultInquiryURL
	}
	v, ok, err := c.Config.Get(ctx, InquiryURLKey)
	if err != nil {
		log.Warn().Err(err).Str("setting", InquiryURLKey).Msg("could not read setting, using default")
		return DefaultInquiryURL
	}
	if !ok || strings.TrimSpace(v) == "" {
		return DefaultInquiryURL
	}
	return strings.TrimSpace(v)
}

type page struct {
	c      *Composer
	v      Variant
	canvas Canvas
	ts     *Typesetter
	rec    *Record
	log    zerolog.Logger
	doc    *Document
}

// image draws the file at path scaled to width w. It returns false when
// the file is missing or cannot be decoded.
func (p *page) image(path string, x, y, w float64) bool {
	if path == "" {
		return false
	}
	img, err := LoadImage(path)
	if err != nil {
		p.log.Warn().Err(err).Str("path", path).Msg("skipping image")
		return false
	}
	p.canvas.Image(img, x, y, w, img.HeightFor(w))
	return true
}

func (p *page) header() {
	a, h := p.c.Assets, p.v.Header
	p.image(a.SehaLogo, PageMargin, PageMargin, h.SehaWidth)
	if !p.image(a.HeaderLogo, (PageWidth-h.HeaderWidth)/2, h.HeaderY, h.HeaderWidth) {
		p.canvas.SetTextColor(Black)
		p.ts.Print(kingdomEn, LatinBold, 16, 0, h.FallbackY, PageWidth, AlignCenter)
	}
	p.image(a.Decoration, PageWidth-180, PageMargin, h.DecorationWidth)
}

func (p *page) titles() {
	t := p.v.Titles
	p.canvas.SetTextColor(t.ArColor)
	p.ts.Print(t.Ar, ArabicBold, t.ArSize, 0, t.ArY, PageWidth, AlignCenter)
	p.canvas.SetTextColor(t.EnColor)
	p.ts.Print(t.En, LatinBold, t.EnSize, 0, t.EnY, PageWidth, AlignCenter)
}

func (p *page) rows() {
	table := NewTable(p.canvas, p.ts, p.v.Table, p.v.TableY)
	for _, spec := range p.v.Rows {
		h := table.Draw(spec, p.rec)
		p.doc.Rows = append(p.doc.Rows, spec.LabelEn)
		p.doc.Heights = append(p.doc.Heights, h)
	}
	p.doc.TableBottom = table.Y
}

func (p *page) footer(ctx context.Context) {
	f := p.v.Footer
	footerY := PageHeight - f.FooterY
	centerX := PageWidth / 2
	left, right := centerX/2, centerX+centerX/2

	p.canvas.SetDrawColor(p.v.Table.BorderColor)
	p.canvas.SetLineWidth(1)
	p.canvas.Line(centerX, footerY, centerX, footerY+150)

	inquiry := p.c.inquiryURL(ctx, p.log)
	p.qr(p.v.Payload(inquiry, p.rec), left-20, footerY)

	p.canvas.SetTextColor(Black)
	p.ts.Print(verifyNoteAr, ArabicBold, 10, left-125, footerY+110, 300, AlignCenter)
	p.ts.Print(verifyNoteEn, LatinBold, 10, left-100, footerY+f.NoteEnY, 250, AlignCenter)

	target := inquiry
	if f.FixedLink {
		target = DefaultInquiryURL
	}
	p.link(inquiryLinkText, target, left-110, footerY+f.LinkY, 250, f.LinkSize)

	var h Hospital
	if p.rec.Hospital != nil {
		h = *p.rec.Hospital
	} else {
		p.log.Warn().Msg("record has no hospital, printing default license")
	}
	p.hospital(h, right, footerY)
}

func (p *page) qr(payload string, x, y float64) {
	if p.c.QR == nil {
		return
	}
	data, err := p.c.QR.Encode(payload)
	if err != nil {
		p.log.Warn().Err(err).Msg("qr code skipped")
		return
	}
	img, err := DecodeImage("qr", data)
	if err != nil {
		p.log.Warn().Err(err).Msg("qr code skipped")
		return
	}
	p.canvas.Image(img, x, y, 100, 100)
}

// link draws underlined blue text centered in [x, x+w] and makes the text
// itself clickable.
func (p *page) link(text, url string, x, y, w, size float64) {
	tw := p.ts.Width(text, LatinBold, size)
	lh := lineHeight(LatinBold, size)
	p.canvas.SetTextColor(Blue)
	p.canvas.SetFont(LatinBold, size)
	p.canvas.SetUnderline(true)
	p.canvas.Text(x, y, w, lh, text, AlignCenter)
	p.canvas.SetUnderline(false)
	p.canvas.Link(x+(w-tw)/2, y, tw, lh, url)
	p.canvas.SetTextColor(Black)
}

func (p *page) hospital(h Hospital, centerX, footerY float64) {
	f := p.v.Footer
	if path, ok := p.c.Assets.HospitalLogo(h.Logo); ok {
		if img, err := LoadImage(path); err == nil {
			w, ht := img.Fit(100, 100)
			p.canvas.Image(img, centerX-50+(100-w)/2, footerY, w, ht)
		} else {
			p.log.Warn().Err(err).Str("path", path).Msg("skipping hospital logo")
		}
	} else if h.Logo != "" {
		p.log.Warn().Str("logo", h.Logo).Msg("hospital logo not found")
	}

	p.canvas.SetTextColor(Black)
	p.ts.Print(h.NameAr, ArabicBold, 12, centerX-125, footerY+110, 250, AlignCenter)
	p.ts.Print(h.NameEn, LatinBold, 12, centerX-125, footerY+f.NameEnY, 250, AlignCenter)

	license := strings.TrimSpace(h.LicenseNumber)
	if license == "" {
		license = DefaultLicense
	}
	sep := f.LicenseSep
	if sep == "" {
		sep = " "
	}
	frags := []Fragment{
		{Text: license, Face: LatinBold},
		{Text: sep, Face: LatinBold},
		{Text: licenseLabelAr, Face: ArabicBold, RTL: true},
	}
	for _, pl := range LayoutFragments(p.canvas, frags, 12, centerX-125, 250, p.ts.shaping) {
		lh := lineHeight(pl.Face, 12)
		p.canvas.SetFont(pl.Face, 12)
		p.canvas.Text(pl.X, footerY+f.LicenseY, pl.Width, lh, pl.Display, AlignLeft)
	}
}

func (p *page) bottom(now time.Time) {
	y := PageHeight - p.v.Footer.BottomY
	t := now.In(p.c.location())
	p.canvas.SetTextColor(Black)
	p.ts.Print(t.Format("03:04 PM"), LatinBold, 12, PageMargin, y, 300, AlignLeft)
	p.ts.Print(t.Format("Monday, January 2, 2006"), LatinBold, 12, PageMargin, y+20, 300, AlignLeft)
	p.image(p.c.Assets.NationalLogo, PageWidth-160, y-20, 120)
}
