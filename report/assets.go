package report

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// FontSource tells where the Arabic-capable faces came from.
type FontSource int

const (
	// BuiltIn is the core Helvetica face. It cannot render Arabic, so
	// shaping is disabled.
	BuiltIn FontSource = iota
	Fallback
	Primary
)

func (s FontSource) String() string {
	switch s {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	}
	return "builtin"
}

// FontFiles names a regular/bold pair of TrueType files.
type FontFiles struct {
	Family  string
	Regular string
	Bold    string
}

var (
	NotoSansArabic = FontFiles{Family: "NotoSansArabic", Regular: "NotoSansArabic-Regular.ttf", Bold: "NotoSansArabic-Bold.ttf"}
	Almarai        = FontFiles{Family: "Almarai", Regular: "Almarai-Regular.ttf", Bold: "Almarai-Bold.ttf"}
)

// In returns f with both paths joined onto dir.
func (f FontFiles) In(dir string) FontFiles {
	f.Regular = filepath.Join(dir, f.Regular)
	f.Bold = filepath.Join(dir, f.Bold)
	return f
}

func (f FontFiles) exists() bool {
	return fileExists(f.Regular) && fileExists(f.Bold)
}

// FontSet is the resolved Arabic face pair handed to the canvas. Latin text
// always uses the core Times faces.
type FontSet struct {
	Source  FontSource
	Family  string
	Regular string
	Bold    string
}

// ScriptCapable reports whether the faces can render Arabic glyphs.
func (fs FontSet) ScriptCapable() bool {
	return fs.Source != BuiltIn
}

// BuiltInFonts is the last resort font set.
func BuiltInFonts() FontSet {
	return FontSet{Source: BuiltIn, Family: "Helvetica"}
}

// ResolveFontSet picks the primary pair when both files exist, else the
// first complete fallback pair, else the built-in face.
func ResolveFontSet(primary FontFiles, fallbacks ...FontFiles) FontSet {
	if primary.exists() {
		return FontSet{Source: Primary, Family: primary.Family, Regular: primary.Regular, Bold: primary.Bold}
	}
	for _, f := range fallbacks {
		if f.exists() {
			return FontSet{Source: Fallback, Family: f.Family, Regular: f.Regular, Bold: f.Bold}
		}
	}
	return BuiltInFonts()
}

// ResolveFonts looks for Noto Sans Arabic then Almarai inside dir.
func ResolveFonts(dir string) FontSet {
	return ResolveFontSet(NotoSansArabic.In(dir), Almarai.In(dir))
}

// ResolveImage returns the first candidate that exists.
func ResolveImage(candidates ...string) (string, bool) {
	for _, p := range candidates {
		if p != "" && fileExists(p) {
			return p, true
		}
	}
	return "", false
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

// Assets holds everything a certificate reads from disk. Image fields are
// empty when the file was not found.
type Assets struct {
	Fonts        FontSet
	SehaLogo     string
	HeaderLogo   string
	Decoration   string
	NationalLogo string
	UploadDir    string
}

// LoadAssets resolves fonts and logos under the given directories. Missing
// files are not an error.
func LoadAssets(assetDir, fontDir, uploadDir string) Assets {
	a := Assets{Fonts: ResolveFonts(fontDir), UploadDir: uploadDir}
	a.SehaLogo, _ = ResolveImage(filepath.Join(assetDir, "seha_logo.png"), filepath.Join(assetDir, "seha.png"))
	a.HeaderLogo, _ = ResolveImage(filepath.Join(assetDir, "header_logo.png"))
	a.Decoration, _ = ResolveImage(filepath.Join(assetDir, "header_decoration.png"))
	a.NationalLogo, _ = ResolveImage(filepath.Join(assetDir, "national_logo.jpg"), filepath.Join(assetDir, "national_logo.png"))
	return a
}

// HospitalLogo maps a stored logo reference to a file. References under
// /uploads/ resolve inside the upload directory and may not escape it.
func (a Assets) HospitalLogo(logo string) (string, bool) {
	logo = strings.TrimSpace(logo)
	if logo == "" {
		return "", false
	}
	if strings.HasPrefix(logo, "/uploads/") {
		rel := filepath.Clean(strings.TrimPrefix(logo, "/uploads/"))
		if rel == "." || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
			return "", false
		}
		logo = filepath.Join(a.UploadDir, rel)
	}
	return ResolveImage(logo)
}

// Image is an encoded picture ready for embedding.
type Image struct {
	Name   string
	Data   []byte
	Type   string
	Width  int
	Height int
}

// LoadImage reads a PNG, JPEG, GIF or WebP file. WebP is re-encoded as PNG
// since the PDF writer cannot embed it.
func LoadImage(path string) (Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Image{}, err
	}
	return DecodeImage(path, data)
}

// DecodeImage validates data and tags it with a PDF image type.
func DecodeImage(name string, data []byte) (Image, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Image{}, fmt.Errorf("decode %s: %w", name, err)
	}
	img := Image{Name: name, Data: data, Width: cfg.Width, Height: cfg.Height}
	switch format {
	case "png":
		img.Type = "PNG"
	case "jpeg":
		img.Type = "JPG"
	case "gif":
		img.Type = "GIF"
	default:
		src, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return Image{}, fmt.Errorf("decode %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, src); err != nil {
			return Image{}, fmt.Errorf("re-encode %s: %w", name, err)
		}
		img.Data = buf.Bytes()
		img.Type = "PNG"
	}
	if img.Width <= 0 || img.Height <= 0 {
		return Image{}, fmt.Errorf("decode %s: empty image", name)
	}
	return img, nil
}

// HeightFor is the height that keeps the aspect ratio at width w.
func (img Image) HeightFor(w float64) float64 {
	return w * float64(img.Height) / float64(img.Width)
}

// Fit scales the image to fit inside w by h, keeping the aspect ratio.
func (img Image) Fit(w, h float64) (float64, float64) {
	fw, fh := w, img.HeightFor(w)
	if fh > h {
		fh = h
		fw = h * float64(img.Width) / float64(img.Height)
	}
	return fw, fh
}
