package controller

import (
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"
)

const (
	maxLogoSide  = 600
	maxLogoBytes = 5 << 20
)

var errNotImage = errors.New("file is not a supported image")

// saveLogo decodes an uploaded image, shrinks it to fit 600x600 and writes
// it as PNG under dir. It returns the public /uploads/ path.
func saveLogo(file *multipart.FileHeader, dir string) (string, error) {
	if file.Size > maxLogoBytes {
		return "", fmt.Errorf("%w: larger than %d bytes", errNotImage, maxLogoBytes)
	}
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	img, _, err := image.Decode(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errNotImage, err)
	}
	b := img.Bounds()
	if b.Dx() > maxLogoSide || b.Dy() > maxLogoSide {
		img = imaging.Fit(img, maxLogoSide, maxLogoSide, imaging.Lanczos)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	name := uuid.NewString() + ".png"
	if err := imaging.Save(img, filepath.Join(dir, name)); err != nil {
		return "", fmt.Errorf("save logo: %w", err)
	}
	return "/uploads/" + name, nil
}
