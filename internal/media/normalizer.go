package media

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
)

const (
	TargetWidth  = 600
	TargetHeight = 450
)

var (
	ErrDisallowedType = errors.New("file type not allowed")
	ErrNotImage       = errors.New("file content is not a supported image")
)

// AllowedExtensions is checked before any bytes are decoded.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

var allowedMIME = []string{"image/png", "image/jpeg", "image/gif"}

// Extension returns the lower-cased extension of filename without the dot.
func Extension(filename string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
}

// IsAllowed reports whether filename carries an allow-listed extension.
func IsAllowed(filename string) (string, bool) {
	ext := Extension(filename)
	return ext, AllowedExtensions[ext]
}

// CenteredCrop returns the largest rectangle inside bounds with the aspect
// ratio width:height, centred on both axes.
func CenteredCrop(bounds image.Rectangle, width, height int) image.Rectangle {
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 || width <= 0 || height <= 0 {
		return bounds
	}

	if w*height > h*width {
		cropW := h * width / height
		left := (w - cropW) / 2
		return image.Rect(bounds.Min.X+left, bounds.Min.Y, bounds.Min.X+left+cropW, bounds.Max.Y)
	}

	cropH := w * height / width
	top := (h - cropH) / 2
	return image.Rect(bounds.Min.X, bounds.Min.Y+top, bounds.Max.X, bounds.Min.Y+top+cropH)
}

// Normalizer rewrites uploaded images in place to a fixed size.
type Normalizer struct {
	Width  int
	Height int
}

func NewNormalizer() *Normalizer {
	return &Normalizer{Width: TargetWidth, Height: TargetHeight}
}

// Normalize crops the image at path to the target aspect ratio, resizes it
// with a Lanczos filter and re-encodes it by extension. On any failure the
// file is removed.
func (n *Normalizer) Normalize(path string) (err error) {
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, ok := IsAllowed(path); !ok {
		return ErrDisallowedType
	}

	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to sniff image: %w", err)
	}
	if !mimetype.EqualsAny(mt.String(), allowedMIME...) {
		return fmt.Errorf("%w: %s", ErrNotImage, mt.String())
	}

	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return ErrNotImage
	}

	cropped := imaging.Crop(img, CenteredCrop(bounds, n.Width, n.Height))
	resized := imaging.Resize(cropped, n.Width, n.Height, imaging.Lanczos)

	if err := imaging.Save(resized, path); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}
