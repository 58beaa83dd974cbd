package media

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	green = color.NRGBA{G: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

// bandedImage paints the outer `band` columns red and blue and the rest green.
func bandedImage(w, h, band int) *image.NRGBA {
	img := imaging.New(w, h, green)
	for y := 0; y < h; y++ {
		for x := 0; x < band; x++ {
			img.SetNRGBA(x, y, red)
			img.SetNRGBA(w-1-x, y, blue)
		}
	}
	return img
}

func assertGreenish(t *testing.T, c color.Color) {
	t.Helper()
	r, g, b, _ := c.RGBA()
	assert.Less(t, r>>8, uint32(60))
	assert.Greater(t, g>>8, uint32(190))
	assert.Less(t, b>>8, uint32(60))
}

func TestIsAllowed(t *testing.T) {
	for _, name := range []string{"a.png", "a.PNG", "b.jpg", "c.jpeg", "d.gif"} {
		_, ok := IsAllowed(name)
		assert.True(t, ok, name)
	}
	for _, name := range []string{"photo.bmp", "photo", "photo.png.exe", "x.webp"} {
		_, ok := IsAllowed(name)
		assert.False(t, ok, name)
	}
}

func TestCenteredCrop(t *testing.T) {
	t.Run("Wide_ShouldTrimWidthSymmetrically", func(t *testing.T) {
		rect := CenteredCrop(image.Rect(0, 0, 1200, 600), 600, 450)
		assert.Equal(t, image.Rect(200, 0, 1000, 600), rect)
	})

	t.Run("Tall_ShouldTrimHeightSymmetrically", func(t *testing.T) {
		rect := CenteredCrop(image.Rect(0, 0, 300, 800), 600, 450)
		assert.Equal(t, 300, rect.Dx())
		assert.Equal(t, 225, rect.Dy())
		assert.Equal(t, 287, rect.Min.Y)
	})

	t.Run("ExactAspect_ShouldKeepEverything", func(t *testing.T) {
		rect := CenteredCrop(image.Rect(0, 0, 800, 600), 600, 450)
		assert.Equal(t, image.Rect(0, 0, 800, 600), rect)
	})
}

func TestNormalizer_Normalize(t *testing.T) {
	n := NewNormalizer()

	t.Run("WideJPEG_ShouldBecome600x450CenterCropped", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "photo.jpg")
		require.NoError(t, imaging.Save(bandedImage(1200, 600, 200), path))

		require.NoError(t, n.Normalize(path))

		out, err := imaging.Open(path)
		require.NoError(t, err)
		assert.Equal(t, 600, out.Bounds().Dx())
		assert.Equal(t, 450, out.Bounds().Dy())

		// both 200px side bands must be gone
		assertGreenish(t, out.At(0, 225))
		assertGreenish(t, out.At(599, 225))
		assertGreenish(t, out.At(300, 0))
	})

	t.Run("PNG_ShouldKeepFormat", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pic.png")
		require.NoError(t, imaging.Save(imaging.New(100, 400, blue), path))

		require.NoError(t, n.Normalize(path))

		cfg, format, err := decodeConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "png", format)
		assert.Equal(t, 600, cfg.Width)
		assert.Equal(t, 450, cfg.Height)
	})

	t.Run("DisallowedExtension_ShouldRejectAndRemove", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "photo.bmp")
		require.NoError(t, os.WriteFile(path, []byte("BM not really"), 0o644))

		err := n.Normalize(path)
		assert.ErrorIs(t, err, ErrDisallowedType)
		assert.NoFileExists(t, path)
	})

	t.Run("CorruptContent_ShouldFailAndRemove", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.png")
		require.NoError(t, os.WriteFile(path, []byte("this is plain text"), 0o644))

		err := n.Normalize(path)
		assert.ErrorIs(t, err, ErrNotImage)
		assert.NoFileExists(t, path)
	})
}

func decodeConfig(path string) (image.Config, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, "", err
	}
	defer f.Close()
	return image.DecodeConfig(f)
}
