// Package imaging decodes the supported raster formats and renders them
// scaled into a display box.
package imaging

import (
	"fmt"
	"image"
	"math"
	"os"

	// Registered decoders for the recognized image extensions.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	"golang.org/x/image/draw"
)

// Decode reads and decodes the image file at path.
func Decode(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}
	return img, nil
}

// FitSize returns the size of src scaled to fit inside a boxW x boxH box with
// its aspect ratio kept, multiplied by zoom. The result may exceed the box
// when zoom > 1.
func FitSize(srcW, srcH, boxW, boxH int, zoom float64) (int, int) {
	if srcW <= 0 || srcH <= 0 || boxW <= 0 || boxH <= 0 || zoom <= 0 {
		return 0, 0
	}
	scale := math.Min(float64(boxW)/float64(srcW), float64(boxH)/float64(srcH)) * zoom
	w := int(math.Round(float64(srcW) * scale))
	h := int(math.Round(float64(srcH) * scale))
	return max(w, 1), max(h, 1)
}

// Render draws src into a new boxW x boxH image, scaled by FitSize with
// Catmull-Rom interpolation and centred. Parts outside the box are clipped,
// uncovered parts stay transparent. Returns nil for an empty box or image.
func Render(src image.Image, boxW, boxH int, zoom float64) *image.RGBA {
	if src == nil {
		return nil
	}
	sb := src.Bounds()
	w, h := FitSize(sb.Dx(), sb.Dy(), boxW, boxH, zoom)
	if w == 0 || h == 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, boxW, boxH))
	x0 := (boxW - w) / 2
	y0 := (boxH - h) / 2
	dr := image.Rect(x0, y0, x0+w, y0+h)

	// Scale clips dr to dst bounds, so only the visible part is interpolated.
	draw.CatmullRom.Scale(dst, dr, src, sb, draw.Src, nil)
	return dst
}
