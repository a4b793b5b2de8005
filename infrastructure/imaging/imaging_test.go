package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestDecode_Formats(t *testing.T) {
	dir := t.TempDir()
	src := solid(4, 3, color.RGBA{R: 255, A: 255})

	writers := map[string]func(f *os.File) error{
		"a.png": func(f *os.File) error { return png.Encode(f, src) },
		"a.bmp": func(f *os.File) error { return bmp.Encode(f, src) },
		"a.tif": func(f *os.File) error { return tiff.Encode(f, src, nil) },
	}

	for name, write := range writers {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			f, err := os.Create(path)
			if err != nil {
				t.Fatal(err)
			}
			if err := write(f); err != nil {
				f.Close()
				t.Fatal(err)
			}
			f.Close()

			img, err := Decode(path)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
				t.Errorf("bounds = %v, want 4x3", img.Bounds())
			}
		})
	}
}

func TestDecode_Errors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Decode(filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.jpg")
	if err := os.WriteFile(bad, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Decode(bad); err == nil {
		t.Error("expected error for undecodable file")
	}
}

func TestFitSize(t *testing.T) {
	tests := []struct {
		name                   string
		srcW, srcH, boxW, boxH int
		zoom                   float64
		wantW, wantH           int
	}{
		{"wide into square", 200, 100, 100, 100, 1, 100, 50},
		{"tall into square", 100, 200, 100, 100, 1, 50, 100},
		{"upscale small", 10, 10, 100, 50, 1, 50, 50},
		{"zoomed in", 200, 100, 100, 100, 2, 200, 100},
		{"zoomed out", 200, 100, 100, 100, 0.5, 50, 25},
		{"empty box", 200, 100, 0, 100, 1, 0, 0},
		{"empty image", 0, 100, 100, 100, 1, 0, 0},
		{"never zero", 1000, 1, 10, 10, 0.1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.srcW, tt.srcH, tt.boxW, tt.boxH, tt.zoom)
			if w != tt.wantW || h != tt.wantH {
				t.Errorf("FitSize() = %dx%d, want %dx%d", w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestRender_CentersAndClips(t *testing.T) {
	src := solid(200, 100, color.RGBA{G: 255, A: 255})

	out := Render(src, 100, 100, 1)
	if out == nil {
		t.Fatal("Render() returned nil")
	}
	if out.Bounds().Dx() != 100 || out.Bounds().Dy() != 100 {
		t.Fatalf("bounds = %v, want 100x100", out.Bounds())
	}

	// Letterbox above and below the 100x50 image
	if _, _, _, a := out.At(50, 10).RGBA(); a != 0 {
		t.Errorf("pixel above image alpha = %d, want 0", a)
	}
	if _, g, _, a := out.At(50, 50).RGBA(); a == 0 || g == 0 {
		t.Error("centre pixel should be covered by the image")
	}

	// Zoomed beyond the box every pixel is covered
	zoomed := Render(src, 100, 100, 3)
	for _, p := range []image.Point{{0, 0}, {99, 99}, {0, 99}} {
		if _, _, _, a := zoomed.At(p.X, p.Y).RGBA(); a == 0 {
			t.Errorf("pixel %v not covered at zoom 3", p)
		}
	}
}

func TestRender_Empty(t *testing.T) {
	if Render(nil, 10, 10, 1) != nil {
		t.Error("Render(nil) should return nil")
	}
	if Render(solid(2, 2, color.Black), 0, 10, 1) != nil {
		t.Error("Render() with empty box should return nil")
	}
}
