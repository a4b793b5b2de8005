package presentation

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"multilabel-go/infrastructure/imaging"
)

// ImageView displays the current image fitted to its size and scaled by the zoom level.
// Mouse wheel ticks are reported through onWheel.
type ImageView struct {
	widget.BaseWidget
	raster  *canvas.Raster
	imageMu sync.RWMutex
	image   image.Image
	zoom    float64
	onWheel func(in bool)
}

// NewImageView creates an empty image view.
func NewImageView(onWheel func(in bool)) *ImageView {
	v := &ImageView{
		zoom:    1.0,
		onWheel: onWheel,
	}
	v.raster = canvas.NewRaster(v.generate)
	v.ExtendBaseWidget(v)
	return v
}

// SetImage replaces the displayed image. nil clears the view.
func (v *ImageView) SetImage(img image.Image) {
	v.imageMu.Lock()
	v.image = img
	v.imageMu.Unlock()
	v.raster.Refresh()
}

// SetZoom sets the scale applied on top of fitting the image to the view.
func (v *ImageView) SetZoom(level float64) {
	v.imageMu.Lock()
	v.zoom = level
	v.imageMu.Unlock()
	v.raster.Refresh()
}

// generate renders the image for the raster's pixel size.
func (v *ImageView) generate(w, h int) image.Image {
	v.imageMu.RLock()
	img, zoom := v.image, v.zoom
	v.imageMu.RUnlock()

	if out := imaging.Render(img, w, h, zoom); out != nil {
		return out
	}
	return image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
}

// Scrolled implements fyne.Scrollable; scrolling up zooms in.
func (v *ImageView) Scrolled(e *fyne.ScrollEvent) {
	if v.onWheel == nil || e.Scrolled.DY == 0 {
		return
	}
	v.onWheel(e.Scrolled.DY > 0)
}

// CreateRenderer creates the widget renderer.
func (v *ImageView) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(v.raster)
}

// MinSize returns the minimum size of the view.
func (v *ImageView) MinSize() fyne.Size {
	return fyne.NewSize(200, 200)
}

var _ fyne.Scrollable = (*ImageView)(nil)
