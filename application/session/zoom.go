package session

// Zoom factors and limits. Discrete steps (menu, keyboard) and mouse wheel
// ticks share the factors but clamp to different ranges.
const (
	DefaultZoom   = 1.0
	ZoomInFactor  = 1.1
	ZoomOutFactor = 0.9

	StepZoomMin  = 0.1
	StepZoomMax  = 10.0
	WheelZoomMin = 0.2
	WheelZoomMax = 2.0
)

// Zoom is the display scale applied to the current image.
// The zero value is not usable; use NewZoom.
type Zoom struct {
	level float64
}

// NewZoom returns a zoom at DefaultZoom.
func NewZoom() Zoom {
	return Zoom{level: DefaultZoom}
}

// Level returns the current scale factor.
func (z *Zoom) Level() float64 {
	return z.level
}

// Step zooms one discrete step and returns the new level.
func (z *Zoom) Step(in bool) float64 {
	return z.apply(in, StepZoomMin, StepZoomMax)
}

// Wheel zooms one wheel tick and returns the new level.
func (z *Zoom) Wheel(in bool) float64 {
	return z.apply(in, WheelZoomMin, WheelZoomMax)
}

func (z *Zoom) apply(in bool, lo, hi float64) float64 {
	factor := ZoomOutFactor
	if in {
		factor = ZoomInFactor
	}
	z.level = min(max(z.level*factor, lo), hi)
	return z.level
}
