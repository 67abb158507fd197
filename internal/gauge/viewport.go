package gauge

import (
	"math"

	"github.com/rotisserie/eris"

	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/scale"
)

// ErrViewportTooSmall is returned when the scale does not fit the viewport.
var ErrViewportTooSmall = eris.New("gauge: viewport too small for the scale")

// Orientation of the display.
type Orientation int

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Toggle flips between portrait and landscape.
func (o Orientation) Toggle() Orientation {
	if o == Landscape {
		return Portrait
	}
	return Landscape
}

// InsetFor returns the far-end inset of the scale for an orientation.
func InsetFor(o Orientation) float64 {
	if o == Landscape {
		return config.LandscapeInset
	}
	return config.PortraitInset
}

// Viewport is the drawing area in points.
type Viewport struct {
	Width       float64
	Height      float64
	BottomInset float64
}

// NewViewport sizes a viewport for an orientation.
func NewViewport(width, height float64, o Orientation) Viewport {
	return Viewport{Width: width, Height: height, BottomInset: InsetFor(o)}
}

// Layout is the resolved geometry for one viewport.
type Layout struct {
	Viewport Viewport
	AxisX    float64
	Origin   Point
	scale    scale.LogScale
}

// NewLayout validates the viewport and builds the distance scale. The scale
// runs from ScaleTopOffset above the origin edge to BottomInset below the
// far edge.
func NewLayout(vp Viewport) (Layout, error) {
	if math.IsNaN(vp.Width) || math.IsNaN(vp.Height) || vp.BottomInset < 0 {
		return Layout{}, eris.Wrapf(ErrViewportTooSmall, "gauge: viewport %+v", vp)
	}
	far := vp.Height - vp.BottomInset
	if vp.Width <= config.LabelInset || far <= config.ScaleTopOffset {
		return Layout{}, eris.Wrapf(ErrViewportTooSmall, "gauge: viewport %.0fx%.0f inset %.0f",
			vp.Width, vp.Height, vp.BottomInset)
	}

	s, err := scale.NewLogScale(config.ScaleTopOffset, far, config.ScaleMinMeters, config.ScaleMaxMeters)
	if err != nil {
		return Layout{}, eris.Wrap(err, "gauge: build scale")
	}

	axisX := vp.Width - config.AxisInset
	return Layout{
		Viewport: vp,
		AxisX:    axisX,
		Origin:   Point{X: axisX, Y: vp.Height - config.OriginOffset},
		scale:    s,
	}, nil
}

// Offset returns how far above the origin edge a distance sits. Sub-meter
// distances sit on the 1 m mark.
func (l Layout) Offset(distance float64) (float64, error) {
	return l.scale.ClampedPosition(distance)
}

// Y converts an offset from the origin edge to a top-left y coordinate.
func (l Layout) Y(offset float64) float64 {
	return l.Viewport.Height - offset
}
