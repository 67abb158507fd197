// Package gauge lays out the logarithmic beacon gauge as a list of drawing
// primitives. It never draws: painters consume the primitives.
//
// Coordinates are in points with the origin at the top-left. The origin
// button sits in the bottom-right corner and the distance axis runs upwards
// from it.
package gauge

import (
	colorful "github.com/lucasb-eyer/go-colorful"

	"librarybox.klederson.com/internal/scale"
)

// Kind discriminates primitives.
type Kind int

const (
	KindGradient Kind = iota
	KindArc
	KindLabel
	KindButton
	KindDot
)

func (k Kind) String() string {
	switch k {
	case KindGradient:
		return "gradient"
	case KindArc:
		return "arc"
	case KindLabel:
		return "label"
	case KindButton:
		return "button"
	case KindDot:
		return "dot"
	default:
		return "unknown"
	}
}

// Point is a position in gauge points.
type Point struct {
	X, Y float64
}

// Primitive is one drawing instruction. Fields not used by a kind are zero.
type Primitive struct {
	Kind Kind

	// Gradient: linear from Start (color From) to End (color To).
	Start, End Point
	From, To   colorful.Color

	// Arc, Button, Dot: circle at Center.
	Center Point
	Radius float64
	Stroke float64
	Color  colorful.Color // stroke color, or text color for labels
	Fill   colorful.Color

	// Label: Text anchored at Center, vertically centered.
	Text string

	// Dot only.
	BeaconID string
	Distance float64
	Tier     scale.Tier
}

// Palette holds the gauge colors.
type Palette struct {
	GradientStart colorful.Color
	GradientEnd   colorful.Color
	Ring          colorful.Color
	Label         colorful.Color
	Button        colorful.Color
	DotStroke     colorful.Color
	Immediate     colorful.Color
	Near          colorful.Color
	Far           colorful.Color
	Default       colorful.Color
}

func rgb(r, g, b float64) colorful.Color {
	return colorful.Color{R: r / 255, G: g / 255, B: b / 255}
}

// DefaultPalette is orange fading to light gray, with red dots close by and
// orange dots far away.
func DefaultPalette() Palette {
	darkGray := rgb(85, 85, 85)
	white := rgb(255, 255, 255)
	return Palette{
		GradientStart: rgb(255, 165, 0),
		GradientEnd:   rgb(170, 170, 170),
		Ring:          darkGray,
		Label:         darkGray,
		Button:        white,
		DotStroke:     white,
		Immediate:     rgb(255, 0, 0),
		Near:          rgb(255, 0, 0),
		Far:           rgb(255, 128, 0),
		Default:       white,
	}
}

// ForTier returns the dot fill for a proximity tier.
func (p Palette) ForTier(t scale.Tier) colorful.Color {
	switch t {
	case scale.TierImmediate:
		return p.Immediate
	case scale.TierNear:
		return p.Near
	case scale.TierFar:
		return p.Far
	default:
		return p.Default
	}
}
