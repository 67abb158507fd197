package gauge

import (
	"fmt"

	"github.com/rotisserie/eris"

	"librarybox.klederson.com/internal/beacon"
	"librarybox.klederson.com/internal/config"
	"librarybox.klederson.com/internal/scale"
)

var (
	// RingDistances are the meters marked with a ring around the origin.
	RingDistances = []float64{1, 1.5, 2, 3, 4, 5, 10, 15, 25, 35, 70}
	// LabelDistances are the rings that carry a "N m" label.
	LabelDistances = []float64{1, 2, 5, 15, 35, 70}
)

const (
	ringStroke   = 0.5
	buttonStroke = 3.0
	buttonSize   = 50.0
	dotStroke    = 3.0
	dotSize      = 25.0
	labelLift    = 2.0
	labelHalfH   = 5.0 // half of the 10pt label font
)

// Render lays out the gauge for the given readings. Primitives come back in
// paint order: gradient, rings, labels, origin button, then one dot per
// valid reading. Readings without a positive distance are skipped.
func Render(readings []beacon.Reading, vp Viewport, p Palette) ([]Primitive, error) {
	lay, err := NewLayout(vp)
	if err != nil {
		return nil, err
	}

	prims := make([]Primitive, 0, 2+len(RingDistances)+len(LabelDistances)+len(readings))
	prims = append(prims, Primitive{
		Kind:  KindGradient,
		Start: Point{X: 0, Y: 0},
		End:   Point{X: 0, Y: vp.Height},
		From:  p.GradientStart,
		To:    p.GradientEnd,
	})

	for _, d := range RingDistances {
		off, err := lay.Offset(d)
		if err != nil {
			return nil, eris.Wrapf(err, "gauge: ring at %g m", d)
		}
		prims = append(prims, Primitive{
			Kind:   KindArc,
			Center: lay.Origin,
			Radius: off - config.OriginOffset,
			Stroke: ringStroke,
			Color:  p.Ring,
		})
	}

	for _, d := range LabelDistances {
		off, err := lay.Offset(d)
		if err != nil {
			return nil, eris.Wrapf(err, "gauge: label at %g m", d)
		}
		prims = append(prims, Primitive{
			Kind:   KindLabel,
			Center: Point{X: vp.Width - config.LabelInset, Y: lay.Y(off+labelLift) - labelHalfH},
			Text:   fmt.Sprintf("%d m", int(d)),
			Color:  p.Label,
		})
	}

	prims = append(prims, Primitive{
		Kind:   KindButton,
		Center: lay.Origin,
		Radius: (buttonSize - buttonStroke) / 2,
		Stroke: buttonStroke,
		Color:  p.Button,
		Fill:   p.Button,
	})

	for _, r := range readings {
		if !r.Valid() {
			continue
		}
		off, err := lay.Offset(r.Accuracy)
		if err != nil {
			return nil, eris.Wrapf(err, "gauge: beacon %s", r.ID)
		}
		tier := scale.ClassifyProximity(r.Accuracy)
		prims = append(prims, Primitive{
			Kind:     KindDot,
			Center:   Point{X: lay.AxisX, Y: lay.Y(off)},
			Radius:   (dotSize - dotStroke) / 2,
			Stroke:   dotStroke,
			Color:    p.DotStroke,
			Fill:     p.ForTier(tier),
			BeaconID: r.ID,
			Distance: r.Accuracy,
			Tier:     tier,
		})
	}
	return prims, nil
}

// Dots filters the beacon dots out of a primitive list.
func Dots(prims []Primitive) []Primitive {
	var out []Primitive
	for _, p := range prims {
		if p.Kind == KindDot {
			out = append(out, p)
		}
	}
	return out
}
