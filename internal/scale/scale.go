// Package scale maps beacon distances onto a logarithmic gauge axis and
// classifies them into proximity tiers.
package scale

import (
	"math"

	"github.com/rotisserie/eris"
)

var (
	// ErrNonPositive is returned when a distance or a data bound is <= 0.
	ErrNonPositive = eris.New("scale: log mapping needs positive values")
	// ErrInvalidRange is returned when dataMax does not exceed dataMin.
	ErrInvalidRange = eris.New("scale: data max must exceed data min")
)

// MapDistanceToScalePosition places distance on a log axis spanning
// [dataMin, dataMax] in data space and [screenStart, screenEnd] on screen.
// Equal distance ratios map to equal screen spacing. Values outside the
// data range land outside the screen range; callers clamp upstream.
func MapDistanceToScalePosition(distance, screenStart, screenEnd, dataMin, dataMax float64) (float64, error) {
	s, err := NewLogScale(screenStart, screenEnd, dataMin, dataMax)
	if err != nil {
		return 0, err
	}
	return s.Position(distance)
}

// LogScale is a validated log mapping. The zero value is not usable.
type LogScale struct {
	screenStart, screenEnd float64
	dataMin, dataMax       float64
	logMin, logSpan        float64
}

// NewLogScale validates the bounds once so Position only checks its input.
func NewLogScale(screenStart, screenEnd, dataMin, dataMax float64) (LogScale, error) {
	if dataMin <= 0 || dataMax <= 0 || math.IsNaN(dataMin) || math.IsNaN(dataMax) {
		return LogScale{}, eris.Wrapf(ErrNonPositive, "scale: bounds [%g, %g]", dataMin, dataMax)
	}
	if dataMax <= dataMin || math.IsInf(dataMax, 1) {
		return LogScale{}, eris.Wrapf(ErrInvalidRange, "scale: bounds [%g, %g]", dataMin, dataMax)
	}
	logMin := math.Log(dataMin)
	return LogScale{
		screenStart: screenStart,
		screenEnd:   screenEnd,
		dataMin:     dataMin,
		dataMax:     dataMax,
		logMin:      logMin,
		logSpan:     math.Log(dataMax) - logMin,
	}, nil
}

// Position maps a single distance.
func (s LogScale) Position(distance float64) (float64, error) {
	if s.logSpan == 0 {
		return 0, eris.Wrap(ErrInvalidRange, "scale: uninitialized")
	}
	if !(distance > 0) || math.IsInf(distance, 1) {
		return 0, eris.Wrapf(ErrNonPositive, "scale: distance %g", distance)
	}
	// Exact at the bounds, log/exp round trips drift otherwise.
	switch distance {
	case s.dataMin:
		return s.screenStart, nil
	case s.dataMax:
		return s.screenEnd, nil
	}
	frac := (math.Log(distance) - s.logMin) / s.logSpan
	return s.screenStart + frac*(s.screenEnd-s.screenStart), nil
}

// ClampedPosition raises distances below the data minimum to the minimum
// before mapping, the way the gauge draws sub-meter beacons on the 1 m mark.
func (s LogScale) ClampedPosition(distance float64) (float64, error) {
	if distance > 0 && distance < s.dataMin {
		distance = s.dataMin
	}
	return s.Position(distance)
}

// Bounds returns the data range of the scale.
func (s LogScale) Bounds() (lo, hi float64) {
	return s.dataMin, s.dataMax
}
