package gauge

import (
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"librarybox.klederson.com/internal/beacon"
	"librarybox.klederson.com/internal/scale"
)

func portrait() Viewport {
	return NewViewport(400, 700, Portrait)
}

func TestInsetFor(t *testing.T) {
	assert.Equal(t, 80.0, InsetFor(Portrait))
	assert.Equal(t, 40.0, InsetFor(Landscape))
	assert.Equal(t, Landscape, Portrait.Toggle())
	assert.Equal(t, Portrait, Landscape.Toggle())
	assert.Equal(t, "landscape", Landscape.String())
}

func TestRender_LegacyBufferScenario(t *testing.T) {
	legacy := make([]float64, 20)
	legacy[0] = 2.5
	legacy[1] = 45.0

	prims, err := Render(beacon.FromDistances(legacy), portrait(), DefaultPalette())
	require.NoError(t, err)

	dots := Dots(prims)
	require.Len(t, dots, 2)
	assert.Equal(t, scale.TierImmediate, dots[0].Tier)
	assert.Equal(t, scale.TierFar, dots[1].Tier)
	assert.Equal(t, DefaultPalette().Immediate, dots[0].Fill)
	assert.Equal(t, DefaultPalette().Far, dots[1].Fill)
	assert.Less(t, dots[1].Center.Y, dots[0].Center.Y, "farther beacons sit higher")
}

func TestRender_PaintOrder(t *testing.T) {
	readings := []beacon.Reading{beacon.NewReading("a", 4, time.Time{})}
	prims, err := Render(readings, portrait(), DefaultPalette())
	require.NoError(t, err)
	require.Len(t, prims, 1+len(RingDistances)+len(LabelDistances)+1+1)

	var kinds []Kind
	for _, p := range prims {
		if len(kinds) == 0 || kinds[len(kinds)-1] != p.Kind {
			kinds = append(kinds, p.Kind)
		}
	}
	assert.Equal(t, []Kind{KindGradient, KindArc, KindLabel, KindButton, KindDot}, kinds)
}

func TestRender_Geometry(t *testing.T) {
	vp := portrait()
	prims, err := Render(nil, vp, DefaultPalette())
	require.NoError(t, err)

	grad := prims[0]
	assert.Equal(t, Point{0, 0}, grad.Start)
	assert.Equal(t, Point{0, 700}, grad.End)

	firstRing := prims[1]
	assert.Equal(t, Point{350, 650}, firstRing.Center)
	assert.InDelta(t, 45.0, firstRing.Radius, 1e-9)

	lastRing := prims[len(RingDistances)]
	assert.Greater(t, lastRing.Radius, firstRing.Radius)

	label := prims[1+len(RingDistances)]
	assert.Equal(t, "1 m", label.Text)
	assert.Equal(t, 320.0, label.Center.X)
	assert.InDelta(t, 700-97-5, label.Center.Y, 1e-9)

	var texts []string
	for _, p := range prims {
		if p.Kind == KindLabel {
			texts = append(texts, p.Text)
		}
	}
	assert.Equal(t, []string{"1 m", "2 m", "5 m", "15 m", "35 m", "70 m"}, texts)

	button := prims[1+len(RingDistances)+len(LabelDistances)]
	assert.Equal(t, KindButton, button.Kind)
	assert.Equal(t, Point{350, 650}, button.Center)
	assert.InDelta(t, 23.5, button.Radius, 1e-9)
}

func TestRender_DotPositions(t *testing.T) {
	vp := portrait()
	readings := []beacon.Reading{
		beacon.NewReading("sub", 0.4, time.Time{}),
		beacon.NewReading("one", 1, time.Time{}),
		beacon.NewReading("max", 80, time.Time{}),
		beacon.NewReading("gone", 0, time.Time{}),
		beacon.NewReading("bad", -3, time.Time{}),
	}
	prims, err := Render(readings, vp, DefaultPalette())
	require.NoError(t, err)

	dots := Dots(prims)
	require.Len(t, dots, 3)
	assert.Equal(t, "sub", dots[0].BeaconID)
	assert.InDelta(t, 700-95, dots[0].Center.Y, 1e-9, "sub-meter clamps to the 1 m mark")
	assert.InDelta(t, 700-95, dots[1].Center.Y, 1e-9)
	assert.InDelta(t, 700-620, dots[2].Center.Y, 1e-9)
	assert.Equal(t, 350.0, dots[0].Center.X)
	assert.InDelta(t, 11.0, dots[0].Radius, 1e-9)

	assert.Equal(t, scale.TierUnknown, dots[2].Tier)
	assert.Equal(t, DefaultPalette().Default, dots[2].Fill)
}

func TestRender_LandscapeStretchesLess(t *testing.T) {
	readings := []beacon.Reading{beacon.NewReading("x", 80, time.Time{})}

	p, err := Render(readings, NewViewport(700, 400, Portrait), DefaultPalette())
	require.NoError(t, err)
	l, err := Render(readings, NewViewport(700, 400, Landscape), DefaultPalette())
	require.NoError(t, err)

	assert.InDelta(t, 80.0, Dots(p)[0].Center.Y, 1e-9)
	assert.InDelta(t, 40.0, Dots(l)[0].Center.Y, 1e-9)
}

func TestRender_ViewportTooSmall(t *testing.T) {
	tests := []struct {
		name string
		vp   Viewport
	}{
		{"short", NewViewport(400, 170, Portrait)},
		{"narrow", NewViewport(80, 700, Portrait)},
		{"negative inset", Viewport{Width: 400, Height: 700, BottomInset: -1}},
		{"zero", Viewport{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(nil, tt.vp, DefaultPalette())
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrViewportTooSmall))
		})
	}
}

func TestPalette_ForTier(t *testing.T) {
	p := DefaultPalette()
	assert.Equal(t, p.Immediate, p.ForTier(scale.TierImmediate))
	assert.Equal(t, p.Near, p.ForTier(scale.TierNear))
	assert.Equal(t, p.Far, p.ForTier(scale.TierFar))
	assert.Equal(t, p.Default, p.ForTier(scale.TierUnknown))
	assert.Equal(t, "#ffa500", p.GradientStart.Hex())
}
