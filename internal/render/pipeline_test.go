package render

import (
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/googlesky/liveplot/frame"
	"github.com/googlesky/liveplot/internal/scale"
	"github.com/googlesky/liveplot/theme"
)

func testLayout() Layout {
	return Layout{
		Width:          200,
		Height:         160,
		MarginLeft:     40,
		MarginTop:      30,
		MarginRight:    10,
		MarginBottom:   20,
		GridXSpacing:   50,
		GridYDivisions: 4,
		Title:          "test",
		InvertY:        true,
		ShowLegend:     true,
		ShowZeroLine:   true,
		ShowRate:       true,
		ShowHints:      true,
	}
}

func testPipeline(t *testing.T, l Layout) *Pipeline {
	t.Helper()
	th, err := theme.Lookup("dark")
	require.NoError(t, err)
	eng := scale.New(scale.Fixed, 0, 100, 0, false, 0, l.PlotH())
	return New(l, th, eng)
}

func TestMapY(t *testing.T) {
	tests := []struct {
		name   string
		v      float64
		invert bool
		want   float64
	}{
		{name: "mid inverted", v: 50, invert: true, want: 50},
		{name: "lo inverted", v: 0, invert: true, want: 100},
		{name: "hi inverted", v: 100, invert: true, want: 0},
		{name: "mid plain", v: 50, invert: false, want: 50},
		{name: "lo plain", v: 0, invert: false, want: 0},
		{name: "below range clamps", v: -500, invert: true, want: 100},
		{name: "above range clamps", v: 1e9, invert: true, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapY(tt.v, 0, 100, 0, 100, tt.invert)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestSplitRuns(t *testing.T) {
	nan := math.NaN()
	tests := []struct {
		name   string
		values []float64
		want   [][2]int
	}{
		{name: "empty", values: nil, want: nil},
		{name: "all valid", values: []float64{1, 2, 3}, want: [][2]int{{0, 3}}},
		{name: "all missing", values: []float64{nan, nan}, want: nil},
		{name: "gap in middle", values: []float64{1, 2, nan, 3, 4}, want: [][2]int{{0, 2}, {3, 5}}},
		{name: "leading missing", values: []float64{nan, 10}, want: [][2]int{{1, 2}}},
		{name: "trailing missing", values: []float64{10, nan}, want: [][2]int{{0, 1}}},
		{name: "single point runs", values: []float64{nan, 5, nan, 7, nan}, want: [][2]int{{1, 2}, {3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitRuns(tt.values))
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{12345, "12345"},
		{1000, "1000"},
		{-2500.7, "-2501"},
		{99.44, "99.4"},
		{10, "10.0"},
		{5.251, "5.25"},
		{1, "1.00"},
		{0.12345, "0.123"},
		{0, "0.000"},
		{-0.5, "-0.500"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.v), "FormatNumber(%v)", tt.v)
	}
}

func TestRenderFillsBackground(t *testing.T) {
	l := testLayout()
	p := testPipeline(t, l)
	th := p.Theme()

	f := p.Render(nil, Info{})
	require.Equal(t, l.Width, f.W)
	require.Equal(t, l.Height, f.H)

	// A corner outside plot, labels and status bar carries the fill.
	assert.Equal(t, th.BG, f.Pixel(l.Width-1, 0))
}

func TestRenderDrawsSeries(t *testing.T) {
	l := testLayout()
	p := testPipeline(t, l)

	style := Style{Label: "s", Color: frame.Color{B: 1, G: 2, R: 3}, LineWidth: 2}
	values := []float64{50, 50, 50, 50}
	f := p.Render([]SeriesView{{
		Style:    style,
		Values:   values,
		Bounds:   scale.Bounds{Lo: 50, Hi: 50, OK: true},
		Latest:   50,
		LatestOK: true,
	}}, Info{})

	// A flat line at the vertical middle of the plot area.
	midY := l.PlotY() + l.PlotH()/2
	midX := l.PlotX() + l.PlotW()/2
	assert.Equal(t, style.Color, f.Pixel(midX, midY))
}

func TestRenderMarkerSkippedWhenLatestMissing(t *testing.T) {
	l := testLayout()
	p := testPipeline(t, l)

	style := Style{Color: frame.Color{R: 200}, LineWidth: 1, ShowMarker: true, MarkerRadius: 5, ShowHalo: true}
	f := p.Render([]SeriesView{{
		Style:  style,
		Values: []float64{50, math.NaN()},
		Bounds: scale.Bounds{Lo: 50, Hi: 50, OK: true},
	}}, Info{})

	// The right edge of the plot has no marker: still background/grid,
	// never the pure series color.
	rx := l.PlotX() + l.PlotW()
	midY := l.PlotY() + l.PlotH()/2
	assert.NotEqual(t, style.Color, f.Pixel(rx, midY))
}

func TestRenderBackgroundCached(t *testing.T) {
	l := testLayout()
	p := testPipeline(t, l)

	p.Render(nil, Info{})
	bg1 := p.bg.Clone()

	p.Render(nil, Info{})
	assert.Equal(t, bg1.Pix, p.bg.Pix, "background untouched without invalidation")

	p.SetTheme(mustTheme(t, "light"))
	p.Render(nil, Info{})
	assert.NotEqual(t, bg1.Pix, p.bg.Pix, "theme change rebuilds background")
}

func mustTheme(t *testing.T, name string) *theme.Theme {
	t.Helper()
	th, err := theme.Lookup(name)
	require.NoError(t, err)
	return th
}

func TestTooltipIgnoredOutsidePlot(t *testing.T) {
	l := testLayout()
	p := testPipeline(t, l)

	// Pointer in the top margin: no crosshair drawn.
	f := p.Render(nil, Info{Pointer: &image.Point{X: l.PlotX() + 5, Y: 2}})
	th := p.Theme()
	assert.NotEqual(t, th.GridCenter, f.Pixel(l.PlotX()+5, l.PlotY()+1))
}

func TestTooltipCrosshair(t *testing.T) {
	l := testLayout()
	p := testPipeline(t, l)

	x := l.PlotX() + l.PlotW()/3
	f := p.Render(nil, Info{Pointer: &image.Point{X: x, Y: l.PlotY() + 5}})
	th := p.Theme()
	assert.Equal(t, th.GridCenter, f.Pixel(x, l.PlotY()+l.PlotH()/2))
}

func TestXOffsetEndpoints(t *testing.T) {
	assert.Equal(t, 0, xOffset(0, 10, 130))
	assert.Equal(t, 130, xOffset(9, 10, 130))
	assert.Equal(t, 0, xOffset(0, 1, 130), "single sample sits at the left edge")
}
