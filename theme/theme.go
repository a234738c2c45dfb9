// Package theme holds the built-in color palettes. The render pipeline
// only ever consumes a resolved Theme; it never constructs colors itself.
//
// All colors are BGR, matching the frame's channel order.
package theme

import (
	"fmt"
	"sort"

	"github.com/googlesky/liveplot/frame"
)

// Theme is a complete palette for one plot.
type Theme struct {
	Name string

	// Background and structural elements.
	BG         frame.Color
	GridMajor  frame.Color
	GridMinor  frame.Color
	GridCenter frame.Color
	Border     frame.Color

	// Text.
	AxisLabel frame.Color
	Title     frame.Color
	ValueText frame.Color
	StatusBar frame.Color

	// Legend overlay.
	LegendBG    frame.Color
	LegendAlpha float64

	// Series palette, assigned round-robin to unstyled series.
	Series []frame.Color
}

// SeriesColor returns the palette color for the i-th series.
func (t *Theme) SeriesColor(i int) frame.Color {
	return t.Series[i%len(t.Series)]
}

var registry = map[string]*Theme{
	"dark": {
		Name:       "dark",
		BG:         frame.Color{B: 18, G: 18, R: 24},
		GridMajor:  frame.Color{B: 45, G: 45, R: 55},
		GridMinor:  frame.Color{B: 32, G: 32, R: 40},
		GridCenter: frame.Color{B: 60, G: 60, R: 75},
		Border:     frame.Color{B: 50, G: 50, R: 65},
		AxisLabel:  frame.Color{B: 140, G: 140, R: 160},
		Title:      frame.Color{B: 200, G: 200, R: 220},
		ValueText:  frame.Color{B: 180, G: 180, R: 200},
		StatusBar:  frame.Color{B: 80, G: 80, R: 100},
		LegendBG:   frame.Color{B: 30, G: 30, R: 40},
		LegendAlpha: 0.7,
		Series: []frame.Color{
			{B: 255, G: 100, R: 255}, // magenta
			{B: 100, G: 255, R: 100}, // green
			{B: 100, G: 200, R: 255}, // cyan-blue
			{B: 80, G: 180, R: 255},  // orange
			{B: 100, G: 100, R: 255}, // red
			{B: 255, G: 255, R: 100}, // light cyan
			{B: 150, G: 100, R: 255}, // coral
			{B: 255, G: 200, R: 50},  // sky blue
		},
	},
	"light": {
		Name:       "light",
		BG:         frame.Color{B: 245, G: 245, R: 248},
		GridMajor:  frame.Color{B: 210, G: 210, R: 218},
		GridMinor:  frame.Color{B: 228, G: 228, R: 234},
		GridCenter: frame.Color{B: 180, G: 180, R: 195},
		Border:     frame.Color{B: 190, G: 190, R: 200},
		AxisLabel:  frame.Color{B: 80, G: 80, R: 100},
		Title:      frame.Color{B: 30, G: 30, R: 50},
		ValueText:  frame.Color{B: 50, G: 50, R: 70},
		StatusBar:  frame.Color{B: 160, G: 160, R: 175},
		LegendBG:   frame.Color{B: 235, G: 235, R: 240},
		LegendAlpha: 0.85,
		Series: []frame.Color{
			{B: 180, G: 50, R: 180},
			{B: 50, G: 180, R: 50},
			{B: 200, G: 120, R: 30},
			{B: 30, G: 130, R: 220},
			{B: 60, G: 60, R: 200},
			{B: 180, G: 180, R: 30},
			{B: 100, G: 50, R: 200},
			{B: 200, G: 150, R: 20},
		},
	},
	"midnight": {
		Name:       "midnight",
		BG:         frame.Color{B: 12, G: 8, R: 4},
		GridMajor:  frame.Color{B: 35, G: 30, R: 25},
		GridMinor:  frame.Color{B: 24, G: 20, R: 16},
		GridCenter: frame.Color{B: 55, G: 45, R: 35},
		Border:     frame.Color{B: 45, G: 38, R: 30},
		AxisLabel:  frame.Color{B: 120, G: 130, R: 140},
		Title:      frame.Color{B: 180, G: 195, R: 210},
		ValueText:  frame.Color{B: 160, G: 170, R: 185},
		StatusBar:  frame.Color{B: 70, G: 75, R: 85},
		LegendBG:   frame.Color{B: 22, G: 18, R: 12},
		LegendAlpha: 0.75,
		Series: []frame.Color{
			{B: 255, G: 180, R: 80},
			{B: 100, G: 255, R: 180},
			{B: 180, G: 120, R: 255},
			{B: 80, G: 200, R: 255},
			{B: 120, G: 100, R: 255},
			{B: 255, G: 220, R: 100},
			{B: 100, G: 255, R: 255},
			{B: 255, G: 150, R: 150},
		},
	},
}

// Lookup returns the theme registered under name.
func Lookup(name string) (*Theme, error) {
	t, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("theme %q not found (available: %v)", name, Names())
	}
	return t, nil
}

// Register adds or replaces a custom theme.
func Register(t *Theme) {
	registry[t.Name] = t
}

// Names lists registered theme names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
