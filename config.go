package liveplot

import (
	"fmt"

	"github.com/googlesky/liveplot/frame"
	"github.com/googlesky/liveplot/internal/scale"
	"github.com/googlesky/liveplot/theme"
)

// ScaleMode selects how the value range follows the data.
type ScaleMode string

const (
	// ScaleFixed keeps the configured YMin/YMax.
	ScaleFixed ScaleMode = "fixed"
	// ScaleAuto fits the range to the visible data each tick.
	ScaleAuto ScaleMode = "auto"
	// ScaleAutoExpand only ever widens the range.
	ScaleAutoExpand ScaleMode = "expand"
)

// Config is the master configuration for one plot.
type Config struct {
	// Surface dimensions in pixels.
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`

	// Margins around the plot sub-rectangle; they hold labels, title,
	// value readouts and the status bar.
	MarginLeft   int `mapstructure:"margin_left"`
	MarginTop    int `mapstructure:"margin_top"`
	MarginRight  int `mapstructure:"margin_right"`
	MarginBottom int `mapstructure:"margin_bottom"`

	// Value axis.
	YMin        float64   `mapstructure:"y_min"`
	YMax        float64   `mapstructure:"y_max"`
	ScaleMode   ScaleMode `mapstructure:"scale_mode"`
	Padding     float64   `mapstructure:"padding"`      // fractional padding around the data envelope
	Smooth      bool      `mapstructure:"smooth"`       // animate range transitions
	SmoothSpeed float64   `mapstructure:"smooth_speed"` // lerp fraction per tick, (0,1]

	// Data.
	BufferSize int `mapstructure:"buffer_size"`

	// Grid.
	GridXSpacing   int `mapstructure:"grid_x_spacing"`
	GridYDivisions int `mapstructure:"grid_y_divisions"`

	// Visual.
	Title        string `mapstructure:"title"`
	Theme        string `mapstructure:"theme"`
	ShowRate     bool   `mapstructure:"show_rate"`
	ShowLegend   bool   `mapstructure:"show_legend"`
	ShowZeroLine bool   `mapstructure:"show_zero_line"`
	ShowHints    bool   `mapstructure:"show_hints"`
	InvertY      bool   `mapstructure:"invert_y"`

	// Frame pacing hints consumed by the caller's pacer.
	TargetFPS float64 `mapstructure:"target_fps"`
	Strategy  string  `mapstructure:"strategy"`
}

// DefaultConfig returns the baseline configuration: an 800×480 dark
// plot with a fixed 0..100 range at 60 FPS.
func DefaultConfig() Config {
	return Config{
		Width:          800,
		Height:         480,
		MarginLeft:     70,
		MarginTop:      50,
		MarginRight:    20,
		MarginBottom:   40,
		YMin:           0,
		YMax:           100,
		ScaleMode:      ScaleFixed,
		Padding:        0.1,
		Smooth:         true,
		SmoothSpeed:    0.15,
		BufferSize:     200,
		GridXSpacing:   50,
		GridYDivisions: 8,
		Theme:          "dark",
		ShowRate:       true,
		ShowLegend:     true,
		ShowZeroLine:   true,
		ShowHints:      true,
		InvertY:        true,
		TargetFPS:      60,
		Strategy:       "adaptive",
	}
}

// PlotW returns the plot area width.
func (c Config) PlotW() int { return c.Width - c.MarginLeft - c.MarginRight }

// PlotH returns the plot area height.
func (c Config) PlotH() int { return c.Height - c.MarginTop - c.MarginBottom }

// Validate rejects configurations the renderer cannot operate on.
// Failures are construction-time fatal, not recoverable mid-run.
func (c Config) Validate() error {
	if c.BufferSize < 2 {
		return fmt.Errorf("%w: buffer size %d, need at least 2", ErrInvalidConfig, c.BufferSize)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: surface %dx%d must be positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.PlotW() <= 0 || c.PlotH() <= 0 {
		return fmt.Errorf("%w: margins leave a %dx%d plot area", ErrInvalidConfig, c.PlotW(), c.PlotH())
	}
	switch c.ScaleMode {
	case ScaleFixed, ScaleAuto, ScaleAutoExpand:
	default:
		return fmt.Errorf("%w: unknown scale mode %q", ErrInvalidConfig, c.ScaleMode)
	}
	if c.ScaleMode == ScaleFixed && c.YMin >= c.YMax {
		return fmt.Errorf("%w: fixed range [%g,%g] is not ascending", ErrInvalidConfig, c.YMin, c.YMax)
	}
	if c.Padding < 0 {
		return fmt.Errorf("%w: negative padding %g", ErrInvalidConfig, c.Padding)
	}
	if c.Smooth && (c.SmoothSpeed <= 0 || c.SmoothSpeed > 1) {
		return fmt.Errorf("%w: smooth speed %g outside (0,1]", ErrInvalidConfig, c.SmoothSpeed)
	}
	if _, err := theme.Lookup(c.Theme); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func (c Config) scaleMode() scale.Mode {
	switch c.ScaleMode {
	case ScaleAuto:
		return scale.Auto
	case ScaleAutoExpand:
		return scale.AutoExpand
	default:
		return scale.Fixed
	}
}

// SeriesConfig is the visual configuration of one data series.
// The zero Color means "assign the next palette color".
type SeriesConfig struct {
	Label        string      `mapstructure:"label"`
	Color        frame.Color `mapstructure:"-"`
	LineWidth    int         `mapstructure:"line_width"`
	ShowMarker   bool        `mapstructure:"show_marker"`
	MarkerRadius int         `mapstructure:"marker_radius"`
	ShowValue    bool        `mapstructure:"show_value"`
	ShowHalo     bool        `mapstructure:"show_halo"`
}

// DefaultSeriesConfig returns the per-series defaults: 2px line with a
// glowing end marker and a value readout.
func DefaultSeriesConfig() SeriesConfig {
	return SeriesConfig{
		LineWidth:    2,
		ShowMarker:   true,
		MarkerRadius: 5,
		ShowValue:    true,
		ShowHalo:     true,
	}
}
