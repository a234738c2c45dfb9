// Package liveplot renders continuously updating multi-series numeric
// time plots onto a BGR pixel surface, for live telemetry and
// monitoring dashboards.
//
// The plot separates expensive static drawing (grid, labels, border,
// title) from cheap per-frame drawing (series lines, legend, tooltip,
// status) behind a cache with an invalidation flag, so a tick costs a
// bulk copy plus the dynamic layers. Frame cadence is owned by the
// pacer package; sample ingestion is safe to call from other
// goroutines.
package liveplot

import (
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/googlesky/liveplot/frame"
	"github.com/googlesky/liveplot/internal/render"
	"github.com/googlesky/liveplot/internal/scale"
	"github.com/googlesky/liveplot/internal/series"
	"github.com/googlesky/liveplot/theme"
)

// DefaultSeries is the name of the series created by Observe.
const DefaultSeries = "_default"

type seriesEntry struct {
	buf *series.Buffer
	cfg SeriesConfig
}

// Plot owns the series buffers, scale state and render pipeline.
//
// One mutex guards all of it: pushes from any goroutine and renders
// from the display goroutine serialize through the same lock, so a
// render sees either all of a push or none of it.
type Plot struct {
	mu sync.Mutex

	cfg    Config
	themes []string
	themeI int

	series map[string]*seriesEntry
	order  []string

	engine *scale.Engine
	pipe   *render.Pipeline

	paused      bool
	status      string
	statusUntil time.Time

	now func() time.Time
}

// New validates cfg and creates an empty plot.
func New(cfg Config) (*Plot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	th, _ := theme.Lookup(cfg.Theme)

	eng := scale.New(cfg.scaleMode(), cfg.YMin, cfg.YMax,
		cfg.Padding, cfg.Smooth, cfg.SmoothSpeed, cfg.PlotH())

	p := &Plot{
		cfg:    cfg,
		themes: theme.Names(),
		series: make(map[string]*seriesEntry),
		engine: eng,
		pipe:   render.New(layoutFor(cfg), th, eng),
		now:    time.Now,
	}
	for i, n := range p.themes {
		if n == cfg.Theme {
			p.themeI = i
		}
	}
	return p, nil
}

func layoutFor(cfg Config) render.Layout {
	return render.Layout{
		Width:          cfg.Width,
		Height:         cfg.Height,
		MarginLeft:     cfg.MarginLeft,
		MarginTop:      cfg.MarginTop,
		MarginRight:    cfg.MarginRight,
		MarginBottom:   cfg.MarginBottom,
		GridXSpacing:   cfg.GridXSpacing,
		GridYDivisions: cfg.GridYDivisions,
		Title:          cfg.Title,
		InvertY:        cfg.InvertY,
		ShowLegend:     cfg.ShowLegend,
		ShowZeroLine:   cfg.ShowZeroLine,
		ShowRate:       cfg.ShowRate,
		ShowHints:      cfg.ShowHints,
	}
}

// AddSeries registers a named series. A nil cfg takes the defaults with
// the next palette color; a zero Color in cfg does the same. Adding an
// existing name replaces its configuration but keeps its data.
func (p *Plot) AddSeries(name string, cfg *SeriesConfig) *Plot {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addSeriesLocked(name, cfg)
	return p
}

func (p *Plot) addSeriesLocked(name string, cfg *SeriesConfig) *seriesEntry {
	sc := DefaultSeriesConfig()
	if cfg != nil {
		sc = *cfg
		if sc.LineWidth <= 0 {
			sc.LineWidth = 2
		}
		if sc.MarkerRadius <= 0 {
			sc.MarkerRadius = 5
		}
	}
	if sc.Label == "" {
		sc.Label = name
	}
	if (sc.Color == frame.Color{}) {
		sc.Color = p.pipe.Theme().SeriesColor(len(p.order))
	}

	e, ok := p.series[name]
	if ok {
		e.cfg = sc
		return e
	}
	e = &seriesEntry{buf: series.New(p.cfg.BufferSize), cfg: sc}
	p.series[name] = e
	p.order = append(p.order, name)
	p.pipe.MarkDirty()
	return e
}

// RemoveSeries drops a series and its data.
func (p *Plot) RemoveSeries(name string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.series[name]; !ok {
		return
	}
	delete(p.series, name)
	for i, n := range p.order {
		if n == name {
			p.order = append(p.order[:i], p.order[i+1:]...)
			break
		}
	}
	p.pipe.MarkDirty()
}

// Push ingests one sample into a named series. Strict: the series must
// have been added. Pushes are dropped while paused.
func (p *Plot) Push(name string, v float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.series[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
	}
	if !p.paused {
		e.buf.Push(v)
	}
	return nil
}

// PushAll ingests one sample per series, atomically under the lock.
// All names are checked before any buffer is touched.
func (p *Plot) PushAll(data map[string]float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for name := range data {
		if _, ok := p.series[name]; !ok {
			return fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
		}
	}
	if p.paused {
		return nil
	}
	for name, v := range data {
		p.series[name].buf.Push(v)
	}
	return nil
}

// Observe ingests one sample into the default series, creating it on
// first use. The convenience path for single-value plots; never errors.
func (p *Plot) Observe(v float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.series[DefaultSeries]
	if !ok {
		cfg := DefaultSeriesConfig()
		cfg.Label = "Value"
		e = p.addSeriesLocked(DefaultSeries, &cfg)
	}
	if !p.paused {
		e.buf.Push(v)
	}
}

// RenderInfo carries the caller-supplied dynamic state for one frame.
type RenderInfo struct {
	// Rate is the measured throughput, usually pacer.Rate().
	Rate float64
	// Pointer is the pointer position on the surface, nil when outside.
	Pointer *image.Point
}

// Render composites one frame. The returned frame is reused on the
// next call; Clone it to keep it.
func (p *Plot) Render(info RenderInfo) *frame.Frame {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.status != "" && p.now().After(p.statusUntil) {
		p.status = ""
	}

	views := make([]render.SeriesView, 0, len(p.order))
	for _, name := range p.order {
		e := p.series[name]
		lo, hi, ok := e.buf.MinMax()
		latest, latestOK := e.buf.Latest()
		views = append(views, render.SeriesView{
			Style: render.Style{
				Label:        e.cfg.Label,
				Color:        e.cfg.Color,
				LineWidth:    e.cfg.LineWidth,
				ShowMarker:   e.cfg.ShowMarker,
				MarkerRadius: e.cfg.MarkerRadius,
				ShowValue:    e.cfg.ShowValue,
				ShowHalo:     e.cfg.ShowHalo,
			},
			Values:   e.buf.Values(),
			Bounds:   scale.Bounds{Lo: lo, Hi: hi, OK: ok},
			Latest:   latest,
			LatestOK: latestOK,
		})
	}

	return p.pipe.Render(views, render.Info{
		Rate:    info.Rate,
		Paused:  p.paused,
		Status:  p.status,
		Pointer: info.Pointer,
	})
}

// Update is the push-then-render convenience used by simple loops.
func (p *Plot) Update(name string, v float64) (*frame.Frame, error) {
	if err := p.Push(name, v); err != nil {
		return nil, err
	}
	return p.Render(RenderInfo{}), nil
}

// Values returns the named series' samples oldest→newest.
func (p *Plot) Values(name string) ([]float64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.series[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
	}
	return e.buf.Values(), nil
}

// Latest returns the newest sample of a series; ok is false when the
// series is empty or its newest sample is missing.
func (p *Plot) Latest(name string) (v float64, ok bool, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, found := p.series[name]
	if !found {
		return 0, false, fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
	}
	v, ok = e.buf.Latest()
	return v, ok, nil
}

// Clear resets one series' data.
func (p *Plot) Clear(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	e, ok := p.series[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrSeriesNotFound, name)
	}
	e.buf.Clear()
	return nil
}

// ClearAll resets every series.
func (p *Plot) ClearAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.series {
		e.buf.Clear()
	}
}

// SetRange pins the value axis to [lo,hi] immediately.
func (p *Plot) SetRange(lo, hi float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg.YMin, p.cfg.YMax = lo, hi
	p.pipe.SetRange(lo, hi)
}

// SetTheme switches the palette by name.
func (p *Plot) SetTheme(name string) error {
	t, err := theme.Lookup(name)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cfg.Theme = name
	for i, n := range p.themes {
		if n == name {
			p.themeI = i
		}
	}
	p.pipe.SetTheme(t)
	return nil
}

// CycleTheme advances to the next registered theme and returns its name.
func (p *Plot) CycleTheme() string {
	p.mu.Lock()
	p.themeI = (p.themeI + 1) % len(p.themes)
	name := p.themes[p.themeI]
	p.mu.Unlock()

	// Lookup cannot fail for a registered name.
	_ = p.SetTheme(name)
	return name
}

// SetPaused stops or resumes sample ingestion; rendering continues.
func (p *Plot) SetPaused(paused bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = paused
}

// Paused reports whether ingestion is paused.
func (p *Plot) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.paused
}

// SetStatus shows a transient message in the status bar.
func (p *Plot) SetStatus(text string, d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.status = text
	p.statusUntil = p.now().Add(d)
}

// Config returns a copy of the active configuration.
func (p *Plot) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}
