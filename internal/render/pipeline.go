// Package render turns series data into pixel frames.
//
// The pipeline keeps two surfaces: a cached static background (fill,
// grid, axis labels, border, title) that is rebuilt only when the
// display range, theme or series set changes, and a per-frame canvas
// the dynamic layers (lines, legend, tooltip, status) are composited
// onto after a bulk copy of the background.
package render

import (
	"fmt"
	"image"
	"math"

	"github.com/googlesky/liveplot/frame"
	"github.com/googlesky/liveplot/internal/scale"
	"github.com/googlesky/liveplot/theme"
)

// Layout describes the plot geometry and static drawing options.
type Layout struct {
	Width, Height int

	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int

	GridXSpacing   int
	GridYDivisions int

	Title        string
	InvertY      bool
	ShowLegend   bool
	ShowZeroLine bool
	ShowRate     bool
	ShowHints    bool
}

// PlotX returns the left edge of the plot area.
func (l Layout) PlotX() int { return l.MarginLeft }

// PlotY returns the top edge of the plot area.
func (l Layout) PlotY() int { return l.MarginTop }

// PlotW returns the plot area width.
func (l Layout) PlotW() int { return l.Width - l.MarginLeft - l.MarginRight }

// PlotH returns the plot area height.
func (l Layout) PlotH() int { return l.Height - l.MarginTop - l.MarginBottom }

// Style is the visual configuration of one series.
type Style struct {
	Label        string
	Color        frame.Color
	LineWidth    int
	ShowMarker   bool
	MarkerRadius int
	ShowValue    bool
	ShowHalo     bool
}

// SeriesView is the per-tick snapshot of one series handed to Render.
type SeriesView struct {
	Style    Style
	Values   []float64 // oldest → newest, missing = NaN
	Bounds   scale.Bounds
	Latest   float64
	LatestOK bool
}

// Info carries the per-tick dynamic state drawn on top of the data.
type Info struct {
	Rate    float64
	Paused  bool
	Status  string
	Pointer *image.Point // nil when outside the surface
}

// Pipeline composites frames from a cached background and dynamic layers.
type Pipeline struct {
	layout Layout
	theme  *theme.Theme
	engine *scale.Engine

	bg     *frame.Frame
	canvas *frame.Frame
	dirty  bool
}

// New creates a pipeline; the first Render always builds the background.
func New(layout Layout, th *theme.Theme, eng *scale.Engine) *Pipeline {
	return &Pipeline{
		layout: layout,
		theme:  th,
		engine: eng,
		bg:     frame.New(layout.Width, layout.Height),
		canvas: frame.New(layout.Width, layout.Height),
		dirty:  true,
	}
}

// MarkDirty forces a background rebuild on the next Render.
func (p *Pipeline) MarkDirty() { p.dirty = true }

// SetTheme swaps the palette and invalidates the background.
func (p *Pipeline) SetTheme(t *theme.Theme) {
	p.theme = t
	p.dirty = true
}

// Theme returns the active palette.
func (p *Pipeline) Theme() *theme.Theme { return p.theme }

// SetRange pins the displayed range and invalidates the background.
func (p *Pipeline) SetRange(lo, hi float64) {
	p.engine.SetRange(lo, hi)
	p.dirty = true
}

// Canvas returns the most recently composited frame.
func (p *Pipeline) Canvas() *frame.Frame { return p.canvas }

// Render runs the full pipeline for one tick and returns the frame.
// The returned frame is owned by the pipeline and overwritten on the
// next call; callers needing to keep it must Clone.
func (p *Pipeline) Render(series []SeriesView, info Info) *frame.Frame {
	// 1. Derive the target range from the data.
	bounds := make([]scale.Bounds, len(series))
	for i, s := range series {
		bounds[i] = s.Bounds
	}
	p.engine.Observe(bounds)

	// 2. Advance the smoothed display range.
	if p.engine.Advance() {
		p.dirty = true
	}

	// 3. Rebuild the static layer if stale.
	if p.dirty {
		p.rebuildBackground()
		p.dirty = false
	}

	// 4. Bulk copy the background.
	p.canvas.CopyFrom(p.bg)

	// 5. Series lines.
	for i := range series {
		p.drawSeries(&series[i])
	}

	// 6. Legend, only with multiple series.
	if p.layout.ShowLegend && len(series) > 1 {
		p.drawLegend(series, p.layout.PlotX()+10, p.layout.PlotY()+10)
	}

	// 7. Current-value readouts.
	p.drawCurrentValues(series)

	// 8. Pointer crosshair and tooltip.
	if info.Pointer != nil {
		p.drawTooltip(series, *info.Pointer)
	}

	// 9. Status bar.
	p.drawStatusBar(info)

	return p.canvas
}

func (p *Pipeline) rebuildBackground() {
	l := p.layout
	t := p.theme
	bg := p.bg
	bg.Fill(t.BG)

	px, py := l.PlotX(), l.PlotY()
	pw, ph := l.PlotW(), l.PlotH()
	lo, hi := p.engine.Display()
	span := p.engine.Span()

	// Vertical minor grid.
	if l.GridXSpacing > 0 {
		for x := 0; x <= pw; x += l.GridXSpacing {
			bg.VLine(px+x, py, py+ph, t.GridMinor)
		}
	}

	// Horizontal major grid with axis value labels.
	nDiv := l.GridYDivisions
	if nDiv < 1 {
		nDiv = 1
	}
	for i := 0; i <= nDiv; i++ {
		fr := float64(i) / float64(nDiv)
		yAbs := py + int(fr*float64(ph))
		bg.HLine(px, px+pw, yAbs, t.GridMajor)

		var val float64
		if l.InvertY {
			val = hi - fr*span
		} else {
			val = lo + fr*span
		}
		bg.Text(FormatNumber(val), 5, yAbs+4, t.AxisLabel)
	}

	// Zero line, when it crosses the visible range.
	if l.ShowZeroLine && lo < 0 && hi > 0 {
		var zeroFrac float64
		if l.InvertY {
			zeroFrac = hi / span
		} else {
			zeroFrac = -lo / span
		}
		zy := py + int(zeroFrac*float64(ph))
		bg.Line(px, zy, px+pw, zy, t.GridCenter, 2)
	}

	// Border.
	bg.Rect(px, py, px+pw, py+ph, t.Border)

	// Title, centered over the plot area.
	if l.Title != "" {
		tx := px + (pw-frame.TextWidth(l.Title))/2
		bg.Text(l.Title, tx, py-15, t.Title)
	}
}

func (p *Pipeline) drawSeries(s *SeriesView) {
	n := len(s.Values)
	if n == 0 {
		return
	}

	l := p.layout
	px, py := l.PlotX(), l.PlotY()
	pw, ph := l.PlotW(), l.PlotH()
	lo := p.engineLo()
	span := p.engine.Span()

	// Vectorized coordinate mapping: x linear in index, y clamped to the
	// plot rectangle.
	xs := make([]int, n)
	ys := make([]int, n)
	for i, v := range s.Values {
		xs[i] = px + xOffset(i, n, pw)
		if !math.IsNaN(v) {
			ys[i] = int(MapY(v, lo, span, py, ph, l.InvertY))
		}
	}

	// Gap handling: maximal runs of valid values; no interpolation
	// across missing samples.
	width := s.Style.LineWidth
	if width < 1 {
		width = 1
	}
	for _, r := range SplitRuns(s.Values) {
		pts := make([]image.Point, 0, r[1]-r[0])
		for i := r[0]; i < r[1]; i++ {
			pts = append(pts, image.Pt(xs[i], ys[i]))
		}
		p.canvas.Polyline(pts, s.Style.Color, width)
	}

	// End-of-line marker, only when the newest sample is valid.
	if s.Style.ShowMarker && !math.IsNaN(s.Values[n-1]) {
		cx, cy := xs[n-1], ys[n-1]
		r := s.Style.MarkerRadius
		if r < 1 {
			r = 1
		}
		if s.Style.ShowHalo {
			p.canvas.FillCircle(cx, cy, r+6, s.Style.Color.Dim(3))
		}
		p.canvas.FillCircle(cx, cy, r, s.Style.Color)
		p.canvas.FillCircle(cx, cy, 2, frame.Color{B: 255, G: 255, R: 255})
	}
}

func (p *Pipeline) drawLegend(series []SeriesView, x, y int) {
	t := p.theme

	lineH := frame.TextHeight() + 5
	maxW := 0
	for i := range series {
		if w := frame.TextWidth(legendLabel(&series[i], i)); w > maxW {
			maxW = w
		}
	}
	boxW := maxW + 35
	boxH := len(series)*lineH + 10

	// Region-limited blend: cost proportional to the legend box.
	p.canvas.BlendRect(x, y, x+boxW, y+boxH, t.LegendBG, t.LegendAlpha)
	p.canvas.Rect(x, y, x+boxW, y+boxH, t.Border)

	for i := range series {
		cy := y + 15 + i*lineH
		p.canvas.Line(x+8, cy-4, x+22, cy-4, series[i].Style.Color, 2)
		p.canvas.Text(legendLabel(&series[i], i), x+28, cy, t.AxisLabel)
	}
}

func legendLabel(s *SeriesView, i int) string {
	if s.Style.Label != "" {
		return s.Style.Label
	}
	return fmt.Sprintf("series %d", i+1)
}

func (p *Pipeline) drawCurrentValues(series []SeriesView) {
	l := p.layout
	rightX := l.PlotX() + l.PlotW()
	topY := l.PlotY()

	yOff := 0
	for i := range series {
		s := &series[i]
		if !s.Style.ShowValue {
			continue
		}
		text := "---"
		if s.LatestOK {
			text = FormatNumber(s.Latest)
		}
		display := legendLabel(s, i) + ": " + text

		tx := rightX - frame.TextWidth(display) - 10
		ty := topY - 8 - yOff
		if ty > 10 {
			p.canvas.Text(display, tx, ty, s.Style.Color)
			yOff += 18
		}
	}
}

func (p *Pipeline) drawTooltip(series []SeriesView, pos image.Point) {
	l := p.layout
	t := p.theme
	px, py := l.PlotX(), l.PlotY()
	pw, ph := l.PlotW(), l.PlotH()

	if pos.X < px || pos.X > px+pw || pos.Y < py || pos.Y > py+ph {
		return
	}

	// Vertical crosshair.
	p.canvas.VLine(pos.X, py, py+ph, t.GridCenter)

	lo := p.engineLo()
	span := p.engine.Span()
	frac := float64(pos.X-px) / float64(pw)

	yOff := 0
	for i := range series {
		s := &series[i]
		n := len(s.Values)
		if n < 2 {
			continue
		}

		// Pointed data index by linear interpolation across the count.
		idx := int(frac * float64(n-1))
		if idx < 0 {
			idx = 0
		}
		if idx > n-1 {
			idx = n - 1
		}
		v := s.Values[idx]
		if math.IsNaN(v) {
			continue
		}

		yPix := int(MapY(v, lo, span, py, ph, l.InvertY))
		p.canvas.FillCircle(pos.X, yPix, 4, s.Style.Color)

		text := legendLabel(s, i) + ": " + FormatNumber(v)
		tx := pos.X + 10
		if tx+150 > px+pw {
			tx = pos.X - 150
		}
		p.canvas.Text(text, tx, py+20+yOff, s.Style.Color)
		yOff += 16
	}
}

func (p *Pipeline) drawStatusBar(info Info) {
	l := p.layout
	t := p.theme
	y := l.Height - 12

	if l.ShowHints {
		p.canvas.Text("[S]ave [P]ause [R]eset [Q]uit", 8, y, t.StatusBar)
	}

	right := ""
	if l.ShowRate {
		right = fmt.Sprintf("%.0f FPS", info.Rate)
	}
	if info.Paused {
		right = join(right, "|| PAUSED")
	}
	if info.Status != "" {
		right = join(right, info.Status)
	}
	if right != "" {
		p.canvas.Text(right, l.Width-frame.TextWidth(right)-10, y, t.StatusBar)
	}
}

func join(a, b string) string {
	if a == "" {
		return b
	}
	return a + " | " + b
}

func (p *Pipeline) engineLo() float64 {
	lo, _ := p.engine.Display()
	return lo
}

// xOffset spreads n indices linearly across a pixel width.
func xOffset(i, n, pw int) int {
	if n <= 1 {
		return 0
	}
	return int(float64(i) / float64(n-1) * float64(pw))
}

// MapY maps a value to a vertical pixel position. The normalized value
// is clamped to [0,1] so out-of-range samples pin to the plot edges;
// span is pre-substituted and never zero.
func MapY(v, lo, span float64, py, ph int, invert bool) float64 {
	norm := (v - lo) / span
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	if invert {
		return float64(py) + (1-norm)*float64(ph)
	}
	return float64(py) + norm*float64(ph)
}

// SplitRuns partitions values into maximal [start,end) runs of valid
// (non-missing) samples.
func SplitRuns(values []float64) [][2]int {
	var runs [][2]int
	start := -1
	for i, v := range values {
		if math.IsNaN(v) {
			if start >= 0 {
				runs = append(runs, [2]int{start, i})
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		runs = append(runs, [2]int{start, len(values)})
	}
	return runs
}

// FormatNumber renders a value compactly for labels and readouts.
func FormatNumber(v float64) string {
	av := math.Abs(v)
	switch {
	case av >= 1000:
		return fmt.Sprintf("%.0f", v)
	case av >= 10:
		return fmt.Sprintf("%.1f", v)
	case av >= 1:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%.3f", v)
	}
}
