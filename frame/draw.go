package frame

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Face is the bitmap face used for all on-frame text.
var Face = basicfont.Face7x13

// HLine draws a horizontal line from (x0,y) to (x1,y) inclusive.
func (f *Frame) HLine(x0, x1, y int, c Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		f.SetPixel(x, y, c)
	}
}

// VLine draws a vertical line from (x,y0) to (x,y1) inclusive.
func (f *Frame) VLine(x, y0, y1 int, c Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		f.SetPixel(x, y, c)
	}
}

// Line draws a straight segment with the given stroke width using
// Bresenham stepping. Widths > 1 stack parallel one-pixel lines offset
// perpendicular to the dominant axis.
func (f *Frame) Line(x0, y0, x1, y1 int, c Color, width int) {
	if width <= 1 {
		f.thinLine(x0, y0, x1, y1, c)
		return
	}
	dx := abs(x1 - x0)
	dy := abs(y1 - y0)
	// Offsets centered on the ideal line.
	for i := 0; i < width; i++ {
		off := i - width/2
		if dx >= dy {
			f.thinLine(x0, y0+off, x1, y1+off, c)
		} else {
			f.thinLine(x0+off, y0, x1+off, y1, c)
		}
	}
}

func (f *Frame) thinLine(x0, y0, x1, y1 int, c Color) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		f.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Polyline connects consecutive points with segments of the given width.
// A single point draws as a dot of roughly the stroke width.
func (f *Frame) Polyline(pts []image.Point, c Color, width int) {
	switch len(pts) {
	case 0:
		return
	case 1:
		r := width / 2
		if r < 1 {
			r = 1
		}
		f.FillCircle(pts[0].X, pts[0].Y, r, c)
		return
	}
	for i := 1; i < len(pts); i++ {
		f.Line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c, width)
	}
}

// FillCircle draws a filled disc centered at (cx,cy).
func (f *Frame) FillCircle(cx, cy, r int, c Color) {
	if r < 0 {
		return
	}
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy <= r*r {
				f.SetPixel(cx+dx, cy+dy, c)
			}
		}
	}
}

// Rect draws a one-pixel rectangle outline.
func (f *Frame) Rect(x0, y0, x1, y1 int, c Color) {
	f.HLine(x0, x1, y0, c)
	f.HLine(x0, x1, y1, c)
	f.VLine(x0, y0, y1, c)
	f.VLine(x1, y0, y1, c)
}

// FillRect fills the rectangle [x0,x1]×[y0,y1].
func (f *Frame) FillRect(x0, y0, x1, y1 int, c Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		f.HLine(x0, x1, y, c)
	}
}

// BlendRect alpha-blends color c over the rectangle [x0,x1)×[y0,y1).
// Only pixels inside the rectangle are touched, keeping the cost
// proportional to the region, not the frame.
func (f *Frame) BlendRect(x0, y0, x1, y1 int, c Color, alpha float64) {
	if alpha <= 0 {
		return
	}
	if alpha > 1 {
		alpha = 1
	}
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > f.W {
		x1 = f.W
	}
	if y1 > f.H {
		y1 = f.H
	}
	inv := 1 - alpha
	ab := alpha * float64(c.B)
	ag := alpha * float64(c.G)
	ar := alpha * float64(c.R)
	for y := y0; y < y1; y++ {
		i := (y*f.W + x0) * 3
		for x := x0; x < x1; x++ {
			f.Pix[i] = uint8(ab + inv*float64(f.Pix[i]))
			f.Pix[i+1] = uint8(ag + inv*float64(f.Pix[i+1]))
			f.Pix[i+2] = uint8(ar + inv*float64(f.Pix[i+2]))
			i += 3
		}
	}
}

// Text draws s with its baseline at (x,y).
func (f *Frame) Text(s string, x, y int, c Color) {
	d := &font.Drawer{
		Dst:  f,
		Src:  uniform(c),
		Face: Face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// TextWidth reports the advance width of s in pixels.
func TextWidth(s string) int {
	d := &font.Drawer{Face: Face}
	return d.MeasureString(s).Ceil()
}

// TextHeight reports the face height in pixels.
func TextHeight() int {
	return Face.Metrics().Height.Ceil()
}

func uniform(c Color) *image.Uniform {
	return image.NewUniform(rgba{c})
}

type rgba struct{ c Color }

func (u rgba) RGBA() (r, g, b, a uint32) {
	r = uint32(u.c.R) * 0x101
	g = uint32(u.c.G) * 0x101
	b = uint32(u.c.B) * 0x101
	a = 0xffff
	return
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
