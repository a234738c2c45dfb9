// Package frame provides the pixel surface the plot renders onto and the
// small set of drawing primitives the render pipeline needs.
//
// A Frame is a packed H×W×3 byte buffer in BGR channel order (the display
// convention of the downstream sinks). It also implements image.Image and
// draw.Image so stdlib encoders and x/image font drawers operate on it
// directly, without an intermediate copy.
package frame

import (
	"image"
	"image/color"
)

// Color is a BGR triple matching the frame's channel order.
type Color struct {
	B, G, R uint8
}

// Dim returns the color scaled down by div (used for marker halos).
func (c Color) Dim(div uint8) Color {
	if div == 0 {
		div = 1
	}
	return Color{c.B / div, c.G / div, c.R / div}
}

// Frame is a rectangular BGR pixel surface, row-major, byte per channel.
type Frame struct {
	W, H int
	Pix  []byte // len = W*H*3
}

// New allocates a zeroed (black) frame.
func New(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]byte, w*h*3)}
}

// Clone returns an independent copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{W: f.W, H: f.H, Pix: make([]byte, len(f.Pix))}
	copy(c.Pix, f.Pix)
	return c
}

// CopyFrom overwrites this frame with src. Both must share dimensions.
func (f *Frame) CopyFrom(src *Frame) {
	copy(f.Pix, src.Pix)
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c Color) {
	for i := 0; i < len(f.Pix); i += 3 {
		f.Pix[i] = c.B
		f.Pix[i+1] = c.G
		f.Pix[i+2] = c.R
	}
}

// SetPixel writes one pixel, silently clipping out-of-bounds coordinates.
func (f *Frame) SetPixel(x, y int, c Color) {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return
	}
	i := (y*f.W + x) * 3
	f.Pix[i] = c.B
	f.Pix[i+1] = c.G
	f.Pix[i+2] = c.R
}

// Pixel reads one pixel; out-of-bounds reads return the zero color.
func (f *Frame) Pixel(x, y int) Color {
	if x < 0 || y < 0 || x >= f.W || y >= f.H {
		return Color{}
	}
	i := (y*f.W + x) * 3
	return Color{f.Pix[i], f.Pix[i+1], f.Pix[i+2]}
}

// image.Image / draw.Image interop. At converts BGR storage to RGBA so
// png/jpeg encoders and font.Drawer see conventional colors.

func (f *Frame) ColorModel() color.Model { return color.RGBAModel }

func (f *Frame) Bounds() image.Rectangle { return image.Rect(0, 0, f.W, f.H) }

func (f *Frame) At(x, y int) color.Color {
	c := f.Pixel(x, y)
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

func (f *Frame) Set(x, y int, c color.Color) {
	r, g, b, _ := c.RGBA()
	f.SetPixel(x, y, Color{B: uint8(b >> 8), G: uint8(g >> 8), R: uint8(r >> 8)})
}
