package frame

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPixelRoundtrip(t *testing.T) {
	f := New(10, 10)
	c := Color{B: 10, G: 20, R: 30}
	f.SetPixel(3, 4, c)

	assert.Equal(t, c, f.Pixel(3, 4))
	assert.Equal(t, Color{}, f.Pixel(3, 5))

	// Channel order in the packed buffer is B,G,R.
	i := (4*10 + 3) * 3
	assert.Equal(t, []byte{10, 20, 30}, f.Pix[i:i+3])
}

func TestClippingIsSafe(t *testing.T) {
	f := New(4, 4)
	c := Color{R: 255}

	f.SetPixel(-1, 0, c)
	f.SetPixel(0, -1, c)
	f.SetPixel(4, 0, c)
	f.SetPixel(0, 4, c)
	f.Line(-50, -50, 50, 50, c, 3)
	f.FillCircle(0, 0, 10, c)
	f.Rect(-2, -2, 6, 6, c)
	f.Text("clipped", -100, 2, c)

	assert.Equal(t, Color{}, f.Pixel(-1, 0))
	assert.Equal(t, Color{}, f.Pixel(4, 0))
}

func TestCloneIsIndependent(t *testing.T) {
	f := New(4, 4)
	f.Fill(Color{B: 9, G: 9, R: 9})
	c := f.Clone()
	f.SetPixel(0, 0, Color{R: 1})

	assert.Equal(t, Color{B: 9, G: 9, R: 9}, c.Pixel(0, 0))
}

func TestImageInterop(t *testing.T) {
	f := New(5, 5)
	f.SetPixel(1, 1, Color{B: 250, G: 100, R: 50})

	require.Equal(t, image.Rect(0, 0, 5, 5), f.Bounds())

	// At converts the BGR storage to conventional RGBA.
	assert.Equal(t, color.RGBA{R: 50, G: 100, B: 250, A: 0xff}, f.At(1, 1))

	// Set accepts any color.Color and stores BGR.
	f.Set(2, 2, color.RGBA{R: 11, G: 22, B: 33, A: 0xff})
	assert.Equal(t, Color{B: 33, G: 22, R: 11}, f.Pixel(2, 2))
}

func TestHVLines(t *testing.T) {
	f := New(10, 10)
	c := Color{G: 200}

	f.HLine(2, 7, 5, c)
	assert.Equal(t, c, f.Pixel(2, 5))
	assert.Equal(t, c, f.Pixel(7, 5))
	assert.Equal(t, Color{}, f.Pixel(8, 5))

	f.VLine(1, 0, 9, c)
	assert.Equal(t, c, f.Pixel(1, 0))
	assert.Equal(t, c, f.Pixel(1, 9))
}

func TestPolylineSinglePointDrawsDot(t *testing.T) {
	f := New(20, 20)
	c := Color{R: 255}
	f.Polyline([]image.Point{image.Pt(10, 10)}, c, 2)

	assert.Equal(t, c, f.Pixel(10, 10))
}

func TestBlendRectRegionLimited(t *testing.T) {
	f := New(10, 10)
	f.Fill(Color{B: 100, G: 100, R: 100})
	f.BlendRect(2, 2, 5, 5, Color{}, 0.5)

	// Inside: halfway between fill and black.
	assert.Equal(t, Color{B: 50, G: 50, R: 50}, f.Pixel(3, 3))
	// Outside: untouched.
	assert.Equal(t, Color{B: 100, G: 100, R: 100}, f.Pixel(6, 6))
}

func TestBlendRectClamped(t *testing.T) {
	f := New(4, 4)
	f.Fill(Color{B: 200, G: 200, R: 200})
	f.BlendRect(-10, -10, 100, 100, Color{}, 1.0)

	assert.Equal(t, Color{}, f.Pixel(0, 0))
	assert.Equal(t, Color{}, f.Pixel(3, 3))
}

func TestTextMetrics(t *testing.T) {
	assert.Zero(t, TextWidth(""))
	assert.Greater(t, TextWidth("hello"), TextWidth("hi"))
	assert.Positive(t, TextHeight())
}

func TestTextDrawsSomething(t *testing.T) {
	f := New(60, 20)
	c := Color{B: 255, G: 255, R: 255}
	f.Text("X", 5, 14, c)

	found := false
	for i := 0; i < len(f.Pix); i += 3 {
		if f.Pix[i] != 0 {
			found = true
			break
		}
	}
	assert.True(t, found, "glyph coverage left no pixels")
}
