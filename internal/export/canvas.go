package export

import (
	"image/color"

	"github.com/fogleman/gg"
)

// ImageCanvas draws onto an in-memory gg context.
type ImageCanvas struct {
	dc *gg.Context
}

// NewImageCanvas returns a size×size canvas filled with bg.
func NewImageCanvas(size int, bg color.Color) *ImageCanvas {
	dc := gg.NewContext(size, size)
	dc.SetColor(bg)
	dc.Clear()
	return &ImageCanvas{dc: dc}
}

func (c *ImageCanvas) Line(x0, y0, x1, y1, width float64, col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawLine(x0, y0, x1, y1)
	c.dc.Stroke()
}

func (c *ImageCanvas) Disc(cx, cy, r float64, col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.DrawCircle(cx, cy, r)
	c.dc.Fill()
}

func (c *ImageCanvas) Ring(cx, cy, r, width float64, col color.NRGBA) {
	c.dc.SetColor(col)
	c.dc.SetLineWidth(width)
	c.dc.DrawCircle(cx, cy, r)
	c.dc.Stroke()
}

// Context exposes the underlying gg context.
func (c *ImageCanvas) Context() *gg.Context {
	return c.dc
}
