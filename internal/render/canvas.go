//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Canvas pairs a PixelSurface with the GPU image it is uploaded to.
type Canvas struct {
	*PixelSurface
	img *ebiten.Image
}

// NewCanvas allocates a w*h canvas.
func NewCanvas(w, h int) *Canvas {
	return &Canvas{PixelSurface: NewPixelSurface(w, h), img: ebiten.NewImage(w, h)}
}

// Blit uploads the surface pixels and draws them at (x, y) scaled by zoom.
func (c *Canvas) Blit(dst *ebiten.Image, x, y, zoom float64) {
	c.img.WritePixels(c.Pix())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(zoom, zoom)
	op.GeoM.Translate(x, y)
	dst.DrawImage(c.img, op)
}
