//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var (
	panelColor   = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	buttonColor  = color.RGBA{R: 54, G: 56, B: 64, A: 255}
	activeColor  = color.RGBA{R: 70, G: 110, B: 160, A: 255}
	borderColor  = color.RGBA{R: 90, G: 92, B: 100, A: 255}
	labelColor   = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	dimTextColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

// Draw paints the toolbar onto screen.
func (t *Toolbar) Draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, float32(t.top), float32(t.width), float32(t.Height()), panelColor, false)

	for _, b := range t.Buttons() {
		bg := buttonColor
		if t.Active(b.ID) {
			bg = activeColor
		}
		drawButton(screen, b.Rect, b.Label, bg)
	}

	face := basicfont.Face7x13
	bounds := text.BoundString(face, t.fps)
	fpsX := t.width - padding - bounds.Dx()
	fpsY := t.top + padding + (buttonHeight+bounds.Dy())/2
	text.Draw(screen, t.fps, face, fpsX, fpsY, labelColor)

	y := t.top + 2*padding + buttonHeight + lineHeight - 4
	for _, line := range t.params {
		text.Draw(screen, line, face, padding, y, dimTextColor)
		y += lineHeight
	}
}

func drawButton(screen *ebiten.Image, rect image.Rectangle, label string, bg color.RGBA) {
	x, y := float32(rect.Min.X), float32(rect.Min.Y)
	w, h := float32(rect.Dx()), float32(rect.Dy())
	vector.DrawFilledRect(screen, x, y, w, h, bg, false)
	vector.StrokeRect(screen, x, y, w, h, 1, borderColor, false)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	tx := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	ty := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(screen, label, face, tx, ty, labelColor)
}
