package ui

import (
	"fmt"
	"image"
	"strings"

	"fieldscope/internal/core"
	"fieldscope/internal/input"
)

// Button is one control element of the toolbar.
type Button struct {
	ID    input.ButtonID
	Label string
	Rect  image.Rectangle
}

// Toolbar lays out the control elements and labels drawn beneath the
// canvas. Layout and hit-testing are host-neutral; drawing lives behind the
// ebiten build tag.
type Toolbar struct {
	top     int
	width   int
	buttons []Button
	params  []string

	paused bool
	mode   core.FieldMode
	fps    string
}

// NewToolbar lays out a toolbar whose top edge sits at y=top. Width is the
// minimum width available to it, normally the canvas width.
func NewToolbar(top, width int, snapshot core.ParameterSnapshot) *Toolbar {
	t := &Toolbar{top: top, paused: true, fps: "FPS: 0"}
	ids := []input.ButtonID{
		input.ButtonReset,
		input.ButtonPlayPause,
		input.ButtonStep,
		input.ButtonModeColor,
		input.ButtonModeScalar,
	}
	x := padding
	y := top + padding
	for _, id := range ids {
		t.buttons = append(t.buttons, Button{
			ID:   id,
			Rect: image.Rect(x, y, x+buttonWidth, y+buttonHeight),
		})
		x += buttonWidth + buttonGap
	}
	t.width = max(width, x-buttonGap+padding+fpsWidth)
	t.params = ParamLines(snapshot)
	return t
}

// Height returns the toolbar height in pixels.
func (t *Toolbar) Height() int {
	return 2*padding + buttonHeight + len(t.params)*lineHeight
}

// Width returns the toolbar width in pixels.
func (t *Toolbar) Width() int { return t.width }

// Top returns the y coordinate of the toolbar's top edge.
func (t *Toolbar) Top() int { return t.top }

// HitTest returns the button under (x, y), if any.
func (t *Toolbar) HitTest(x, y int) (input.ButtonID, bool) {
	p := image.Pt(x, y)
	for _, b := range t.buttons {
		if p.In(b.Rect) {
			return b.ID, true
		}
	}
	return "", false
}

// SetPaused updates the play/pause affordance.
func (t *Toolbar) SetPaused(paused bool) { t.paused = paused }

// SetMode highlights the active mode selector.
func (t *Toolbar) SetMode(m core.FieldMode) { t.mode = m }

// SetFPS replaces the frame-rate label.
func (t *Toolbar) SetFPS(label string) { t.fps = label }

// FPS returns the frame-rate label.
func (t *Toolbar) FPS() string { return t.fps }

// Params returns the formatted engine parameter lines.
func (t *Toolbar) Params() []string { return t.params }

// Buttons returns the buttons with their current labels.
func (t *Toolbar) Buttons() []Button {
	out := make([]Button, len(t.buttons))
	for i, b := range t.buttons {
		b.Label = t.label(b.ID)
		out[i] = b
	}
	return out
}

// Active reports whether a button is drawn in its selected state.
func (t *Toolbar) Active(id input.ButtonID) bool {
	switch id {
	case input.ButtonModeColor:
		return t.mode == core.ColorField
	case input.ButtonModeScalar:
		return t.mode == core.ScalarField
	case input.ButtonPlayPause:
		return !t.paused
	}
	return false
}

func (t *Toolbar) label(id input.ButtonID) string {
	switch id {
	case input.ButtonReset:
		return "Reset"
	case input.ButtonPlayPause:
		if t.paused {
			return "Play"
		}
		return "Pause"
	case input.ButtonStep:
		return "Step"
	case input.ButtonModeColor:
		return "Color"
	case input.ButtonModeScalar:
		return "Scalar"
	}
	return string(id)
}

// ParamLines renders a parameter snapshot as "group: label=value" lines.
func ParamLines(snapshot core.ParameterSnapshot) []string {
	var lines []string
	for _, group := range snapshot.Groups {
		if len(group.Params) == 0 {
			continue
		}
		parts := make([]string, 0, len(group.Params))
		for _, p := range group.Params {
			label := p.Label
			if label == "" {
				label = p.Key
			}
			parts = append(parts, fmt.Sprintf("%s=%s", label, p.Value))
		}
		line := strings.Join(parts, "  ")
		if group.Name != "" {
			line = group.Name + ": " + line
		}
		lines = append(lines, line)
	}
	return lines
}

const (
	padding      = 6
	buttonWidth  = 56
	buttonHeight = 22
	buttonGap    = 6
	lineHeight   = 14
	fpsWidth     = 64
)
