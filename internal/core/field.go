package core

import (
	"fmt"
	"strings"
)

// FieldMode selects which engine buffer is rendered and how its bytes are
// interpreted.
type FieldMode uint8

const (
	// ColorField renders packed 8-bit R, G, B samples.
	ColorField FieldMode = iota
	// ScalarField renders float32 magnitudes as grayscale.
	ScalarField
)

// BytesPerCell reports the width of one cell sample in the mode's buffer.
func (m FieldMode) BytesPerCell() int {
	if m == ScalarField {
		return 4
	}
	return 3
}

func (m FieldMode) String() string {
	switch m {
	case ColorField:
		return "color"
	case ScalarField:
		return "scalar"
	default:
		return fmt.Sprintf("FieldMode(%d)", uint8(m))
	}
}

// ParseFieldMode accepts "color" or "scalar" (case-insensitive).
func ParseFieldMode(s string) (FieldMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "color", "colour", "rgb":
		return ColorField, nil
	case "scalar", "gray", "grey":
		return ScalarField, nil
	}
	return ColorField, fmt.Errorf("unknown field mode %q", s)
}

// MarshalYAML encodes the mode by name.
func (m FieldMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

// UnmarshalYAML decodes a mode name.
func (m *FieldMode) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := ParseFieldMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
