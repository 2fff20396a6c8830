package paint

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

var blendModeNames = [blendModeCount]string{
	BlendNormal:     "normal",
	BlendMultiply:   "multiply",
	BlendScreen:     "screen",
	BlendOverlay:    "overlay",
	BlendDarken:     "darken",
	BlendLighten:    "lighten",
	BlendColorDodge: "color-dodge",
	BlendColorBurn:  "color-burn",
	BlendHardLight:  "hard-light",
	BlendSoftLight:  "soft-light",
	BlendDifference: "difference",
	BlendExclusion:  "exclusion",
}

// BlendModes returns every supported blend mode in declaration order.
func BlendModes() []BlendMode {
	modes := make([]BlendMode, blendModeCount)
	for i := range modes {
		modes[i] = BlendMode(i)
	}
	return modes
}

// String returns the canonical kebab-case name of the mode.
func (m BlendMode) String() string {
	if m < 0 || m >= blendModeCount {
		return fmt.Sprintf("BlendMode(%d)", int(m))
	}
	return blendModeNames[m]
}

// Valid reports whether m is one of the supported modes.
func (m BlendMode) Valid() bool {
	return m >= 0 && m < blendModeCount
}

var fold = cases.Fold()

// ParseBlendMode parses a mode name. Matching ignores case, and spaces or
// underscores may stand in for hyphens ("Color Dodge", "color_dodge").
// The camel-case form "colorDodge" is accepted as well.
func ParseBlendMode(s string) (BlendMode, error) {
	key := normalizeModeName(s)
	for i, name := range blendModeNames {
		if key == strings.ReplaceAll(name, "-", "") {
			return BlendMode(i), nil
		}
	}
	return BlendNormal, fmt.Errorf("paint: unknown blend mode %q", s)
}

func normalizeModeName(s string) string {
	s = fold.String(strings.TrimSpace(s))
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
}

// MarshalText implements encoding.TextMarshaler.
func (m BlendMode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("paint: invalid blend mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *BlendMode) UnmarshalText(text []byte) error {
	mode, err := ParseBlendMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
