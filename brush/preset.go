package brush

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/paint"
)

// Preset is a named brush configuration.
type Preset struct {
	Name     string          `toml:"-"`
	Mode     paint.BlendMode `toml:"mode"`
	Settings Settings        `toml:"settings"`
	Shape    Shape           `toml:"shape"`
}

// DefaultPreset returns the preset every decoded preset starts from, so a
// preset file only lists the values it changes.
func DefaultPreset(name string) Preset {
	return Preset{
		Name:     name,
		Mode:     paint.BlendNormal,
		Settings: DefaultSettings(),
		Shape:    DefaultShape(),
	}
}

// Validate checks the preset's settings and shape.
func (p Preset) Validate() error {
	if err := p.Settings.Validate(); err != nil {
		return err
	}
	if p.Shape.Type == Custom {
		return fmt.Errorf("%w: custom shapes cannot be loaded from presets", ErrInvalidSettings)
	}
	return p.Shape.Validate()
}

// Apply installs the preset's settings and shape on the engine.
func (p Preset) Apply(e *Engine) error {
	if err := e.UpdateSettings(p.Settings); err != nil {
		return err
	}
	return e.UpdateShape(p.Shape)
}

// LoadPresets reads brush presets from a TOML document of the form
//
//	[preset.soft]
//	mode = "multiply"
//
//	[preset.soft.settings]
//	size = 40
//	hardness = 0
//
//	[preset.soft.shape]
//	type = "round"
//	angle = 30
//	roundness = 60
//
// Keys left out keep their DefaultPreset values. Unknown keys are an
// error. Presets are returned sorted by name.
func LoadPresets(r io.Reader) ([]Preset, error) {
	var doc struct {
		Preset map[string]toml.Primitive `toml:"preset"`
	}
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, fmt.Errorf("brush: decode presets: %w", err)
	}

	presets := make([]Preset, 0, len(doc.Preset))
	for name, prim := range doc.Preset {
		p := DefaultPreset(name)
		if err := md.PrimitiveDecode(prim, &p); err != nil {
			return nil, fmt.Errorf("brush: preset %q: %w", name, err)
		}
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("brush: preset %q: %w", name, err)
		}
		presets = append(presets, p)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("brush: unknown preset keys: %s", strings.Join(keys, ", "))
	}

	slices.SortFunc(presets, func(a, b Preset) int {
		return strings.Compare(a.Name, b.Name)
	})
	return presets, nil
}

// DecodePresets is LoadPresets for an in-memory document.
func DecodePresets(doc string) ([]Preset, error) {
	return LoadPresets(strings.NewReader(doc))
}
