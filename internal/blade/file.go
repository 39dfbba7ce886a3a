package blade

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML (or JSON) parameter document. Fields that are not set
// keep the value of the base preset, chosen by "preset", else by
// "tip_style", else leaf. A "tip_style" of the other family switches the
// preset first, resetting its family fields. With "unit: mm" every length in the document is
// read as millimeters.
//
//	preset: leaf
//	unit: mm
//	exposed_length: 280
//	pin_hole: {present: false}
func Load(r io.Reader) (Parameters, error) {
	var node yaml.Node
	if err := yaml.NewDecoder(r).Decode(&node); err != nil {
		if err == io.EOF {
			return LeafPreset(), nil
		}
		return Parameters{}, fmt.Errorf("decode parameters: %w", err)
	}

	var head struct {
		Preset   TipStyle `yaml:"preset"`
		Unit     string   `yaml:"unit"`
		TipStyle TipStyle `yaml:"tip_style"`
	}
	if err := node.Decode(&head); err != nil {
		return Parameters{}, fmt.Errorf("decode parameters: %w", err)
	}

	base, err := Base(head.Preset, head.TipStyle)
	if err != nil {
		return Parameters{}, err
	}
	unit, err := ParseUnit(head.Unit)
	if err != nil {
		return Parameters{}, err
	}
	if unit == Millimeters {
		base = ToMillimeters(base)
	}

	doc := struct {
		Preset     TipStyle `yaml:"preset"`
		Unit       string   `yaml:"unit"`
		Parameters `yaml:",inline"`
	}{Parameters: base}
	if err := node.Decode(&doc); err != nil {
		return Parameters{}, fmt.Errorf("decode parameters: %w", err)
	}

	p := doc.Parameters
	if unit == Millimeters {
		p = FromMillimeters(p)
	}
	return p, nil
}

func LoadFile(path string) (Parameters, error) {
	f, err := os.Open(path)
	if err != nil {
		return Parameters{}, err
	}
	defer f.Close()
	p, err := Load(f)
	if err != nil {
		return Parameters{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
