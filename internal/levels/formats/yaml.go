package formats

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// YAMLPack represents the YAML structure for a level pack file.
type YAMLPack struct {
	ID     string      `yaml:"id"`
	Name   string      `yaml:"name"`
	Levels []YAMLLevel `yaml:"levels"`
}

// YAMLLevel represents a single level in YAML format.
type YAMLLevel struct {
	ID   string `yaml:"id"`
	Name string `yaml:"name"`
	Par  int    `yaml:"par,omitempty"`
	Grid string `yaml:"grid"`
}

func init() {
	Register(".yaml", ParseYAML)
	Register(".yml", ParseYAML)
}

// ParseYAML parses a YAML level pack. Levels without an id are numbered
// from 1 in file order.
func ParseYAML(name string, data []byte) (Pack, error) {
	var yp YAMLPack
	if err := yaml.Unmarshal(data, &yp); err != nil {
		return Pack{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	pack := Pack{
		ID:     yp.ID,
		Name:   yp.Name,
		Levels: make([]Level, 0, len(yp.Levels)),
	}
	if pack.ID == "" {
		pack.ID = name
	}
	if pack.Name == "" {
		pack.Name = pack.ID
	}

	for i, yl := range yp.Levels {
		id := yl.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		pack.Levels = append(pack.Levels, Level{
			ID:   id,
			Name: yl.Name,
			Par:  yl.Par,
			Grid: yl.Grid,
		})
	}

	return pack, nil
}
