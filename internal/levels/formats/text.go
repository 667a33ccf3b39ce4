package formats

import "strings"

func init() {
	Register(".txt", ParseText)
}

// ParseText parses a plain level file holding a single level. The file
// name is used as both the pack and the level id.
func ParseText(name string, data []byte) (Pack, error) {
	grid := strings.ReplaceAll(string(data), "\r\n", "\n")
	return Pack{
		ID:   name,
		Name: name,
		Levels: []Level{{
			ID:   name,
			Name: name,
			Grid: grid,
		}},
	}, nil
}
