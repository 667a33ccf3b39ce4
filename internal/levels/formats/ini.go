package formats

import (
	"fmt"
	"strings"

	"gopkg.in/ini.v1"
)

// INI pack layout:
//
//	[Pack]
//	name = Originals
//
//	[Levels]
//	1 =
//	    0000
//	    0@+0
//	    0000
//
// Level values span indented continuation lines. The optional [Names]
// and [Par] sections are keyed by level id.
const (
	iniPackSection   = "Pack"
	iniLevelsSection = "Levels"
	iniNamesSection  = "Names"
	iniParSection    = "Par"
)

func init() {
	Register(".ini", ParseINI)
}

// ParseINI parses a level pack stored in the numbered [Levels] layout.
// Levels keep their file order.
func ParseINI(name string, data []byte) (Pack, error) {
	f, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, data)
	if err != nil {
		return Pack{}, fmt.Errorf("ini load: %w", err)
	}

	levels, err := f.GetSection(iniLevelsSection)
	if err != nil {
		return Pack{}, fmt.Errorf("ini: missing [%s] section", iniLevelsSection)
	}

	pack := Pack{ID: name, Name: name}
	if sec, err := f.GetSection(iniPackSection); err == nil {
		pack.ID = sec.Key("id").MustString(pack.ID)
		pack.Name = sec.Key("name").MustString(pack.ID)
	}

	names := f.Section(iniNamesSection)
	par := f.Section(iniParSection)

	for _, key := range levels.Keys() {
		id := key.Name()
		pack.Levels = append(pack.Levels, Level{
			ID:   id,
			Name: names.Key(id).String(),
			Par:  par.Key(id).MustInt(0),
			Grid: trimLines(key.Value()),
		})
	}

	return pack, nil
}

// trimLines strips indentation and trailing blanks from every line of a
// multi-line value.
func trimLines(s string) string {
	lines := strings.Split(s, "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	if len(out) == 0 {
		return ""
	}
	return strings.Join(out, "\n") + "\n"
}
