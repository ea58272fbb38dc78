package level

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

//go:embed *.yaml
var LevelsFS embed.FS

// Load reads and parses a level by name ("1-1" or "1-1.yaml"). A file
// under level/ on disk wins over the embedded copy.
func Load(name string) (*Level, error) {
	file := fileName(name)
	data, err := os.ReadFile(filepath.Join("level", file))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, file)
	}
	if err != nil {
		return nil, fmt.Errorf("level: read %s: %w", file, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("level: %s: %w", file, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(file, ".yaml")
	}
	return lvl, nil
}

// Names lists the embedded levels in order.
func Names() []string {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".yaml") {
			names = append(names, strings.TrimSuffix(e.Name(), ".yaml"))
		}
	}
	slices.Sort(names)
	return names
}

func fileName(name string) string {
	name = filepath.Base(filepath.ToSlash(name))
	if strings.HasSuffix(name, ".yaml") {
		return name
	}
	return name + ".yaml"
}
