// Package level parses ascii tile levels and serves their solid cells to the
// collision resolver.
package level

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

var (
	ErrMalformed = errors.New("level: malformed")
	ErrNoSpawn   = errors.New("level: missing player spawn")
)

// Marker places a prefab at a cell. At is the cell's bottom-left corner in
// world units.
type Marker struct {
	Prefab string
	At     cp.Vector
}

// Flag describes the level-end pole.
type Flag struct {
	X      float64
	Base   float64
	Height float64
	// EndX is where the player walks after sliding down.
	EndX float64
}

type Level struct {
	Name   string
	Next   string
	Width  int
	Height int
	Spawn  cp.Vector
	// Flag is nil when the level has no pole.
	Flag    *Flag
	Markers []Marker

	solid []bool
}

type levelFile struct {
	Name string   `yaml:"name"`
	Next string   `yaml:"next"`
	Rows []string `yaml:"rows"`
}

var markerPrefabs = map[rune]string{
	'B': "brick",
	'?': "bonus_block",
	'G': "goomba",
	'M': "mushroom",
}

// Parse decodes a yaml level. Row 0 is the top of the level; world y grows
// upward so a cell in row r sits at y = Height-1-r.
func Parse(data []byte) (*Level, error) {
	var f levelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("level: unmarshal: %w", err)
	}
	return FromRows(f.Name, f.Next, f.Rows)
}

func FromRows(name, next string, rows []string) (*Level, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: %q has no cells", ErrMalformed, name)
	}

	lvl := &Level{
		Name:   name,
		Next:   next,
		Width:  len(rows[0]),
		Height: len(rows),
	}
	lvl.solid = make([]bool, lvl.Width*lvl.Height)

	spawns := 0
	flagCol := -1
	flagBottom, flagTop := 0, 0
	endX := -1

	for r, row := range rows {
		if len(row) != lvl.Width {
			return nil, fmt.Errorf("%w: %q row %d is %d wide, want %d", ErrMalformed, name, r, len(row), lvl.Width)
		}
		y := lvl.Height - 1 - r
		for x, ch := range row {
			at := cp.Vector{X: float64(x), Y: float64(y)}
			switch ch {
			case '.', ' ':
			case '#':
				lvl.solid[y*lvl.Width+x] = true
			case 'P':
				spawns++
				lvl.Spawn = at
			case 'E':
				endX = x
			case 'F':
				switch {
				case flagCol == -1:
					flagCol, flagTop, flagBottom = x, y, y
				case flagCol != x || y != flagBottom-1:
					return nil, fmt.Errorf("%w: %q flag pole must be one unbroken column", ErrMalformed, name)
				default:
					flagBottom = y
				}
			default:
				prefab, ok := markerPrefabs[ch]
				if !ok {
					return nil, fmt.Errorf("%w: %q unknown cell %q at row %d col %d", ErrMalformed, name, ch, r, x)
				}
				lvl.Markers = append(lvl.Markers, Marker{Prefab: prefab, At: at})
			}
		}
	}

	if spawns != 1 {
		return nil, fmt.Errorf("%w: %q has %d spawns", ErrNoSpawn, name, spawns)
	}
	if flagCol >= 0 {
		if endX < 0 {
			endX = lvl.Width - 1
		}
		lvl.Flag = &Flag{
			X:      float64(flagCol),
			Base:   float64(flagBottom),
			Height: float64(flagTop - flagBottom + 1),
			EndX:   float64(endX),
		}
	}
	return lvl, nil
}

// Solid reports whether the cell at (x, y) is a wall. Cells outside the grid
// are empty.
func (l *Level) Solid(x, y int) bool {
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return false
	}
	return l.solid[y*l.Width+x]
}

// Tiles returns the solid cells in the inclusive range, row by row from the
// bottom. The range is clamped to the grid.
func (l *Level) Tiles(minX, minY, maxX, maxY int) []cp.BB {
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, l.Width-1), min(maxY, l.Height-1)

	var out []cp.BB
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if l.solid[y*l.Width+x] {
				out = append(out, cp.NewBBForExtents(cp.Vector{X: float64(x) + 0.5, Y: float64(y) + 0.5}, 0.5, 0.5))
			}
		}
	}
	return out
}

// String renders the solid grid back to rows, top first.
func (l *Level) String() string {
	var sb strings.Builder
	for y := l.Height - 1; y >= 0; y-- {
		for x := 0; x < l.Width; x++ {
			if l.Solid(x, y) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		if y > 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
