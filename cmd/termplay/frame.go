package main

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/session"
)

const hudRows = 1

var (
	groundStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(0x8b, 0x45, 0x13))
	clothStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	hudStyle    = tcell.StyleDefault.Foreground(tcell.ColorLightGray)
)

type cell struct {
	r     rune
	style tcell.Style
}

// frame is one terminal's worth of cells, one cell per world unit. Row 0 is
// the HUD line; the level's bottom row is the frame's last row.
type frame struct {
	width, height int
	camX          int
	cells         []cell
}

func newFrame(width, height int) *frame {
	f := &frame{width: width, height: height, cells: make([]cell, width*height)}
	for i := range f.cells {
		f.cells[i] = cell{r: ' ', style: tcell.StyleDefault}
	}
	return f
}

func (f *frame) at(x, y int) (cell, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return cell{}, false
	}
	return f.cells[y*f.width+x], true
}

func (f *frame) set(x, y int, r rune, style tcell.Style) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return
	}
	f.cells[y*f.width+x] = cell{r: r, style: style}
}

// setWorld writes the cell at world column x, world row y.
func (f *frame) setWorld(x, y int, r rune, style tcell.Style) {
	row := f.height - 1 - y
	if row < hudRows {
		return
	}
	f.set(x-f.camX, row, r, style)
}

func (f *frame) text(x, y int, s string, style tcell.Style) {
	for _, r := range s {
		f.set(x, y, r, style)
		x++
	}
}

// fillWorld covers every cell whose centre lies inside bb.
func (f *frame) fillWorld(bb cp.BB, r rune, style tcell.Style) {
	minX, maxX := int(math.Floor(bb.L+0.5)), int(math.Ceil(bb.R-0.5))-1
	minY, maxY := int(math.Floor(bb.B+0.5)), int(math.Ceil(bb.T-0.5))-1
	// Anything thinner than a cell still gets one.
	maxX = max(maxX, minX)
	maxY = max(maxY, minY)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			f.setWorld(x, y, r, style)
		}
	}
}

func (f *frame) draw(screen tcell.Screen) {
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			c := f.cells[y*f.width+x]
			screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
}

func styleFor(c color.NRGBA) tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B)))
}

// composeFrame renders the session centred on the player, clamped to the
// level edges.
func composeFrame(s *session.Session, width, height int) *frame {
	f := newFrame(width, height)

	if body, ok := ecs.Get(s.World, s.Player, component.BodyComponent.Kind()); ok {
		center := body.Position.X + body.Size.X/2
		f.camX = int(common.Clamp(math.Floor(center)-float64(width/2), 0, math.Max(float64(s.Level.Width-width), 0)))
	}

	for _, bb := range s.Level.Tiles(f.camX, 0, f.camX+width-1, s.Level.Height-1) {
		f.fillWorld(bb, '#', groundStyle)
	}

	type item struct {
		entity ecs.Entity
		sprite *component.Sprite
		body   *physics.Body
	}
	var items []item
	ecs.ForEach2(s.World, component.SpriteComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, sp *component.Sprite, body *physics.Body) {
		items = append(items, item{entity: e, sprite: sp, body: body})
	})
	slices.SortStableFunc(items, func(a, b item) int { return a.sprite.Layer - b.sprite.Layer })

	for _, it := range items {
		if inv, ok := ecs.Get(s.World, it.entity, component.InvulnerableComponent.Kind()); ok && inv.Hidden {
			continue
		}
		style := styleFor(it.sprite.Color)
		bb := it.body.Bounds()
		f.fillWorld(bb, it.sprite.Glyph, style)

		if flag, ok := ecs.Get(s.World, it.entity, component.FlagComponent.Kind()); ok {
			top := int(math.Floor(bb.T)) - 1
			bottom := int(math.Floor(bb.B)) + 1
			y := top - int(math.Round(flag.Lowered*float64(top-bottom)))
			f.setWorld(int(math.Floor(bb.L))-1, y, '<', clothStyle)
		}
	}

	st := s.Status()
	f.text(0, 0, fmt.Sprintf("World %s  Time %.1f  Size %d  %s", st.Level, st.Elapsed, st.PlayerLevel, st.State), hudStyle)
	return f
}
