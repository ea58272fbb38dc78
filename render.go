package main

import (
	"fmt"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/session"
	"golang.org/x/image/colornames"
)

var (
	skyColor     = colornames.Cornflowerblue
	groundColor  = colornames.Saddlebrown
	groundEdge   = colornames.Sienna
	clothColor   = colornames.White
	outlineColor = color.NRGBA{A: 90}
	eyeColor     = colornames.Black
)

// renderView converts y-up world boxes to screen pixels. The level's bottom
// row sits on the bottom edge of the screen.
type renderView struct {
	camX float64
}

func (v renderView) rect(bb cp.BB) (x, y, w, h float32) {
	x = float32((bb.L - v.camX) * common.TileSize)
	y = float32(common.BaseHeight - bb.T*common.TileSize)
	w = float32((bb.R - bb.L) * common.TileSize)
	h = float32((bb.T - bb.B) * common.TileSize)
	return x, y, w, h
}

func (v renderView) fill(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y, w, h := v.rect(bb)
	vector.FillRect(screen, x, y, w, h, clr, false)
}

func (v renderView) outline(screen *ebiten.Image, bb cp.BB, clr color.Color) {
	x, y, w, h := v.rect(bb)
	vector.StrokeRect(screen, x, y, w, h, 1.0, clr, false)
}

type drawItem struct {
	entity ecs.Entity
	sprite *component.Sprite
	body   *physics.Body
}

func drawSession(screen *ebiten.Image, s *session.Session) {
	screen.Fill(skyColor)

	view := renderView{}
	if cam, ok := ecs.First(s.World, component.CameraComponent.Kind()); ok {
		if c, ok := ecs.Get(s.World, cam, component.CameraComponent.Kind()); ok {
			view.camX = c.X
		}
	}

	minX := int(math.Floor(view.camX)) - 1
	maxX := minX + common.BaseWidth/common.TileSize + 2
	for _, bb := range s.Level.Tiles(minX, 0, maxX, s.Level.Height-1) {
		view.fill(screen, bb, groundColor)
		view.outline(screen, bb, groundEdge)
	}

	var items []drawItem
	ecs.ForEach2(s.World, component.SpriteComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, sp *component.Sprite, body *physics.Body) {
		items = append(items, drawItem{entity: e, sprite: sp, body: body})
	})
	slices.SortStableFunc(items, func(a, b drawItem) int { return a.sprite.Layer - b.sprite.Layer })

	for _, it := range items {
		if inv, ok := ecs.Get(s.World, it.entity, component.InvulnerableComponent.Kind()); ok && inv.Hidden {
			continue
		}
		bb := it.body.Bounds()
		if bb.R < view.camX-1 || bb.L > view.camX+common.BaseWidth/common.TileSize+1 {
			continue
		}

		if flag, ok := ecs.Get(s.World, it.entity, component.FlagComponent.Kind()); ok {
			drawFlag(screen, view, bb, it.sprite, flag)
			continue
		}

		view.fill(screen, bb, it.sprite.Color)
		view.outline(screen, bb, outlineColor)
		if ecs.Has(s.World, it.entity, component.ActorComponent.Kind()) {
			drawEye(screen, view, bb, it.body.FacesRight)
		}
	}
}

func drawFlag(screen *ebiten.Image, view renderView, pole cp.BB, sprite *component.Sprite, flag *component.Flag) {
	view.fill(screen, pole, sprite.Color)

	const clothWidth, clothHeight = 1.0, 0.75
	travel := math.Max(pole.T-pole.B-1-clothHeight, 0)
	top := pole.T - 0.25 - flag.Lowered*travel
	view.fill(screen, cp.BB{L: pole.L - clothWidth, B: top - clothHeight, R: pole.L, T: top}, clothColor)
}

func drawEye(screen *ebiten.Image, view renderView, bb cp.BB, facesRight bool) {
	const size = 0.15
	x := bb.L + (bb.R-bb.L)*0.25
	if facesRight {
		x = bb.R - (bb.R-bb.L)*0.25 - size
	}
	y := bb.T - 0.3
	view.fill(screen, cp.BB{L: x, B: y, R: x + size, T: y + size}, eyeColor)
}

func drawHUD(screen *ebiten.Image, st session.Status, debug bool) {
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("World %s    Time %.1f", st.Level, st.Elapsed), 10, 10)
	if !debug {
		return
	}
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("State: %s  Level: %d  Outcome: %s", st.State, st.PlayerLevel, st.Outcome), 10, 26)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("TPS: %.1f  FPS: %.1f", ebiten.ActualTPS(), ebiten.ActualFPS()), 10, 42)
}
