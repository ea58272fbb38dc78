package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// snapSpeed is the horizontal speed below which a body is considered at rest.
const snapSpeed = 1.0

// Params tunes a single Integrate call.
type Params struct {
	Gravity float64
	// Damping multiplies horizontal velocity once per step.
	Damping float64
	// Level is handed to obstacles struck from below.
	Level int
	// OnHitX replaces the default horizontal collision response, which zeroes
	// the horizontal velocity. The body never moves horizontally on a step
	// where it collides, whatever OnHitX does.
	OnHitX func(b *Body)
	// CheckFall enables the fall check against FallLimit.
	CheckFall bool
	FallLimit float64
}

// Events reports what happened to a body during one Integrate call.
type Events struct {
	HitX       bool
	Landed     bool
	HitCeiling bool
	// Settled is set when horizontal velocity snapped to zero while the body
	// was grounded.
	Settled bool
	// Fell is set when the body ended the step below Params.FallLimit.
	Fell bool
	// Bumped is the obstacle struck from below, if any.
	Bumped Obstacle
}

// Integrate advances b by dt seconds against q.
//
// Each axis is swept independently, X first. Only the first overlapping tile
// (or, failing that, the first overlapping obstacle) is resolved per axis per
// step. Simultaneous contacts beyond the first are left for later steps.
func Integrate(b *Body, q Query, dt float64, p Params) Events {
	var ev Events
	if b == nil || dt == 0 {
		return ev
	}

	b.Velocity.Y += p.Gravity * dt

	if math.Abs(b.Velocity.X) < snapSpeed {
		b.Velocity.X = 0
		ev.Settled = b.Grounded
	}

	step := b.Velocity.Mult(dt)

	if sweepX(b, q, step.X) {
		ev.HitX = true
		if p.OnHitX != nil {
			p.OnHitX(b)
		} else {
			b.Velocity.X = 0
		}
		step.X = 0
	}

	sweepY(b, q, step.Y, p.Level, &ev)
	if ev.Landed || ev.HitCeiling {
		step.Y = 0
	}

	b.Position = b.Position.Add(step)
	b.Velocity.X *= p.Damping

	if p.CheckFall && b.Position.Y < p.FallLimit {
		ev.Fell = true
	}
	return ev
}

// sweepX reports whether moving b by dx collides with a tile or a live
// obstacle. The probe is the one-cell column at the leading edge.
func sweepX(b *Body, q Query, dx float64) bool {
	if q == nil {
		return false
	}
	var col int
	if dx > 0 {
		col = cell(b.Position.X + b.Size.X + dx)
	} else {
		col = cell(b.Position.X + dx)
	}
	probe := b.Bounds().Offset(cp.Vector{X: dx})

	for _, tile := range q.Tiles(col, cell(b.Position.Y), col, cell(b.Position.Y+b.Size.Y)) {
		if Overlaps(probe, tile) {
			return true
		}
	}
	for _, o := range q.Obstacles() {
		if !o.Destroyed() && Overlaps(probe, o.Bounds()) {
			return true
		}
	}
	return false
}

// sweepY resolves vertical movement by dy against the one-cell row at the
// leading edge and records the outcome in ev.
func sweepY(b *Body, q Query, dy float64, level int, ev *Events) {
	if dy < 0 {
		b.Grounded = false
	}
	if q == nil {
		return
	}
	var row int
	if dy > 0 {
		row = cell(b.Position.Y + b.Size.Y + dy)
	} else {
		row = cell(b.Position.Y + dy)
	}
	probe := b.Bounds().Offset(cp.Vector{Y: dy})

	for _, tile := range q.Tiles(cell(b.Position.X), row, cell(b.Position.X+b.Size.X), row) {
		if !Overlaps(probe, tile) {
			continue
		}
		if dy > 0 {
			b.Position.Y = tile.B - b.Size.Y
			ev.HitCeiling = true
		} else {
			b.Position.Y = tile.T
			b.Grounded = true
			ev.Landed = true
		}
		b.Velocity.Y = 0
		return
	}

	for _, o := range q.Obstacles() {
		if o.Destroyed() || !Overlaps(probe, o.Bounds()) {
			continue
		}
		if dy > 0 {
			o.Hit(level)
			b.Position.Y = o.RestY() - b.Size.Y
			ev.HitCeiling = true
			ev.Bumped = o
		} else {
			b.Position.Y = o.Bounds().T
			b.Grounded = true
			ev.Landed = true
		}
		b.Velocity.Y = 0
		return
	}
}

func cell(v float64) int {
	return int(math.Floor(v))
}
