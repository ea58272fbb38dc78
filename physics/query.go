package physics

import "github.com/jakecoffman/cp"

// Query is the read side of the world that Integrate collides against. It is
// owned by the caller and consulted fresh on every call.
type Query interface {
	// Tiles returns the solid cells inside the inclusive cell range, one unit
	// box per cell, ordered by row then column.
	Tiles(minX, minY, maxX, maxY int) []cp.BB
	// Obstacles returns every static obstacle in a fixed order.
	Obstacles() []Obstacle
}

// Obstacle is a static actor that blocks movement like a tile but reacts to
// being struck from below.
type Obstacle interface {
	Bounds() cp.BB
	Destroyed() bool
	// Hit is called when a body moving upward strikes the obstacle. level is
	// the striking actor's strength.
	Hit(level int)
	// RestY is the obstacle's resting bottom edge. Bodies bumping it are
	// clamped below RestY even while the obstacle is visually displaced.
	RestY() float64
}
