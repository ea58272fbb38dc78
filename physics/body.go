package physics

import (
	"fmt"

	"github.com/jakecoffman/cp"
)

// Body is the unit of integration: an axis-aligned box in y-up world units
// anchored at its lower-left corner. Velocity is always a per-second rate;
// Integrate scales it by the step length internally and never stores the
// scaled value.
type Body struct {
	Position   cp.Vector
	Size       cp.Vector
	Velocity   cp.Vector
	Grounded   bool
	FacesRight bool
}

// NewBody returns a body resting at pos. It panics if size is not strictly
// positive on both axes.
func NewBody(pos, size cp.Vector) Body {
	mustValidSize(size)
	return Body{Position: pos, Size: size, FacesRight: true}
}

// Bounds returns the body's current box.
func (b *Body) Bounds() cp.BB {
	return cp.BB{
		L: b.Position.X,
		B: b.Position.Y,
		R: b.Position.X + b.Size.X,
		T: b.Position.Y + b.Size.Y,
	}
}

// Resize changes the body's size keeping its feet and horizontal center in
// place.
func (b *Body) Resize(size cp.Vector) {
	mustValidSize(size)
	b.Position.X += (b.Size.X - size.X) / 2
	b.Size = size
}

// Overlaps reports whether a and b share a region of positive area. Boxes
// that only touch along an edge or a corner do not overlap.
func Overlaps(a, b cp.BB) bool {
	return a.L < b.R && b.L < a.R && a.B < b.T && b.B < a.T
}

func mustValidSize(size cp.Vector) {
	if !(size.X > 0) || !(size.Y > 0) {
		panic(fmt.Sprintf("physics: body size must be positive, got %v", size))
	}
}
