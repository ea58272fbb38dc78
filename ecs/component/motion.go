package component

// Motion carries the per-actor integration parameters handed to the
// collision resolver.
type Motion struct {
	Gravity float64
	Damping float64
	// MaxFall caps downward speed so a body never moves more than a cell per
	// tick. Zero disables the cap.
	MaxFall   float64
	CheckFall bool
	FallLimit float64
}

var MotionComponent = NewComponent[Motion]()
