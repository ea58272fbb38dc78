package component

// Invulnerable marks an entity as temporarily immune to damage. The system
// counts Remaining down by the tick delta and removes the component at zero.
// Hidden flips every Blink seconds for the renderer.
type Invulnerable struct {
	Remaining float64
	Blink     float64
	Elapsed   float64
	Hidden    bool
}

var InvulnerableComponent = NewComponent[Invulnerable]()
