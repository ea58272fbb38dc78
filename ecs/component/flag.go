package component

// Flag is the level-end pole. The pole bounds live in the entity's Body.
type Flag struct {
	// EndX is where the player walks to after sliding down.
	EndX     float64
	Captured bool
	// Lowered runs from 0 to 1 as the cloth slides down after capture.
	Lowered float64
	Elapsed float64
}

var FlagComponent = NewComponent[Flag]()
