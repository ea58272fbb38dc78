package component

// Pickup is a collectible that walks like an enemy once revealed.
type Pickup struct {
	Kind  string
	Speed float64
	// Visible is false while the pickup is still emerging from a block.
	Visible bool
	// Collected is set the moment the player takes it, before removal.
	Collected bool
}

var PickupComponent = NewComponent[Pickup]()
