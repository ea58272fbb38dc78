package component

import "github.com/milk9111/platformer/physics"

// BodyComponent stores the actor's physics.Body in world units.
var BodyComponent = NewComponent[physics.Body]()
