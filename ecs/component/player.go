package component

import "github.com/jakecoffman/cp"

// Player holds the player's tuning and rule state. Level doubles as health:
// 1 is small, 2 is big.
type Player struct {
	Level        int
	MaxVelocity  float64
	JumpVelocity float64
	JumpBoost    float64
	// WalkSpeed is used by the scripted walk after the flag.
	WalkSpeed float64
	// InvulnerableTime is how long damage immunity lasts after a hit.
	InvulnerableTime float64
	BlinkInterval    float64

	ControlsEnabled bool
	// Moving gates horizontal movement independently of ControlsEnabled.
	Moving bool

	SmallSize cp.Vector
	BigSize   cp.Vector
}

// SizeForLevel returns the body size matching the current level.
func (p *Player) SizeForLevel() cp.Vector {
	if p.Level >= 2 {
		return p.BigSize
	}
	return p.SmallSize
}

var PlayerComponent = NewComponent[Player]()
