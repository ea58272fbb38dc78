package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CommandSystem applies the player's Input once per tick, before physics.
type CommandSystem struct{}

func NewCommandSystem() *CommandSystem { return &CommandSystem{} }

func (s *CommandSystem) Update(w *ecs.World, dt float64) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	input, ok := ecs.Get(w, player, component.InputComponent.Kind())
	if !ok {
		return
	}

	if input.Jump {
		Jump(w, player)
	}
	if input.MoveLeft {
		Move(w, player, component.DirectionLeft)
	}
	if input.MoveRight {
		Move(w, player, component.DirectionRight)
	}
}

// canCommand reports whether move and jump currently reach e.
func canCommand(w *ecs.World, e ecs.Entity) (*component.Player, *component.ActorState, bool) {
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || !p.ControlsEnabled {
		return nil, nil, false
	}
	st, ok := ecs.Get(w, e, component.ActorStateComponent.Kind())
	if !ok || !st.State.Controllable() {
		return nil, nil, false
	}
	return p, st, true
}

// Move sets horizontal velocity to full speed in dir. It is silently
// ignored while dying, during scripted sequences or with controls disabled.
func Move(w *ecs.World, e ecs.Entity, dir component.Direction) bool {
	p, st, ok := canCommand(w, e)
	if !ok || !p.Moving {
		return false
	}
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return false
	}

	body.Velocity.X = dir.Sign() * p.MaxVelocity
	body.FacesRight = dir == component.DirectionRight
	st.Direction = dir
	if body.Grounded {
		ChangeState(w, e, component.StateWalking)
	}
	return true
}

// Jump applies the jump impulse when e is grounded and controllable.
func Jump(w *ecs.World, e ecs.Entity) bool {
	p, _, ok := canCommand(w, e)
	if !ok {
		return false
	}
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok || !body.Grounded {
		return false
	}

	body.Velocity.Y += p.JumpVelocity
	body.Grounded = false
	ChangeState(w, e, component.StateJumping)
	playSound(w, e, component.SoundJump)
	return true
}
