package system

import (
	"slices"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// stateTransitions lists the states each state may move to. Scripted states
// are left only through Timeline steps, which go through the same table.
var stateTransitions = map[component.State][]component.State{
	component.StateStanding: {
		component.StateWalking, component.StateJumping, component.StateDying,
		component.StateFlagSlide, component.StateNoControl, component.StatePose,
	},
	component.StateWalking: {
		component.StateStanding, component.StateJumping, component.StateDying,
		component.StateFlagSlide, component.StateNoControl, component.StatePose,
	},
	component.StateJumping: {
		component.StateStanding, component.StateWalking, component.StateDying,
		component.StateFlagSlide, component.StateNoControl, component.StatePose,
	},
	component.StateDying:     {component.StateDead},
	component.StateDead:      nil,
	component.StateFlagSlide: {component.StateWalking, component.StatePose, component.StateNoControl, component.StateDying},
	component.StateNoControl: {component.StateStanding, component.StateWalking, component.StatePose, component.StateDying},
	component.StatePose:      {component.StateStanding, component.StateNoControl, component.StateDying},
}

// Script timings for the player's death and end-of-level sequences.
const (
	deathRiseHeight   = 1.0
	deathRiseTime     = 0.2
	deathPauseTime    = 0.6
	deathDropHeight   = 10.0
	deathDropTime     = 0.6
	deathLingerTime   = 1.6
	fallDeathDelay    = 3.0
	flagDelay         = 0.2
	flagSlideTime     = 0.5
	defaultTrampleTTL = 0.5
)

// CanTransition reports whether the state machine allows from -> to.
func CanTransition(from, to component.State) bool {
	return slices.Contains(stateTransitions[from], to)
}

// ChangeState moves e into to. Re-entering the current state and
// disallowed transitions are ignored and report false. A real transition
// restarts the state clock and emits EventStateChanged once; entering Dead
// queues the entity for removal.
func ChangeState(w *ecs.World, e ecs.Entity, to component.State) bool {
	st, ok := ecs.Get(w, e, component.ActorStateComponent.Kind())
	if !ok {
		return false
	}
	if st.State == to || !CanTransition(st.State, to) {
		return false
	}

	st.State = to
	st.Time = 0
	ecs.Emit(w, ecs.EventStateChanged, e, to)

	if to == component.StateDead {
		ecs.QueueRemoval(w, e)
		if ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
			ecs.Emit(w, ecs.EventPlayerDead, e, nil)
		}
	}
	return true
}

func playSound(w *ecs.World, e ecs.Entity, s component.Sound) {
	ecs.Emit(w, ecs.EventSound, e, s)
}

// setTimeline replaces whatever sequence e was running.
func setTimeline(w *ecs.World, e ecs.Entity, t *component.Timeline) {
	_ = ecs.Add(w, e, component.TimelineComponent.Kind(), t)
}

// KillPlayer starts the death sequence after lethal damage: a short hop, a
// pause, a drop off screen and a final delay before Dead.
func KillPlayer(w *ecs.World, e ecs.Entity) bool {
	if !ChangeState(w, e, component.StateDying) {
		return false
	}
	if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		body.Velocity.X, body.Velocity.Y = 0, 0
	}
	ecs.Remove(w, e, component.InvulnerableComponent.Kind())
	playSound(w, e, component.SoundDeath)
	setTimeline(w, e, component.NewTimeline().
		MoveBy(0, deathRiseHeight, deathRiseTime).
		Wait(deathPauseTime).
		MoveBy(0, -deathDropHeight, deathDropTime).
		Wait(deathLingerTime).
		SetState(component.StateDead))
	return true
}

// FallDeath handles the player dropping below the level. The body stays
// where it is and Dead follows after a fixed delay.
func FallDeath(w *ecs.World, e ecs.Entity) bool {
	if !ChangeState(w, e, component.StateDying) {
		return false
	}
	if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		body.Velocity.X, body.Velocity.Y = 0, 0
	}
	playSound(w, e, component.SoundDeath)
	setTimeline(w, e, component.NewTimeline().
		Wait(fallDeathDelay).
		SetState(component.StateDead))
	return true
}

// TrampleEnemy flattens an enemy that was stomped on and removes it once
// its trample time runs out.
func TrampleEnemy(w *ecs.World, e ecs.Entity) bool {
	if !ChangeState(w, e, component.StateDying) {
		return false
	}
	if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		body.Velocity.X, body.Velocity.Y = 0, 0
	}
	linger := defaultTrampleTTL
	if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok && enemy.TrampleTime > 0 {
		linger = enemy.TrampleTime
	}
	setTimeline(w, e, component.NewTimeline().
		Wait(linger).
		SetState(component.StateDead))
	return true
}
