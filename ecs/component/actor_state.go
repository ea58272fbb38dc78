package component

import "fmt"

type State uint8

const (
	StateStanding State = iota
	StateWalking
	StateJumping
	StateDying
	StateDead
	StateFlagSlide
	StateNoControl
	StatePose
)

var stateNames = [...]string{
	StateStanding:  "standing",
	StateWalking:   "walking",
	StateJumping:   "jumping",
	StateDying:     "dying",
	StateDead:      "dead",
	StateFlagSlide: "flag_slide",
	StateNoControl: "no_control",
	StatePose:      "pose",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

func ParseState(name string) (State, error) {
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return 0, fmt.Errorf("component: unknown state %q", name)
}

// Controllable reports whether move and jump commands apply in s.
func (s State) Controllable() bool {
	return s == StateStanding || s == StateWalking || s == StateJumping
}

// Simulated reports whether physics integrates an actor in s. Scripted
// states are driven by a Timeline instead.
func (s State) Simulated() bool {
	return s.Controllable()
}

type Direction int8

const (
	DirectionLeft  Direction = -1
	DirectionRight Direction = 1
)

func (d Direction) String() string {
	if d == DirectionLeft {
		return "left"
	}
	return "right"
}

// Sign returns -1 for left and 1 for right.
func (d Direction) Sign() float64 {
	if d == DirectionLeft {
		return -1
	}
	return 1
}

// ActorState is the state machine slot every actor carries. Time is the
// seconds spent in State and restarts at zero on every transition.
type ActorState struct {
	State     State
	Time      float64
	Direction Direction
}

var ActorStateComponent = NewComponent[ActorState]()
