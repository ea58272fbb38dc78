package component

import "github.com/jakecoffman/cp"

type StepAction uint8

const (
	// StepWait does nothing for Duration seconds.
	StepWait StepAction = iota
	// StepMoveBy moves the body by Offset over Duration seconds.
	StepMoveBy
	// StepMoveTo moves the body to Target over Duration seconds.
	StepMoveTo
	// StepWalkTo walks horizontally to Target.X at Speed units per second.
	StepWalkTo
	StepSetState
	// StepReveal makes a pickup visible and sends it walking.
	StepReveal
	StepRemove
	// StepEmit pushes Event onto the world queue.
	StepEmit
)

// TimelineStep is one entry of a scripted sequence. Only the fields the
// Action needs are read.
type TimelineStep struct {
	Action   StepAction
	Duration float64
	Offset   cp.Vector
	Target   cp.Vector
	Speed    float64
	State    State
	Event    string
}

// Timeline is an ordered queue of timed steps advanced by the tick delta.
// Steps run strictly in order; time left over when a step finishes carries
// into the next one within the same tick.
type Timeline struct {
	Steps   []TimelineStep
	Elapsed float64
	// From is the body position captured when the head step started.
	From    cp.Vector
	Started bool
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

func (t *Timeline) push(step TimelineStep) *Timeline {
	t.Steps = append(t.Steps, step)
	return t
}

func (t *Timeline) Wait(d float64) *Timeline {
	return t.push(TimelineStep{Action: StepWait, Duration: d})
}

func (t *Timeline) MoveBy(dx, dy, d float64) *Timeline {
	return t.push(TimelineStep{Action: StepMoveBy, Offset: cp.Vector{X: dx, Y: dy}, Duration: d})
}

func (t *Timeline) MoveTo(x, y, d float64) *Timeline {
	return t.push(TimelineStep{Action: StepMoveTo, Target: cp.Vector{X: x, Y: y}, Duration: d})
}

func (t *Timeline) WalkTo(x, speed float64) *Timeline {
	return t.push(TimelineStep{Action: StepWalkTo, Target: cp.Vector{X: x}, Speed: speed})
}

func (t *Timeline) SetState(s State) *Timeline {
	return t.push(TimelineStep{Action: StepSetState, State: s})
}

func (t *Timeline) Reveal() *Timeline {
	return t.push(TimelineStep{Action: StepReveal})
}

func (t *Timeline) Remove() *Timeline {
	return t.push(TimelineStep{Action: StepRemove})
}

func (t *Timeline) Emit(event string) *Timeline {
	return t.push(TimelineStep{Action: StepEmit, Event: event})
}

// Done reports whether every step has run.
func (t *Timeline) Done() bool {
	return t == nil || len(t.Steps) == 0
}

var TimelineComponent = NewComponent[Timeline]()
