package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// TimelineSystem advances scripted sequences. Each tick's delta is spent on
// the head step; what a finished step leaves over flows into the next one,
// and instant steps run as soon as they reach the head.
type TimelineSystem struct{}

func NewTimelineSystem() *TimelineSystem { return &TimelineSystem{} }

func (s *TimelineSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.TimelineComponent.Kind(), func(e ecs.Entity, t *component.Timeline) {
		s.advance(w, e, t, dt)
		if t.Done() {
			ecs.Remove(w, e, component.TimelineComponent.Kind())
		}
	})
}

func (s *TimelineSystem) advance(w *ecs.World, e ecs.Entity, t *component.Timeline, budget float64) {
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())

	for len(t.Steps) > 0 {
		if !ecs.IsAlive(w, e) || ecs.PendingRemoval(w, e) {
			return
		}
		// A step may have replaced the timeline (for example a state change
		// that starts a new sequence); stop advancing the stale one.
		if cur, ok := ecs.Get(w, e, component.TimelineComponent.Kind()); !ok || cur != t {
			return
		}

		step := &t.Steps[0]
		if !t.Started {
			t.Started = true
			t.Elapsed = 0
			if body != nil {
				t.From = body.Position
			}
		}

		switch step.Action {
		case component.StepWait, component.StepMoveBy, component.StepMoveTo:
			remaining := step.Duration - t.Elapsed
			used := math.Min(budget, math.Max(remaining, 0))
			t.Elapsed += used
			budget -= used
			if body != nil && step.Action != component.StepWait {
				progress := 1.0
				if step.Duration > 0 {
					progress = math.Min(t.Elapsed/step.Duration, 1)
				}
				body.Position = t.From.Lerp(moveTarget(t.From, step), progress)
			}
			if t.Elapsed < step.Duration {
				return
			}
		case component.StepWalkTo:
			if body == nil || step.Speed <= 0 {
				break
			}
			dist := step.Target.X - body.Position.X
			body.FacesRight = dist >= 0
			reach := step.Speed * budget
			if math.Abs(dist) > reach {
				body.Position.X += math.Copysign(reach, dist)
				return
			}
			body.Position.X = step.Target.X
			budget -= math.Abs(dist) / step.Speed
		case component.StepSetState:
			ChangeState(w, e, step.State)
		case component.StepReveal:
			reveal(w, e, body)
		case component.StepRemove:
			ecs.QueueRemoval(w, e)
		case component.StepEmit:
			ecs.Emit(w, ecs.EventType(step.Event), e, nil)
		}

		t.Steps = t.Steps[1:]
		t.Started = false
		t.Elapsed = 0
	}
}

func moveTarget(from cp.Vector, step *component.TimelineStep) cp.Vector {
	if step.Action == component.StepMoveBy {
		return from.Add(step.Offset)
	}
	return step.Target
}

func reveal(w *ecs.World, e ecs.Entity, body *physics.Body) {
	pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind())
	if !ok {
		return
	}
	pickup.Visible = true
	if body != nil {
		body.FacesRight = true
		body.Velocity.X = pickup.Speed
	}
	ChangeState(w, e, component.StateWalking)
}
