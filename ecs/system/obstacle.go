package system

import (
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

const (
	bumpHeight     = 0.25
	bumpRiseTime   = 0.05
	bumpReturnTime = 0.1
	emergeTime     = 0.5
)

// PickupSpawner creates a pickup entity from a prefab at a world position.
type PickupSpawner interface {
	SpawnPickup(w *ecs.World, prefab string, at cp.Vector) (ecs.Entity, error)
}

// ObstacleSystem reacts to blocks struck from below during physics: bricks
// break under a big player, bonus blocks release their contents once, and
// everything else bumps.
type ObstacleSystem struct {
	spawner PickupSpawner
}

func NewObstacleSystem(spawner PickupSpawner) *ObstacleSystem {
	return &ObstacleSystem{spawner: spawner}
}

func (s *ObstacleSystem) Update(w *ecs.World, dt float64) {
	for _, e := range ecs.Query(w, component.ObstacleComponent.Kind(), component.BodyComponent.Kind()) {
		o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
		if !o.Pending {
			continue
		}
		level := o.HitLevel
		o.Pending = false
		o.HitLevel = 0
		if o.Destroyed || level < 1 {
			continue
		}
		ecs.Emit(w, ecs.EventObstacleHit, e, level)

		switch o.Kind {
		case component.ObstacleBrick:
			if level >= 2 {
				o.Destroyed = true
				ecs.QueueRemoval(w, e)
				playSound(w, e, component.SoundBreak)
				continue
			}
		case component.ObstacleBonus:
			if o.Used {
				continue
			}
			o.Used = true
			s.release(w, e, o)
		}
		s.bump(w, e, o)
	}
}

func (s *ObstacleSystem) bump(w *ecs.World, e ecs.Entity, o *component.Obstacle) {
	if t, ok := ecs.Get(w, e, component.TimelineComponent.Kind()); ok && !t.Done() {
		return
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	setTimeline(w, e, component.NewTimeline().
		MoveBy(0, bumpHeight, bumpRiseTime).
		MoveTo(body.Position.X, o.RestY, bumpReturnTime))
	playSound(w, e, component.SoundBump)
}

// release spawns the block's contents inside it, hidden, and lets it rise
// out of the top before it starts walking.
func (s *ObstacleSystem) release(w *ecs.World, e ecs.Entity, o *component.Obstacle) {
	if s.spawner == nil || o.Contents == "" {
		return
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	at := cp.Vector{X: body.Position.X, Y: o.RestY}
	item, err := s.spawner.SpawnPickup(w, o.Contents, at)
	if err != nil {
		log.Printf("obstacle: release %q: %v", o.Contents, err)
		return
	}

	if pickup, ok := ecs.Get(w, item, component.PickupComponent.Kind()); ok {
		pickup.Visible = false
	}
	if st, ok := ecs.Get(w, item, component.ActorStateComponent.Kind()); ok {
		st.State = component.StateNoControl
		st.Time = 0
	}
	rise := body.Size.Y
	setTimeline(w, item, component.NewTimeline().
		MoveBy(0, rise, emergeTime).
		Reveal())
}
