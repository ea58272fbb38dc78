package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// StateTimeSystem advances every actor's state clock.
type StateTimeSystem struct{}

func NewStateTimeSystem() *StateTimeSystem { return &StateTimeSystem{} }

func (s *StateTimeSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.ActorStateComponent.Kind(), func(_ ecs.Entity, st *component.ActorState) {
		if st.State != component.StateDead {
			st.Time += dt
		}
	})
}
