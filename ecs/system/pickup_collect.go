package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// PickupCollectSystem grows a small player that touches a visible pickup.
// A big player leaves pickups where they are.
type PickupCollectSystem struct{}

func NewPickupCollectSystem() *PickupCollectSystem { return &PickupCollectSystem{} }

func (s *PickupCollectSystem) Update(w *ecs.World, dt float64) {
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	p, _, ok := canCommand(w, player)
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.BodyComponent.Kind())
	if !ok {
		return
	}

	ecs.ForEach3(w, component.PickupComponent.Kind(), component.BodyComponent.Kind(), component.ActorStateComponent.Kind(), func(e ecs.Entity, pickup *component.Pickup, pb *physics.Body, st *component.ActorState) {
		if !pickup.Visible || pickup.Collected || st.State == component.StateDying || st.State == component.StateDead {
			return
		}
		if p.Level != 1 || !physics.Overlaps(body.Bounds(), pb.Bounds()) {
			return
		}

		pickup.Collected = true
		ecs.QueueRemoval(w, e)
		p.Level = 2
		body.Resize(p.SizeForLevel())
		playSound(w, player, component.SoundPowerUp)
	})
}
