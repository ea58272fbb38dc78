package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// InvulnerableSystem counts damage immunity down and drives the blink.
type InvulnerableSystem struct{}

func NewInvulnerableSystem() *InvulnerableSystem { return &InvulnerableSystem{} }

func (s *InvulnerableSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.InvulnerableComponent.Kind(), func(e ecs.Entity, inv *component.Invulnerable) {
		inv.Remaining -= dt
		inv.Elapsed += dt
		if inv.Remaining <= 0 {
			ecs.Remove(w, e, component.InvulnerableComponent.Kind())
			return
		}
		if inv.Blink > 0 {
			inv.Hidden = int(inv.Elapsed/inv.Blink)%2 == 1
		}
	})
}
