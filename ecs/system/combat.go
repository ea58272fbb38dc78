package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// CombatSystem resolves player/enemy contact. Landing on an enemy while
// falling kills it; any other contact damages the player. A stomp anywhere
// in a tick protects the player from damage in that tick, and the player
// takes at most one hit per tick.
type CombatSystem struct{}

func NewCombatSystem() *CombatSystem { return &CombatSystem{} }

func (s *CombatSystem) Update(w *ecs.World, dt float64) {
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

	falling := body.Velocity.Y < 0
	bounds := body.Bounds()
	var touching []ecs.Entity
	stomped := false

	for _, e := range ecs.Query(w, component.EnemyComponent.Kind(), component.BodyComponent.Kind(), component.ActorStateComponent.Kind()) {
		est, _ := ecs.Get(w, e, component.ActorStateComponent.Kind())
		if est.State == component.StateDying || est.State == component.StateDead {
			continue
		}
		eb, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if !physics.Overlaps(bounds, eb.Bounds()) {
			continue
		}
		if falling && body.Position.Y > eb.Position.Y {
			if TrampleEnemy(w, e) {
				body.Velocity.Y += p.JumpBoost
				body.Grounded = false
				playSound(w, player, component.SoundStomp)
				stomped = true
			}
			continue
		}
		touching = append(touching, e)
	}

	if stomped || len(touching) == 0 {
		return
	}
	HitPlayer(w, player)
}

// HitPlayer applies one point of damage unless the player is invulnerable.
// Losing the last level starts the death sequence; otherwise the player
// shrinks and blinks through an invulnerability window.
func HitPlayer(w *ecs.World, e ecs.Entity) {
	if ecs.Has(w, e, component.InvulnerableComponent.Kind()) {
		return
	}
	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok {
		return
	}

	p.Level--
	if p.Level < 1 {
		KillPlayer(w, e)
		return
	}

	if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		body.Resize(p.SizeForLevel())
	}
	_ = ecs.Add(w, e, component.InvulnerableComponent.Kind(), &component.Invulnerable{
		Remaining: p.InvulnerableTime,
		Blink:     p.BlinkInterval,
	})
	playSound(w, e, component.SoundDamage)
}
