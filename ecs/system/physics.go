package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// TileSource is the level's solid tile grid.
type TileSource interface {
	Tiles(minX, minY, maxX, maxY int) []cp.BB
}

// PhysicsSystem integrates every simulated actor against the tile grid and
// the live obstacles, then routes the resolver events through a behaviour
// table keyed by actor kind.
type PhysicsSystem struct {
	tiles TileSource
}

func NewPhysicsSystem(tiles TileSource) *PhysicsSystem {
	return &PhysicsSystem{tiles: tiles}
}

// SetTiles swaps the grid, used when a level is reloaded in place.
func (s *PhysicsSystem) SetTiles(tiles TileSource) {
	s.tiles = tiles
}

type actorBehavior struct {
	// onHitX builds the resolver's X collision policy. nil keeps the
	// default, which stops the actor.
	onHitX func(w *ecs.World, e ecs.Entity) func(b *physics.Body)
	// onSettled runs when the actor comes to rest on the ground.
	onSettled func(w *ecs.World, e ecs.Entity)
	onFell    func(w *ecs.World, e ecs.Entity)
}

var actorBehaviors = map[component.ActorKind]actorBehavior{
	component.ActorPlayer: {
		onSettled: func(w *ecs.World, e ecs.Entity) {
			ChangeState(w, e, component.StateStanding)
		},
		onFell: func(w *ecs.World, e ecs.Entity) {
			FallDeath(w, e)
		},
	},
	component.ActorEnemy: {
		onHitX: func(w *ecs.World, e ecs.Entity) func(b *physics.Body) {
			return func(b *physics.Body) {
				if enemy, ok := ecs.Get(w, e, component.EnemyComponent.Kind()); ok {
					enemy.HitWall = true
				}
			}
		},
		onFell: removeActor,
	},
	component.ActorPickup: {
		onHitX: func(w *ecs.World, e ecs.Entity) func(b *physics.Body) {
			return reverseOnWall
		},
		onFell: removeActor,
	},
}

func reverseOnWall(b *physics.Body) {
	b.Velocity.X = -b.Velocity.X
	b.FacesRight = !b.FacesRight
}

func removeActor(w *ecs.World, e ecs.Entity) {
	ecs.QueueRemoval(w, e)
}

func (s *PhysicsSystem) Update(w *ecs.World, dt float64) {
	if dt == 0 {
		return
	}
	q := &worldQuery{tiles: s.tiles, obstacles: collectObstacles(w)}

	for _, e := range ecs.Query(w,
		component.ActorComponent.Kind(),
		component.BodyComponent.Kind(),
		component.MotionComponent.Kind(),
		component.ActorStateComponent.Kind(),
	) {
		actor, _ := ecs.Get(w, e, component.ActorComponent.Kind())
		body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		motion, _ := ecs.Get(w, e, component.MotionComponent.Kind())
		st, _ := ecs.Get(w, e, component.ActorStateComponent.Kind())
		if actor == nil || body == nil || motion == nil || st == nil || !st.State.Simulated() {
			continue
		}

		level := 0
		switch actor.Kind {
		case component.ActorPlayer:
			p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
			if !ok || !p.ControlsEnabled {
				continue
			}
			level = p.Level
		case component.ActorPickup:
			if pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && !pickup.Visible {
				continue
			}
		}

		behavior := actorBehaviors[actor.Kind]
		params := physics.Params{
			Gravity:   motion.Gravity,
			Damping:   motion.Damping,
			Level:     level,
			CheckFall: motion.CheckFall,
			FallLimit: motion.FallLimit,
		}
		if behavior.onHitX != nil {
			params.OnHitX = behavior.onHitX(w, e)
		}

		ev := physics.Integrate(body, q, dt, params)
		if motion.MaxFall > 0 && body.Velocity.Y < -motion.MaxFall {
			body.Velocity.Y = -motion.MaxFall
		}

		if ev.Settled && behavior.onSettled != nil {
			behavior.onSettled(w, e)
		}
		if ev.Fell && behavior.onFell != nil {
			behavior.onFell(w, e)
		}
	}
}

// worldQuery adapts the tile grid and the world's obstacles to
// physics.Query.
type worldQuery struct {
	tiles     TileSource
	obstacles []physics.Obstacle
}

func (q *worldQuery) Tiles(minX, minY, maxX, maxY int) []cp.BB {
	if q.tiles == nil {
		return nil
	}
	return q.tiles.Tiles(minX, minY, maxX, maxY)
}

func (q *worldQuery) Obstacles() []physics.Obstacle {
	return q.obstacles
}

// obstacleRef exposes an obstacle entity to the resolver. Hits are recorded
// on the component and handled by ObstacleSystem later in the tick.
type obstacleRef struct {
	body     *physics.Body
	obstacle *component.Obstacle
}

func (o obstacleRef) Bounds() cp.BB   { return o.body.Bounds() }
func (o obstacleRef) Destroyed() bool { return o.obstacle.Destroyed }
func (o obstacleRef) RestY() float64  { return o.obstacle.RestY }

func (o obstacleRef) Hit(level int) {
	o.obstacle.Pending = true
	if level > o.obstacle.HitLevel {
		o.obstacle.HitLevel = level
	}
}

// collectObstacles returns the world's obstacles in entity id order.
func collectObstacles(w *ecs.World) []physics.Obstacle {
	var out []physics.Obstacle
	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, o *component.Obstacle, b *physics.Body) {
		out = append(out, obstacleRef{body: b, obstacle: o})
	})
	return out
}
