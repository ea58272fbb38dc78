package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

const tick = 1.0 / 60

type grid map[[2]int]bool

func (g grid) Tiles(minX, minY, maxX, maxY int) []cp.BB {
	var out []cp.BB
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if g[[2]int{x, y}] {
				out = append(out, cp.BB{L: float64(x), B: float64(y), R: float64(x + 1), T: float64(y + 1)})
			}
		}
	}
	return out
}

// floorGrid returns a solid row at y=-1 spanning columns from..to.
func floorGrid(from, to int) grid {
	g := grid{}
	for x := from; x <= to; x++ {
		g[[2]int{x, -1}] = true
	}
	return g
}

func mustAdd(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("add component: %v", err)
	}
}

func testMotion() *component.Motion {
	return &component.Motion{Gravity: -180, Damping: 0.87, MaxFall: 40, CheckFall: true, FallLimit: -3}
}

func addPlayer(t *testing.T, w *ecs.World, pos cp.Vector, level int) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	p := &component.Player{
		Level:            level,
		MaxVelocity:      8,
		JumpVelocity:     40,
		JumpBoost:        40,
		WalkSpeed:        5,
		InvulnerableTime: 2,
		BlinkInterval:    0.4,
		ControlsEnabled:  true,
		Moving:           true,
		SmallSize:        cp.Vector{X: 0.875, Y: 1},
		BigSize:          cp.Vector{X: 0.875, Y: 2},
	}
	body := physics.NewBody(pos, p.SizeForLevel())
	body.Grounded = true

	mustAdd(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	mustAdd(t, ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Kind: component.ActorPlayer}))
	mustAdd(t, ecs.Add(w, e, component.PlayerComponent.Kind(), p))
	mustAdd(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	mustAdd(t, ecs.Add(w, e, component.MotionComponent.Kind(), testMotion()))
	mustAdd(t, ecs.Add(w, e, component.ActorStateComponent.Kind(), &component.ActorState{Direction: component.DirectionRight}))
	mustAdd(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	return e
}

func addEnemy(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := physics.NewBody(pos, cp.Vector{X: 1, Y: 1})
	body.FacesRight = false
	motion := testMotion()
	motion.Damping = 1

	mustAdd(t, ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Kind: component.ActorEnemy}))
	mustAdd(t, ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{Kind: "goomba", Speed: 2, TrampleTime: 0.5}))
	mustAdd(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	mustAdd(t, ecs.Add(w, e, component.MotionComponent.Kind(), motion))
	mustAdd(t, ecs.Add(w, e, component.ActorStateComponent.Kind(), &component.ActorState{State: component.StateWalking, Direction: component.DirectionLeft}))
	return e
}

func addPickup(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := physics.NewBody(pos, cp.Vector{X: 1, Y: 1})
	motion := testMotion()
	motion.Damping = 1

	mustAdd(t, ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Kind: component.ActorPickup}))
	mustAdd(t, ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{Kind: "mushroom", Speed: 3, Visible: true}))
	mustAdd(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	mustAdd(t, ecs.Add(w, e, component.MotionComponent.Kind(), motion))
	mustAdd(t, ecs.Add(w, e, component.ActorStateComponent.Kind(), &component.ActorState{State: component.StateWalking, Direction: component.DirectionRight}))
	return e
}

func addObstacle(t *testing.T, w *ecs.World, pos cp.Vector, kind component.ObstacleKind, contents string) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := physics.NewBody(pos, cp.Vector{X: 1, Y: 1})

	mustAdd(t, ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Kind: component.ActorObstacle}))
	mustAdd(t, ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{Kind: kind, RestY: pos.Y, Contents: contents}))
	mustAdd(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	return e
}

func addFlag(t *testing.T, w *ecs.World, pos cp.Vector, height, endX float64) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := physics.NewBody(pos, cp.Vector{X: 0.25, Y: height})

	mustAdd(t, ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Kind: component.ActorFlag}))
	mustAdd(t, ecs.Add(w, e, component.FlagComponent.Kind(), &component.Flag{EndX: endX}))
	mustAdd(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	return e
}

func mustGet[T any](t *testing.T, w *ecs.World, e ecs.Entity, kind component.ComponentKind[T]) *T {
	t.Helper()
	v, ok := ecs.Get(w, e, kind)
	if !ok {
		t.Fatalf("entity %v missing component", e)
	}
	return v
}

func stateOf(t *testing.T, w *ecs.World, e ecs.Entity) component.State {
	t.Helper()
	return mustGet(t, w, e, component.ActorStateComponent.Kind()).State
}

func countEvents(events []ecs.Event, typ ecs.EventType) int {
	n := 0
	for _, ev := range events {
		if ev.Type == typ {
			n++
		}
	}
	return n
}

func countSounds(events []ecs.Event, s component.Sound) int {
	n := 0
	for _, ev := range events {
		if ev.Type == ecs.EventSound && ev.Data == s {
			n++
		}
	}
	return n
}

func run(w *ecs.World, sched *ecs.Scheduler, seconds float64) []ecs.Event {
	var events []ecs.Event
	for elapsed := 0.0; elapsed < seconds; elapsed += tick {
		sched.Update(w, tick)
		events = append(events, w.Events().Drain()...)
	}
	return events
}
