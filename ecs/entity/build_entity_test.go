package entity

import (
	"errors"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/level"
	"github.com/milk9111/platformer/prefabs"
)

func testWorldSpec() *prefabs.WorldSpec {
	return &prefabs.WorldSpec{Gravity: -180, Damping: 0.87, MaxFall: 40, FallLimit: -3, StartLevel: 1}
}

func TestBuildPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "player", &buildContext{World: testWorldSpec(), At: cp.Vector{X: 2, Y: 1}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	p, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
	if !ok || p.Level != 1 || !p.ControlsEnabled {
		t.Fatalf("unexpected player %+v", p)
	}
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok || body.Position != (cp.Vector{X: 2, Y: 1}) || body.Size != p.SmallSize {
		t.Fatalf("unexpected body %+v", body)
	}
	motion, ok := ecs.Get(w, e, component.MotionComponent.Kind())
	if !ok || motion.Gravity != -180 || !motion.CheckFall {
		t.Fatalf("unexpected motion %+v", motion)
	}
	if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) || !ecs.Has(w, e, component.InputComponent.Kind()) {
		t.Fatalf("player is missing tag or input")
	}
}

func TestBuildEnemyFacesLeft(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "goomba", &buildContext{World: testWorldSpec()})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	st, _ := ecs.Get(w, e, component.ActorStateComponent.Kind())
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	if st.State != component.StateWalking || st.Direction != component.DirectionLeft || body.FacesRight {
		t.Fatalf("unexpected goomba state %+v body %+v", st, body)
	}
	motion, _ := ecs.Get(w, e, component.MotionComponent.Kind())
	if motion.Damping != 1 {
		t.Fatalf("goomba should override damping, got %v", motion.Damping)
	}
	enemy, _ := ecs.Get(w, e, component.EnemyComponent.Kind())
	if enemy.Script == "" {
		t.Fatalf("goomba should have a brain script")
	}
}

func TestBuildObstacleRestsWhereBuilt(t *testing.T) {
	w := ecs.NewWorld()
	e, err := BuildEntity(w, "bonus_block", &buildContext{World: testWorldSpec(), At: cp.Vector{X: 4, Y: 6}})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	o, _ := ecs.Get(w, e, component.ObstacleComponent.Kind())
	if o.Kind != component.ObstacleBonus || o.RestY != 6 || o.Contents != "mushroom" {
		t.Fatalf("unexpected obstacle %+v", o)
	}
	if ecs.Has(w, e, component.MotionComponent.Kind()) {
		t.Fatalf("obstacles are not integrated")
	}
}

func TestBuildFlagNeedsPole(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := BuildEntity(w, "flag", &buildContext{World: testWorldSpec()}); !errors.Is(err, prefabs.ErrInvalidSpec) {
		t.Fatalf("expected zero-height pole rejected, got %v", err)
	}
	if n := len(ecs.Entities(w)); n != 0 {
		t.Fatalf("failed build left %d entities behind", n)
	}
}

func TestBuildEntityErrors(t *testing.T) {
	if _, err := BuildEntity(nil, "player", &buildContext{World: testWorldSpec()}); err == nil {
		t.Fatalf("expected nil world rejected")
	}
	if _, err := BuildEntity(ecs.NewWorld(), "player", nil); err == nil {
		t.Fatalf("expected missing context rejected")
	}
	if _, err := BuildEntity(ecs.NewWorld(), "nope", &buildContext{World: testWorldSpec()}); err == nil {
		t.Fatalf("expected missing prefab rejected")
	}
}

func TestLoadLevelToWorld(t *testing.T) {
	lvl, err := level.FromRows("t", "", []string{
		"..?...F.",
		"......F.",
		"P..G..FE",
		"########",
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	w := ecs.NewWorld()
	player, err := LoadLevelToWorld(w, lvl, testWorldSpec())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if first, _ := ecs.First(w, component.PlayerTagComponent.Kind()); first != player {
		t.Fatalf("returned entity is not the player")
	}
	if n := ecs.Count(w, component.EnemyComponent.Kind()); n != 1 {
		t.Fatalf("expected 1 enemy, got %d", n)
	}
	if n := ecs.Count(w, component.ObstacleComponent.Kind()); n != 1 {
		t.Fatalf("expected 1 obstacle, got %d", n)
	}

	flagEntity, ok := ecs.First(w, component.FlagComponent.Kind())
	if !ok {
		t.Fatalf("expected a flag")
	}
	flag, _ := ecs.Get(w, flagEntity, component.FlagComponent.Kind())
	pole, _ := ecs.Get(w, flagEntity, component.BodyComponent.Kind())
	if flag.EndX != 7 || pole.Position.Y != 1 || pole.Size.Y != 3 {
		t.Fatalf("unexpected flag %+v pole %+v", flag, pole)
	}

	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		t.Fatalf("expected a camera")
	}
	if cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind()); cam.MaxX != 8 {
		t.Fatalf("camera should be bounded by the level width, got %+v", cam)
	}
}

func TestSpawnerBuildsPickup(t *testing.T) {
	w := ecs.NewWorld()
	s := &Spawner{World: testWorldSpec()}
	e, err := s.SpawnPickup(w, "mushroom", cp.Vector{X: 3, Y: 4})
	if err != nil {
		t.Fatalf("spawn: %v", err)
	}
	pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind())
	if !ok || !pickup.Visible || pickup.Speed <= 0 {
		t.Fatalf("unexpected pickup %+v", pickup)
	}
	body, _ := ecs.Get(w, e, component.BodyComponent.Kind())
	if body.Position != (cp.Vector{X: 3, Y: 4}) || body.Velocity.X != pickup.Speed {
		t.Fatalf("unexpected pickup body %+v", body)
	}
}
