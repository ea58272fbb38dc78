package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

func TestFlagDisablesControls(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, cp.Vector{X: 0, Y: 0}, 1)
	flag := addFlag(t, w, cp.Vector{X: 0.5, Y: 0}, 6, 5)

	NewLevelEndSystem().Update(w, tick)

	p := mustGet(t, w, player, component.PlayerComponent.Kind())
	if p.ControlsEnabled {
		t.Fatalf("expected controls disabled on reaching the flag")
	}
	if stateOf(t, w, player) != component.StateFlagSlide {
		t.Fatalf("expected flag slide, got %v", stateOf(t, w, player))
	}
	if !mustGet(t, w, flag, component.FlagComponent.Kind()).Captured {
		t.Fatalf("expected flag captured")
	}

	body := mustGet(t, w, player, component.BodyComponent.Kind())
	for _, dir := range []component.Direction{component.DirectionLeft, component.DirectionRight} {
		if Move(w, player, dir) {
			t.Fatalf("move applied during flag slide")
		}
		if body.Velocity.X != 0 {
			t.Fatalf("move changed velocity to %v", body.Velocity.X)
		}
	}
	if Jump(w, player) {
		t.Fatalf("jump applied during flag slide")
	}
}

func TestFlagSequenceCompletesLevel(t *testing.T) {
	w := ecs.NewWorld()
	player := addPlayer(t, w, cp.Vector{X: 0, Y: 3}, 1)
	flag := addFlag(t, w, cp.Vector{X: 0.5, Y: 0}, 6, 5)
	mustGet(t, w, player, component.BodyComponent.Kind()).Grounded = false

	pipeline := NewPipeline(PipelineConfig{
		Tiles:    floorGrid(-2, 10),
		Commands: StaticCommands{MoveLeft: true, Jump: true},
	})
	events := run(w, pipeline.Scheduler, 3)

	if n := countEvents(events, ecs.EventLevelComplete); n != 1 {
		t.Fatalf("expected one level_complete event, got %d", n)
	}
	if n := countSounds(events, component.SoundFlag); n != 1 {
		t.Fatalf("expected one flag cue, got %d", n)
	}
	if stateOf(t, w, player) != component.StatePose {
		t.Fatalf("expected pose at the end, got %v", stateOf(t, w, player))
	}
	body := mustGet(t, w, player, component.BodyComponent.Kind())
	if body.Position.X != 5 || body.Position.Y != 0 {
		t.Fatalf("expected player at (5,0), got %v", body.Position)
	}
	if f := mustGet(t, w, flag, component.FlagComponent.Kind()); f.Lowered != 1 {
		t.Fatalf("expected flag fully lowered, got %v", f.Lowered)
	}
}
