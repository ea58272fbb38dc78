package system

import (
	"math"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

func addMover(t *testing.T, w *ecs.World, tl *component.Timeline) (ecs.Entity, *physics.Body) {
	t.Helper()
	e := ecs.CreateEntity(w)
	body := physics.NewBody(cp.Vector{}, cp.Vector{X: 1, Y: 1})
	mustAdd(t, ecs.Add(w, e, component.BodyComponent.Kind(), &body))
	mustAdd(t, ecs.Add(w, e, component.TimelineComponent.Kind(), tl))
	return e, mustGet(t, w, e, component.BodyComponent.Kind())
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTimelineCarriesLeftoverTime(t *testing.T) {
	w := ecs.NewWorld()
	_, body := addMover(t, w, component.NewTimeline().Wait(0.1).MoveBy(1, 0, 0.1))
	sys := NewTimelineSystem()

	sys.Update(w, 0.15)
	if !near(body.Position.X, 0.5) {
		t.Fatalf("expected half way after carry-over, got x=%v", body.Position.X)
	}

	sys.Update(w, 0.15)
	if !near(body.Position.X, 1) {
		t.Fatalf("expected move finished, got x=%v", body.Position.X)
	}
}

func TestTimelineMoveToFinishesExactly(t *testing.T) {
	w := ecs.NewWorld()
	e, body := addMover(t, w, component.NewTimeline().MoveTo(2, 3, 0.1))
	sys := NewTimelineSystem()

	for i := 0; i < 10; i++ {
		sys.Update(w, tick)
	}
	if body.Position != (cp.Vector{X: 2, Y: 3}) {
		t.Fatalf("expected body at target, got %v", body.Position)
	}
	if ecs.Has(w, e, component.TimelineComponent.Kind()) {
		t.Fatalf("finished timeline should be removed")
	}
}

func TestTimelineWalkToThenEmit(t *testing.T) {
	w := ecs.NewWorld()
	_, body := addMover(t, w, component.NewTimeline().WalkTo(3, 2).Emit(string(ecs.EventLevelComplete)))
	sys := NewTimelineSystem()

	sys.Update(w, 1)
	if body.Position.X != 2 || w.Events().Len() != 0 {
		t.Fatalf("expected walking in progress, got x=%v events=%d", body.Position.X, w.Events().Len())
	}

	sys.Update(w, 1)
	if body.Position.X != 3 {
		t.Fatalf("expected arrival at x=3, got %v", body.Position.X)
	}
	if n := countEvents(w.Events().Drain(), ecs.EventLevelComplete); n != 1 {
		t.Fatalf("expected one event, got %d", n)
	}
}

func TestTimelineWalkLeftFacesLeft(t *testing.T) {
	w := ecs.NewWorld()
	_, body := addMover(t, w, component.NewTimeline().WalkTo(-1, 4))

	NewTimelineSystem().Update(w, tick)

	if body.FacesRight || body.Position.X >= 0 {
		t.Fatalf("expected walking left, got %+v", body)
	}
}

func TestTimelineStopsAfterRemove(t *testing.T) {
	w := ecs.NewWorld()
	e, _ := addMover(t, w, component.NewTimeline().Remove().Emit(string(ecs.EventLevelComplete)))

	NewTimelineSystem().Update(w, tick)

	if !ecs.PendingRemoval(w, e) {
		t.Fatalf("expected removal queued")
	}
	if w.Events().Len() != 0 {
		t.Fatalf("steps after removal should not run")
	}
}
