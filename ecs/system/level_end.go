package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// LevelEndSystem starts the flag sequence when the player reaches the pole
// and lowers the cloth of captured flags.
type LevelEndSystem struct{}

func NewLevelEndSystem() *LevelEndSystem { return &LevelEndSystem{} }

func (s *LevelEndSystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach(w, component.FlagComponent.Kind(), func(_ ecs.Entity, f *component.Flag) {
		if !f.Captured {
			return
		}
		f.Elapsed += dt
		f.Lowered = common.Clamp((f.Elapsed-flagDelay)/flagSlideTime, 0, 1)
	})

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	if _, _, ok := canCommand(w, player); !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.BodyComponent.Kind())
	if !ok {
		return
	}

	for _, e := range ecs.Query(w, component.FlagComponent.Kind(), component.BodyComponent.Kind()) {
		f, _ := ecs.Get(w, e, component.FlagComponent.Kind())
		pole, _ := ecs.Get(w, e, component.BodyComponent.Kind())
		if f.Captured || !physics.Overlaps(body.Bounds(), pole.Bounds()) {
			continue
		}
		CaptureFlag(w, player, e)
		return
	}
}

// CaptureFlag disables the player's controls and scripts the slide down the
// pole, the walk to the flag's end point and the final pose before
// signalling level completion.
func CaptureFlag(w *ecs.World, player, flag ecs.Entity) bool {
	f, ok := ecs.Get(w, flag, component.FlagComponent.Kind())
	if !ok || f.Captured {
		return false
	}
	pole, ok := ecs.Get(w, flag, component.BodyComponent.Kind())
	if !ok {
		return false
	}
	p, ok := ecs.Get(w, player, component.PlayerComponent.Kind())
	if !ok {
		return false
	}
	if !ChangeState(w, player, component.StateFlagSlide) {
		return false
	}

	p.ControlsEnabled = false
	f.Captured = true
	body, _ := ecs.Get(w, player, component.BodyComponent.Kind())
	x := 0.0
	if body != nil {
		body.Velocity.X, body.Velocity.Y = 0, 0
		x = body.Position.X
	}
	playSound(w, player, component.SoundFlag)
	setTimeline(w, player, component.NewTimeline().
		Wait(flagDelay).
		MoveTo(x, pole.Position.Y, flagSlideTime).
		SetState(component.StateWalking).
		WalkTo(f.EndX, p.WalkSpeed).
		SetState(component.StatePose).
		Emit(string(ecs.EventLevelComplete)))
	return true
}
