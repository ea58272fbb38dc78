package system

import (
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CommandSource produces the discrete commands for one tick. Front-ends
// implement it over their own input devices.
type CommandSource interface {
	Poll() component.Input
}

// InputSystem copies the polled commands into the player's Input component.
type InputSystem struct {
	source CommandSource
}

func NewInputSystem(source CommandSource) *InputSystem {
	return &InputSystem{source: source}
}

func (s *InputSystem) Update(w *ecs.World, dt float64) {
	if s == nil || s.source == nil {
		return
	}
	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	cmd := s.source.Poll()
	if input, ok := ecs.Get(w, player, component.InputComponent.Kind()); ok {
		*input = cmd
		return
	}
	_ = ecs.Add(w, player, component.InputComponent.Kind(), &cmd)
}

// StaticCommands replays the same commands every tick.
type StaticCommands component.Input

func (c StaticCommands) Poll() component.Input { return component.Input(c) }
