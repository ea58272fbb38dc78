// Package session runs one level of the simulation for a front-end: it owns
// the world and the system pipeline and turns the tick's events into a
// level outcome.
package session

import (
	"fmt"
	"log"

	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/ecs/entity"
	"github.com/milk9111/platformer/ecs/system"
	"github.com/milk9111/platformer/level"
	"github.com/milk9111/platformer/prefabs"
)

type Outcome uint8

const (
	Playing Outcome = iota
	Completed
	Dead
)

func (o Outcome) String() string {
	switch o {
	case Completed:
		return "completed"
	case Dead:
		return "dead"
	}
	return "playing"
}

type Config struct {
	Commands system.CommandSource
	// Scripts loads enemy brains. nil uses the embedded prefab scripts.
	Scripts system.ScriptLoader
}

type Session struct {
	World    *ecs.World
	Pipeline *system.Pipeline
	Level    *level.Level
	Player   ecs.Entity
	// Elapsed is the simulated time since the level started.
	Elapsed float64
	Outcome Outcome

	spec *prefabs.WorldSpec
}

func New(lvl *level.Level, spec *prefabs.WorldSpec, cfg Config) (*Session, error) {
	if spec == nil {
		return nil, fmt.Errorf("session: world spec is nil")
	}
	scripts := cfg.Scripts
	if scripts == nil {
		scripts = prefabs.LoadScript
	}

	s := &Session{spec: spec}
	s.Pipeline = system.NewPipeline(system.PipelineConfig{
		Tiles:    lvl,
		Commands: cfg.Commands,
		Spawner:  &entity.Spawner{World: spec},
		Scripts:  scripts,
	})
	if err := s.Load(lvl); err != nil {
		return nil, err
	}
	return s, nil
}

// Load replaces the running level with lvl, starting it from scratch.
func (s *Session) Load(lvl *level.Level) error {
	world := ecs.NewWorld()
	player, err := entity.LoadLevelToWorld(world, lvl, s.spec)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}

	s.World = world
	s.Level = lvl
	s.Player = player
	s.Elapsed = 0
	s.Outcome = Playing
	s.Pipeline.Physics.SetTiles(lvl)
	return nil
}

// Restart replays the current level.
func (s *Session) Restart() error {
	return s.Load(s.Level)
}

// SetWorldSpec swaps the tuning used by the next Load.
func (s *Session) SetWorldSpec(spec *prefabs.WorldSpec) {
	if spec != nil {
		s.spec = spec
	}
}

// ReloadScripts drops the compiled enemy brains.
func (s *Session) ReloadScripts() {
	s.Pipeline.Enemies.Reload()
}

// Step advances the simulation by dt and returns the tick's events. Once the
// level is decided the world keeps running so death and flag animations can
// finish, but Outcome no longer changes.
func (s *Session) Step(dt float64) []ecs.Event {
	s.Pipeline.Update(s.World, dt)
	events := s.World.Events().Drain()
	if s.Outcome != Playing {
		return events
	}

	s.Elapsed += dt
	for _, ev := range events {
		switch ev.Type {
		case ecs.EventLevelComplete:
			s.Outcome = Completed
			log.Printf("[Session] %s completed in %.2fs", s.Level.Name, s.Elapsed)
		case ecs.EventPlayerDead:
			s.Outcome = Dead
			log.Printf("[Session] %s: player died after %.2fs", s.Level.Name, s.Elapsed)
		}
	}
	return events
}

// Status is a read-only snapshot for HUDs.
type Status struct {
	Level       string
	PlayerLevel int
	State       component.State
	Elapsed     float64
	Outcome     Outcome
}

func (s *Session) Status() Status {
	st := Status{Level: s.Level.Name, Elapsed: s.Elapsed, Outcome: s.Outcome, State: component.StateDead}
	if p, ok := ecs.Get(s.World, s.Player, component.PlayerComponent.Kind()); ok {
		st.PlayerLevel = p.Level
	}
	if as, ok := ecs.Get(s.World, s.Player, component.ActorStateComponent.Kind()); ok {
		st.State = as.State
	}
	return st
}
