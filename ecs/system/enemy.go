package system

import (
	"fmt"
	"log"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
)

// ScriptLoader returns the source of a named brain script.
type ScriptLoader func(name string) ([]byte, error)

// EnemySystem steers walking enemies. Each enemy with a Script runs its
// tengo brain once per tick; enemies without one, or whose script fails,
// use the built-in patrol that turns around at walls.
type EnemySystem struct {
	load    ScriptLoader
	scripts map[string]*tengo.Compiled
	broken  map[string]bool
}

func NewEnemySystem(load ScriptLoader) *EnemySystem {
	return &EnemySystem{
		load:    load,
		scripts: map[string]*tengo.Compiled{},
		broken:  map[string]bool{},
	}
}

// Reload drops every compiled script so the next tick recompiles from the
// loader.
func (s *EnemySystem) Reload() {
	s.scripts = map[string]*tengo.Compiled{}
	s.broken = map[string]bool{}
}

func (s *EnemySystem) Update(w *ecs.World, dt float64) {
	ecs.ForEach3(w, component.EnemyComponent.Kind(), component.BodyComponent.Kind(), component.ActorStateComponent.Kind(), func(e ecs.Entity, enemy *component.Enemy, body *physics.Body, st *component.ActorState) {
		if !st.State.Controllable() {
			return
		}

		vx, facingRight, err := s.think(enemy, body)
		if err != nil {
			log.Printf("enemy: entity=%v script %q: %v", e, enemy.Script, err)
			s.broken[enemy.Script] = true
			vx, facingRight = patrol(enemy, body)
		}
		enemy.HitWall = false

		body.Velocity.X = vx
		body.FacesRight = facingRight
		if facingRight {
			st.Direction = component.DirectionRight
		} else {
			st.Direction = component.DirectionLeft
		}
	})
}

func patrol(enemy *component.Enemy, body *physics.Body) (float64, bool) {
	facingRight := body.FacesRight
	if enemy.HitWall {
		facingRight = !facingRight
	}
	if facingRight {
		return enemy.Speed, true
	}
	return -enemy.Speed, false
}

func (s *EnemySystem) think(enemy *component.Enemy, body *physics.Body) (float64, bool, error) {
	if enemy.Script == "" || s.broken[enemy.Script] || s.load == nil {
		vx, right := patrol(enemy, body)
		return vx, right, nil
	}
	compiled, err := s.compiled(enemy.Script)
	if err != nil {
		return 0, false, err
	}

	inputs := map[string]any{
		"vx":           body.Velocity.X,
		"speed":        enemy.Speed,
		"hit_wall":     enemy.HitWall,
		"grounded":     body.Grounded,
		"facing_right": body.FacesRight,
	}
	for name, v := range inputs {
		if err := compiled.Set(name, v); err != nil {
			return 0, false, fmt.Errorf("set %s: %w", name, err)
		}
	}
	if err := compiled.Run(); err != nil {
		return 0, false, err
	}
	return compiled.Get("vx").Float(), compiled.Get("facing_right").Bool(), nil
}

func (s *EnemySystem) compiled(name string) (*tengo.Compiled, error) {
	if c, ok := s.scripts[name]; ok {
		return c, nil
	}
	src, err := s.load(name)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math"))
	for _, name := range []string{"vx", "speed"} {
		_ = script.Add(name, 0.0)
	}
	for _, name := range []string{"hit_wall", "grounded", "facing_right"} {
		_ = script.Add(name, false)
	}

	c, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	s.scripts[name] = c
	return c, nil
}
