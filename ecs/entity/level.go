package entity

import (
	"fmt"
	"log"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/level"
	"github.com/milk9111/platformer/prefabs"
)

// LoadLevelToWorld populates world with the player, every level marker, the
// flag and the camera. It returns the player entity.
func LoadLevelToWorld(world *ecs.World, lvl *level.Level, spec *prefabs.WorldSpec) (ecs.Entity, error) {
	if lvl == nil {
		return 0, fmt.Errorf("load level: level is nil")
	}
	base := buildContext{World: spec, LevelWidth: float64(lvl.Width)}

	ctx := base
	ctx.At = lvl.Spawn
	player, err := BuildEntity(world, "player", &ctx)
	if err != nil {
		return 0, fmt.Errorf("load level %s: %w", lvl.Name, err)
	}

	for _, m := range lvl.Markers {
		ctx := base
		ctx.At = m.At
		if _, err := BuildEntity(world, m.Prefab, &ctx); err != nil {
			return 0, fmt.Errorf("load level %s: %s at %v: %w", lvl.Name, m.Prefab, m.At, err)
		}
	}

	if lvl.Flag != nil {
		ctx := base
		ctx.At = cp.Vector{X: lvl.Flag.X, Y: lvl.Flag.Base}
		ctx.PoleHeight = lvl.Flag.Height
		ctx.EndX = lvl.Flag.EndX
		if _, err := BuildEntity(world, "flag", &ctx); err != nil {
			return 0, fmt.Errorf("load level %s: %w", lvl.Name, err)
		}
	}

	ctx = base
	if _, err := BuildEntity(world, "camera", &ctx); err != nil {
		return 0, fmt.Errorf("load level %s: %w", lvl.Name, err)
	}

	log.Printf("[Level] %s: %d markers, flag=%t", lvl.Name, len(lvl.Markers), lvl.Flag != nil)
	return player, nil
}

// Spawner builds prefabs into a running world, for example the contents of
// a bonus block.
type Spawner struct {
	World *prefabs.WorldSpec
}

func (s *Spawner) SpawnPickup(w *ecs.World, prefab string, at cp.Vector) (ecs.Entity, error) {
	return BuildEntity(w, prefab, &buildContext{World: s.World, At: at})
}
