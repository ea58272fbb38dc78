package entity

import (
	"fmt"
	"unicode/utf8"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
	"github.com/milk9111/platformer/physics"
	"github.com/milk9111/platformer/prefabs"
)

// buildContext carries what a prefab cannot know on its own: where the
// entity goes and the level-wide tuning.
type buildContext struct {
	PrefabPath string
	At         cp.Vector
	World      *prefabs.WorldSpec
	// PoleHeight sizes a flag's body.
	PoleHeight float64
	EndX       float64
	// LevelWidth bounds the camera.
	LevelWidth float64
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag": addPlayerTag,
	"actor":      addActor,
	"player":     addPlayer,
	"input":      addInput,
	"enemy":      addEnemy,
	"pickup":     addPickup,
	"obstacle":   addObstacle,
	"flag":       addFlag,
	"body":       addBody,
	"motion":     addMotion,
	"state":      addState,
	"sprite":     addSprite,
	"camera":     addCamera,
}

// componentBuildOrder lists builders that read components added before
// them: body sizes itself from player, state sets the body's facing.
var componentBuildOrder = []string{
	"player_tag",
	"actor",
	"player",
	"input",
	"enemy",
	"pickup",
	"obstacle",
	"flag",
	"body",
	"motion",
	"state",
	"sprite",
	"camera",
}

func BuildEntity(w *ecs.World, prefabPath string, ctx *buildContext) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}
	if ctx == nil || ctx.World == nil {
		return 0, fmt.Errorf("build entity: %q: world spec is nil", prefabPath)
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}
	if len(spec.Components) == 0 {
		return 0, fmt.Errorf("build entity: prefab %q does not define components", prefabPath)
	}

	for name := range spec.Components {
		if _, ok := componentRegistry[name]; !ok {
			return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, name)
		}
	}

	e := ecs.CreateEntity(w)
	ctx.PrefabPath = prefabPath
	for _, name := range componentBuildOrder {
		raw, ok := spec.Components[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
	}

	return e, nil
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addActor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ActorComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode actor spec: %w", err)
	}
	kind, err := component.ParseActorKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ActorComponent.Kind(), &component.Actor{Kind: kind})
}

func addPlayer(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player spec: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return err
	}

	return ecs.Add(w, e, component.PlayerComponent.Kind(), &component.Player{
		Level:            ctx.World.StartLevel,
		MaxVelocity:      spec.MaxVelocity,
		JumpVelocity:     spec.JumpVelocity,
		JumpBoost:        spec.JumpBoost,
		WalkSpeed:        spec.WalkSpeed,
		InvulnerableTime: spec.InvulnerableTime,
		BlinkInterval:    spec.BlinkInterval,
		ControlsEnabled:  true,
		Moving:           true,
		SmallSize:        cp.Vector{X: spec.Small.Width, Y: spec.Small.Height},
		BigSize:          cp.Vector{X: spec.Big.Width, Y: spec.Big.Height},
	})
}

func addInput(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})
}

func addEnemy(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.EnemyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode enemy spec: %w", err)
	}
	if spec.Speed < 0 || spec.TrampleTime < 0 {
		return fmt.Errorf("%w: enemy speed and trample_time must not be negative", prefabs.ErrInvalidSpec)
	}
	return ecs.Add(w, e, component.EnemyComponent.Kind(), &component.Enemy{
		Kind:        spec.Kind,
		Speed:       spec.Speed,
		Script:      spec.Script,
		TrampleTime: spec.TrampleTime,
	})
}

func addPickup(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PickupComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode pickup spec: %w", err)
	}
	return ecs.Add(w, e, component.PickupComponent.Kind(), &component.Pickup{
		Kind:    spec.Kind,
		Speed:   spec.Speed,
		Visible: true,
	})
}

func addObstacle(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.ObstacleComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode obstacle spec: %w", err)
	}
	kind, err := component.ParseObstacleKind(spec.Kind)
	if err != nil {
		return err
	}
	return ecs.Add(w, e, component.ObstacleComponent.Kind(), &component.Obstacle{
		Kind:     kind,
		RestY:    ctx.At.Y,
		Contents: spec.Contents,
	})
}

// addFlag adds the pole's body as well, since its height is a level
// property.
func addFlag(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.FlagComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode flag spec: %w", err)
	}
	size := prefabs.SizeSpec{Width: spec.Width, Height: ctx.PoleHeight}
	if err := size.Validate(); err != nil {
		return fmt.Errorf("pole: %w", err)
	}

	if err := ecs.Add(w, e, component.FlagComponent.Kind(), &component.Flag{EndX: ctx.EndX}); err != nil {
		return err
	}
	// Centre the pole in its column.
	at := cp.Vector{X: ctx.At.X + (1-spec.Width)/2, Y: ctx.At.Y}
	body := physics.NewBody(at, cp.Vector{X: size.Width, Y: size.Height})
	return ecs.Add(w, e, component.BodyComponent.Kind(), &body)
}

func addBody(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode body spec: %w", err)
	}

	size := cp.Vector{X: spec.Width, Y: spec.Height}
	if p, ok := ecs.Get(w, e, component.PlayerComponent.Kind()); ok {
		size = p.SizeForLevel()
	}
	if err := (prefabs.SizeSpec{Width: size.X, Height: size.Y}).Validate(); err != nil {
		return err
	}

	body := physics.NewBody(ctx.At, size)
	return ecs.Add(w, e, component.BodyComponent.Kind(), &body)
}

func addMotion(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.MotionComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode motion spec: %w", err)
	}

	motion := &component.Motion{
		Gravity:   ctx.World.Gravity,
		Damping:   ctx.World.Damping,
		MaxFall:   ctx.World.MaxFall,
		CheckFall: true,
		FallLimit: ctx.World.FallLimit,
	}
	if spec.Damping != nil {
		motion.Damping = *spec.Damping
	}
	if spec.CheckFall != nil {
		motion.CheckFall = *spec.CheckFall
	}
	return ecs.Add(w, e, component.MotionComponent.Kind(), motion)
}

func addState(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.StateComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode state spec: %w", err)
	}

	state := component.StateStanding
	if spec.Initial != "" {
		if state, err = component.ParseState(spec.Initial); err != nil {
			return err
		}
	}

	dir := component.DirectionRight
	switch spec.Facing {
	case "", "right":
	case "left":
		dir = component.DirectionLeft
	default:
		return fmt.Errorf("%w: facing must be left or right, got %q", prefabs.ErrInvalidSpec, spec.Facing)
	}

	if body, ok := ecs.Get(w, e, component.BodyComponent.Kind()); ok {
		body.FacesRight = dir == component.DirectionRight
		if pickup, ok := ecs.Get(w, e, component.PickupComponent.Kind()); ok && state == component.StateWalking {
			body.Velocity.X = dir.Sign() * pickup.Speed
		}
	}
	return ecs.Add(w, e, component.ActorStateComponent.Kind(), &component.ActorState{State: state, Direction: dir})
}

func addSprite(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.SpriteComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode sprite spec: %w", err)
	}

	glyph := '#'
	if spec.Glyph != "" {
		r, size := utf8.DecodeRuneInString(spec.Glyph)
		if size != len(spec.Glyph) {
			return fmt.Errorf("%w: glyph must be a single character, got %q", prefabs.ErrInvalidSpec, spec.Glyph)
		}
		glyph = r
	}
	return ecs.Add(w, e, component.SpriteComponent.Kind(), &component.Sprite{
		Color: spec.Color.NRGBA,
		Glyph: glyph,
		Layer: spec.Layer,
	})
}

func addCamera(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera spec: %w", err)
	}
	if spec.ViewWidth <= 0 {
		return fmt.Errorf("%w: camera view_width must be positive", prefabs.ErrInvalidSpec)
	}

	smooth := spec.Smoothness
	if smooth == 0 {
		smooth = 0.15
	}
	return ecs.Add(w, e, component.CameraComponent.Kind(), &component.Camera{
		ViewWidth:  spec.ViewWidth,
		Smoothness: smooth,
		MaxX:       ctx.LevelWidth,
	})
}
