package system

import "github.com/milk9111/platformer/ecs"

// PipelineConfig carries the external collaborators the simulation needs.
type PipelineConfig struct {
	Tiles    TileSource
	Commands CommandSource
	Spawner  PickupSpawner
	Scripts  ScriptLoader
}

// Pipeline is the ordered system list for one level. The concrete systems
// are kept so owners can reach the ones with runtime knobs.
type Pipeline struct {
	*ecs.Scheduler
	Physics *PhysicsSystem
	Enemies *EnemySystem
}

// NewPipeline wires the simulation in tick order: commands first, then
// physics and the rules that read its results, then scripted sequences and
// clocks. Removals queued along the way are flushed by the scheduler.
func NewPipeline(cfg PipelineConfig) *Pipeline {
	physicsSystem := NewPhysicsSystem(cfg.Tiles)
	enemies := NewEnemySystem(cfg.Scripts)

	sched := ecs.NewScheduler(
		NewInputSystem(cfg.Commands),
		NewCommandSystem(),
		enemies,
		physicsSystem,
		NewCombatSystem(),
		NewPickupCollectSystem(),
		NewLevelEndSystem(),
		NewObstacleSystem(cfg.Spawner),
		NewInvulnerableSystem(),
		NewTimelineSystem(),
		NewStateTimeSystem(),
		NewCameraSystem(),
	)
	return &Pipeline{Scheduler: sched, Physics: physicsSystem, Enemies: enemies}
}
