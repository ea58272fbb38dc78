package system

import (
	"github.com/milk9111/platformer/common"
	"github.com/milk9111/platformer/ecs"
	"github.com/milk9111/platformer/ecs/component"
)

// CameraSystem keeps the player horizontally centred, eased by Smoothness
// and clamped to the level.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem { return &CameraSystem{} }

func (s *CameraSystem) Update(w *ecs.World, dt float64) {
	camEntity, ok := ecs.First(w, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cam, _ := ecs.Get(w, camEntity, component.CameraComponent.Kind())

	player, ok := ecs.First(w, component.PlayerTagComponent.Kind())
	if !ok {
		return
	}
	body, ok := ecs.Get(w, player, component.BodyComponent.Kind())
	if !ok {
		return
	}

	target := body.Position.X + body.Size.X/2 - cam.ViewWidth/2
	maxX := cam.MaxX - cam.ViewWidth
	if maxX < cam.MinX {
		maxX = cam.MinX
	}
	target = common.Clamp(target, cam.MinX, maxX)

	smooth := cam.Smoothness
	if smooth <= 0 || smooth > 1 {
		smooth = 1
	}
	cam.X = common.Lerp(cam.X, target, smooth)
}
