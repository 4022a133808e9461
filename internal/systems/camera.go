package systems

import (
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
)

// CameraMovementSystem centres the camera on the entity marked with
// CameraFollow and keeps the view inside the map.
type CameraMovementSystem struct {
	ecs.BaseSystem
	Camera ecs.Singleton[components.Camera]
	Bounds ecs.Singleton[components.MapBounds]
}

func NewCameraMovementSystem() *CameraMovementSystem {
	s := &CameraMovementSystem{}
	ecs.RequireComponent[components.CameraFollow](&s.BaseSystem)
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	return s
}

func (s *CameraMovementSystem) Update(frame *ecs.UpdateFrame) {
	camera := s.Camera.Get()
	if camera == nil {
		return
	}
	var bounds components.MapBounds
	if b := s.Bounds.Get(); b != nil {
		bounds = *b
	}

	for _, e := range s.Entities() {
		transform := ecs.GetComponent[components.Transform](e)
		follow(camera, bounds, transform.Position)
	}
}

// follow moves the camera so that target sits in the middle of the view.
// The camera stops tracking along an axis once the far half of the view
// would leave the map, and is never moved outside the map.
func follow(camera *components.Camera, bounds components.MapBounds, target components.Vec2) {
	halfW, halfH := camera.W/2, camera.H/2

	if bounds.Width == 0 || target.X+float64(halfW) < float64(bounds.Width) {
		camera.X = int(target.X) - halfW
	}
	if bounds.Height == 0 || target.Y+float64(halfH) < float64(bounds.Height) {
		camera.Y = int(target.Y) - halfH
	}

	maxX, maxY := camera.W, camera.H
	if bounds.Width > 0 {
		maxX = max(bounds.Width-camera.W, 0)
	}
	if bounds.Height > 0 {
		maxY = max(bounds.Height-camera.H, 0)
	}

	camera.X = min(max(camera.X, 0), maxX)
	camera.Y = min(max(camera.Y, 0), maxY)
}
