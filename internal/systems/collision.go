package systems

import (
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/ecs/event"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/events"
	"go.uber.org/zap"
)

// CollisionSystem tests every pair of colliders against each other and
// emits a CollisionEvent for each overlapping pair.
type CollisionSystem struct {
	ecs.BaseSystem
	log *zap.Logger
}

func NewCollisionSystem(log *zap.Logger) *CollisionSystem {
	if log == nil {
		log = zap.NewNop()
	}
	s := &CollisionSystem{log: log}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.BoxCollider](&s.BaseSystem)
	return s
}

func (s *CollisionSystem) Update(frame *ecs.UpdateFrame) {
	entities := s.Entities()

	for i, a := range entities {
		aTransform := *ecs.GetComponent[components.Transform](a)
		aCollider := *ecs.GetComponent[components.BoxCollider](a)
		ax, ay, aw, ah := aCollider.Bounds(aTransform)

		for _, b := range entities[i+1:] {
			bTransform := *ecs.GetComponent[components.Transform](b)
			bCollider := *ecs.GetComponent[components.BoxCollider](b)
			bx, by, bw, bh := bCollider.Bounds(bTransform)

			if !CheckAABBCollision(ax, ay, aw, ah, bx, by, bw, bh) {
				continue
			}

			s.log.Debug("collision",
				zap.Stringer("a", a),
				zap.Stringer("b", b))
			event.Emit(frame.Events, events.CollisionEvent{A: a, B: b})
		}
	}
}

// CheckAABBCollision reports whether two axis-aligned boxes overlap. Boxes
// that only touch along an edge do not collide.
func CheckAABBCollision(aX, aY, aW, aH, bX, bY, bW, bH float64) bool {
	return aX < bX+bW &&
		aX+aW > bX &&
		aY < bY+bH &&
		aY+aH > bY
}
