package systems

import (
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
)

// AnimationSystem advances sprite sheet animations based on the game clock.
type AnimationSystem struct {
	ecs.BaseSystem
}

func NewAnimationSystem() *AnimationSystem {
	s := &AnimationSystem{}
	ecs.RequireComponent[components.Animation](&s.BaseSystem)
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	return s
}

func (s *AnimationSystem) Update(frame *ecs.UpdateFrame) {
	nowMs := frame.Elapsed.Milliseconds()

	for _, e := range s.Entities() {
		anim := ecs.GetComponent[components.Animation](e)
		sprite := ecs.GetComponent[components.Sprite](e)
		if anim.NumFrames <= 0 {
			continue
		}

		elapsed := max(nowMs-anim.StartTime.Milliseconds(), 0)
		frameIdx := int(elapsed * int64(anim.FrameSpeedRate) / 1000)
		if anim.IsLoop || frameIdx < anim.NumFrames {
			anim.CurrentFrame = frameIdx % anim.NumFrames
		} else {
			anim.CurrentFrame = anim.NumFrames - 1
		}
		sprite.SrcRect.X = anim.CurrentFrame * sprite.Width
	}
}
