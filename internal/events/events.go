// Package events defines the events exchanged by the chopper game systems.
package events

import "github.com/plus3/chopper/ecs"

// CollisionEvent is emitted once for every pair of overlapping colliders.
// A is the entity that comes first in the collision system's match set.
type CollisionEvent struct {
	A ecs.Entity
	B ecs.Entity
}

// Key identifies a keyboard key independent of the windowing library.
type Key int

const (
	KeyUnknown Key = iota
	KeyUp
	KeyRight
	KeyDown
	KeyLeft
	KeySpace
	KeyC
	KeyEscape
)

var keyNames = [...]string{
	KeyUnknown: "unknown",
	KeyUp:      "up",
	KeyRight:   "right",
	KeyDown:    "down",
	KeyLeft:    "left",
	KeySpace:   "space",
	KeyC:       "c",
	KeyEscape:  "escape",
}

func (k Key) String() string {
	if k < 0 || int(k) >= len(keyNames) {
		return keyNames[KeyUnknown]
	}
	return keyNames[k]
}

type KeyPressedEvent struct {
	Key Key
}

type KeyReleasedEvent struct {
	Key Key
}
