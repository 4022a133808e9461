// Package components defines the component and singleton types of the
// chopper game.
package components

import (
	"math"
	"time"

	"github.com/plus3/chopper/ecs"
)

// Vec2 is a 2D vector in world pixels.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalize returns the unit vector pointing along v. The zero vector has no
// direction and is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// Rect is an integer rectangle in texture or screen pixels.
type Rect struct {
	X, Y, W, H int
}

type Transform struct {
	Position Vec2
	Scale    Vec2
	Rotation float64
}

type RigidBody struct {
	Velocity Vec2
}

// Sprite draws a region of a texture. SrcRect selects the frame within the
// sheet; Width and Height are the frame size before scaling. Fixed sprites
// are drawn in screen space and ignore the camera.
type Sprite struct {
	AssetID string
	Width   int
	Height  int
	ZIndex  int
	IsFixed bool
	SrcRect Rect
}

// NewSprite returns a sprite whose source rectangle starts at (srcX, srcY)
// and spans one frame.
func NewSprite(assetID string, width, height, zIndex int, fixed bool, srcX, srcY int) Sprite {
	return Sprite{
		AssetID: assetID,
		Width:   width,
		Height:  height,
		ZIndex:  zIndex,
		IsFixed: fixed,
		SrcRect: Rect{X: srcX, Y: srcY, W: width, H: height},
	}
}

// BoxCollider is an axis-aligned box relative to the entity position.
type BoxCollider struct {
	Offset Vec2
	Width  int
	Height int
}

// Bounds returns the collider box in world coordinates.
func (c BoxCollider) Bounds(t Transform) (x, y, w, h float64) {
	return t.Position.X + c.Offset.X, t.Position.Y + c.Offset.Y, float64(c.Width), float64(c.Height)
}

type Health struct {
	Percentage int
}

// Animation cycles the sprite's source rectangle through NumFrames columns.
// FrameSpeedRate is in frames per second; StartTime is the game clock value
// the animation started at.
type Animation struct {
	NumFrames      int
	CurrentFrame   int
	FrameSpeedRate int
	IsLoop         bool
	StartTime      time.Duration
}

// CameraFollow marks the entity the camera tracks.
type CameraFollow struct{}

// KeyboardControlled holds the velocity applied for each arrow key.
type KeyboardControlled struct {
	Up    Vec2
	Right Vec2
	Down  Vec2
	Left  Vec2
}

// ProjectileEmitter fires projectiles. Duration is the projectile lifetime.
type ProjectileEmitter struct {
	Velocity   Vec2
	Duration   time.Duration
	ShouldLoop bool
	IsFriendly bool
}

// Projectile is attached to emitted projectiles so they can expire.
type Projectile struct {
	IsFriendly bool
	Duration   time.Duration
	StartTime  time.Duration
}

// Expired reports whether the projectile has outlived its duration at time
// now. A zero duration never expires.
func (p Projectile) Expired(now time.Duration) bool {
	return p.Duration > 0 && now-p.StartTime >= p.Duration
}

// Camera is the visible region of the world, in world pixels.
type Camera struct {
	Rect
}

// MapBounds is the size of the loaded tile map in world pixels.
type MapBounds struct {
	Width  int
	Height int
}

// Register adds every component type of the game to r.
func Register(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Transform](r)
	ecs.RegisterComponent[RigidBody](r)
	ecs.RegisterComponent[Sprite](r)
	ecs.RegisterComponent[BoxCollider](r)
	ecs.RegisterComponent[Health](r)
	ecs.RegisterComponent[Animation](r)
	ecs.RegisterComponent[CameraFollow](r)
	ecs.RegisterComponent[KeyboardControlled](r)
	ecs.RegisterComponent[ProjectileEmitter](r)
	ecs.RegisterComponent[Projectile](r)
}
