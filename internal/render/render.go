package render

import (
	"cmp"
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
)

// Canvas is a singleton holding the image the render systems draw into.
// The game driver points it at the screen before running them.
type Canvas struct {
	Screen *ebiten.Image
}

// BackgroundColor fills the screen before anything else is drawn.
var BackgroundColor = color.RGBA{R: 21, G: 21, B: 21, A: 255}

// ColliderColor outlines collider boxes.
var ColliderColor = color.RGBA{R: 255, A: 255}

// Renderable is one sprite to draw.
type Renderable struct {
	Transform components.Transform
	Sprite    components.Sprite
}

// SortRenderables orders sprites back to front. Sprites with the same
// z-index keep their relative order.
func SortRenderables(items []Renderable) {
	slices.SortStableFunc(items, func(a, b Renderable) int {
		return cmp.Compare(a.Sprite.ZIndex, b.Sprite.ZIndex)
	})
}

// ScreenPosition converts a world position to screen space. Fixed sprites
// ignore the camera.
func ScreenPosition(pos components.Vec2, camera components.Camera, fixed bool) components.Vec2 {
	if fixed {
		return pos
	}
	return components.Vec2{X: pos.X - float64(camera.X), Y: pos.Y - float64(camera.Y)}
}

// RenderSystem draws every sprite onto the canvas, sorted by z-index.
type RenderSystem struct {
	ecs.BaseSystem
	Camera ecs.Singleton[components.Camera]
	Canvas ecs.Singleton[Canvas]

	assets *AssetStore
	items  []Renderable
}

func NewRenderSystem(assets *AssetStore) *RenderSystem {
	s := &RenderSystem{assets: assets}
	ecs.RequireComponent[components.Sprite](&s.BaseSystem)
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	return s
}

func (s *RenderSystem) Update(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get()
	if canvas == nil || canvas.Screen == nil {
		return
	}
	var camera components.Camera
	if c := s.Camera.Get(); c != nil {
		camera = *c
	}

	s.items = s.items[:0]
	for _, e := range s.Entities() {
		s.items = append(s.items, Renderable{
			Transform: *ecs.GetComponent[components.Transform](e),
			Sprite:    *ecs.GetComponent[components.Sprite](e),
		})
	}
	SortRenderables(s.items)

	for _, item := range s.items {
		s.draw(canvas.Screen, item, camera)
	}
}

func (s *RenderSystem) draw(screen *ebiten.Image, item Renderable, camera components.Camera) {
	tex := s.assets.Texture(item.Sprite.AssetID)
	if tex == nil {
		return
	}

	sprite := item.Sprite
	transform := item.Transform

	src := tex
	srcW, srcH := float64(sprite.Width), float64(sprite.Height)
	if s.assets.IsPlaceholder(sprite.AssetID) {
		b := tex.Bounds()
		srcW, srcH = float64(b.Dx()), float64(b.Dy())
	} else {
		r := sprite.SrcRect
		src = tex.SubImage(image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)).(*ebiten.Image)
	}
	if srcW == 0 || srcH == 0 {
		return
	}

	dstW := float64(sprite.Width) * transform.Scale.X
	dstH := float64(sprite.Height) * transform.Scale.Y
	pos := ScreenPosition(transform.Position, camera, sprite.IsFixed)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dstW/srcW, dstH/srcH)
	if transform.Rotation != 0 {
		op.GeoM.Translate(-dstW/2, -dstH/2)
		op.GeoM.Rotate(transform.Rotation * math.Pi / 180)
		op.GeoM.Translate(dstW/2, dstH/2)
	}
	op.GeoM.Translate(math.Trunc(pos.X), math.Trunc(pos.Y))
	screen.DrawImage(src, op)
}

// RenderColliderSystem outlines every collider box in red.
type RenderColliderSystem struct {
	ecs.BaseSystem
	Camera ecs.Singleton[components.Camera]
	Canvas ecs.Singleton[Canvas]
}

func NewRenderColliderSystem() *RenderColliderSystem {
	s := &RenderColliderSystem{}
	ecs.RequireComponent[components.Transform](&s.BaseSystem)
	ecs.RequireComponent[components.BoxCollider](&s.BaseSystem)
	return s
}

func (s *RenderColliderSystem) Update(frame *ecs.UpdateFrame) {
	canvas := s.Canvas.Get()
	if canvas == nil || canvas.Screen == nil {
		return
	}
	var camera components.Camera
	if c := s.Camera.Get(); c != nil {
		camera = *c
	}

	for _, e := range s.Entities() {
		transform := ecs.GetComponent[components.Transform](e)
		collider := ecs.GetComponent[components.BoxCollider](e)

		x, y, w, h := collider.Bounds(*transform)
		pos := ScreenPosition(components.Vec2{X: x, Y: y}, camera, false)
		vector.StrokeRect(canvas.Screen, float32(int(pos.X)), float32(int(pos.Y)), float32(w), float32(h), 1, ColliderColor, false)
	}
}
