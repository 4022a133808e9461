// Package level loads level descriptions and spawns their entities.
package level

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
	"gopkg.in/yaml.v3"
)

// Level is the content of a level file.
type Level struct {
	Name     string    `yaml:"name"`
	Textures []Texture `yaml:"textures"`
	TileMap  *TileMap  `yaml:"tilemap"`
	Entities []Entity  `yaml:"entities"`

	dir string
}

// Texture maps an asset id to an image path relative to the asset root.
type Texture struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"`
}

// Vec is written as a two element flow sequence, e.g. [240, 115].
type Vec [2]float64

func (v Vec) vec2() components.Vec2 {
	return components.Vec2{X: v[0], Y: v[1]}
}

// Entity is a prefab: every non-nil block becomes a component.
type Entity struct {
	Name               string                `yaml:"name"`
	Transform          *TransformDef         `yaml:"transform"`
	RigidBody          *RigidBodyDef         `yaml:"rigid_body"`
	Sprite             *SpriteDef            `yaml:"sprite"`
	BoxCollider        *BoxColliderDef       `yaml:"box_collider"`
	Health             *int                  `yaml:"health"`
	Animation          *AnimationDef         `yaml:"animation"`
	CameraFollow       bool                  `yaml:"camera_follow"`
	KeyboardControlled *KeyboardDef          `yaml:"keyboard_controlled"`
	ProjectileEmitter  *ProjectileEmitterDef `yaml:"projectile_emitter"`
}

type TransformDef struct {
	Position Vec     `yaml:"position"`
	Scale    *Vec    `yaml:"scale"`
	Rotation float64 `yaml:"rotation"`
}

type RigidBodyDef struct {
	Velocity Vec `yaml:"velocity"`
}

type SpriteDef struct {
	Asset  string `yaml:"asset"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Z      int    `yaml:"z"`
	Fixed  bool   `yaml:"fixed"`
	SrcX   int    `yaml:"src_x"`
	SrcY   int    `yaml:"src_y"`
}

type BoxColliderDef struct {
	Offset Vec `yaml:"offset"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type AnimationDef struct {
	Frames int   `yaml:"frames"`
	Rate   int   `yaml:"rate"`
	Loop   *bool `yaml:"loop"`
}

type KeyboardDef struct {
	Up    Vec `yaml:"up"`
	Right Vec `yaml:"right"`
	Down  Vec `yaml:"down"`
	Left  Vec `yaml:"left"`
}

type ProjectileEmitterDef struct {
	Velocity Vec     `yaml:"velocity"`
	Duration float64 `yaml:"duration"` // seconds
	Loop     bool    `yaml:"loop"`
	Friendly bool    `yaml:"friendly"`
}

// Load reads a level file. Relative tile map paths are resolved against the
// directory of the level file.
func Load(path string) (*Level, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	lvl, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	lvl.dir = filepath.Dir(path)
	return lvl, nil
}

// Parse decodes and validates level YAML.
func Parse(raw []byte) (*Level, error) {
	var lvl Level
	if err := yaml.Unmarshal(raw, &lvl); err != nil {
		return nil, fmt.Errorf("parse level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) validate() error {
	seen := make(map[string]bool, len(l.Textures))
	for _, tex := range l.Textures {
		if tex.ID == "" {
			return fmt.Errorf("texture with path %q has no id", tex.Path)
		}
		if seen[tex.ID] {
			return fmt.Errorf("duplicate texture id %q", tex.ID)
		}
		seen[tex.ID] = true
	}
	if l.TileMap != nil && (l.TileMap.TileSize <= 0 || l.TileMap.Scale <= 0) {
		return fmt.Errorf("tilemap tile_size and scale must be positive")
	}
	for i, e := range l.Entities {
		if e.Animation != nil && e.Animation.Frames <= 0 {
			return fmt.Errorf("entity %d (%s): animation needs at least one frame", i, e.Name)
		}
	}
	return nil
}

// Spawn creates the tile map and every entity of the level in r. now is
// the game clock value used as the start time of animations. The returned
// bounds are zero when the level has no tile map.
func (l *Level) Spawn(r *ecs.Registry, now time.Duration) (components.MapBounds, error) {
	var bounds components.MapBounds
	if l.TileMap != nil {
		path := l.TileMap.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(l.dir, path)
		}
		f, err := os.Open(path)
		if err != nil {
			return bounds, fmt.Errorf("open tile map: %w", err)
		}
		defer f.Close()

		tiles, err := ParseTileMap(f, *l.TileMap)
		if err != nil {
			return bounds, fmt.Errorf("tile map %s: %w", path, err)
		}
		bounds = SpawnTiles(r, *l.TileMap, tiles)
	}

	for _, def := range l.Entities {
		def.spawn(r, now)
	}
	return bounds, nil
}

func (d Entity) spawn(r *ecs.Registry, now time.Duration) ecs.Entity {
	e := r.CreateEntity()

	if d.Transform != nil {
		scale := components.Vec2{X: 1, Y: 1}
		if d.Transform.Scale != nil {
			scale = d.Transform.Scale.vec2()
		}
		ecs.AddComponent(e, components.Transform{
			Position: d.Transform.Position.vec2(),
			Scale:    scale,
			Rotation: d.Transform.Rotation,
		})
	}
	if d.RigidBody != nil {
		ecs.AddComponent(e, components.RigidBody{Velocity: d.RigidBody.Velocity.vec2()})
	}
	if s := d.Sprite; s != nil {
		ecs.AddComponent(e, components.NewSprite(s.Asset, s.Width, s.Height, s.Z, s.Fixed, s.SrcX, s.SrcY))
	}
	if c := d.BoxCollider; c != nil {
		ecs.AddComponent(e, components.BoxCollider{Offset: c.Offset.vec2(), Width: c.Width, Height: c.Height})
	}
	if d.Health != nil {
		ecs.AddComponent(e, components.Health{Percentage: *d.Health})
	}
	if a := d.Animation; a != nil {
		loop := true
		if a.Loop != nil {
			loop = *a.Loop
		}
		ecs.AddComponent(e, components.Animation{
			NumFrames:      a.Frames,
			FrameSpeedRate: a.Rate,
			IsLoop:         loop,
			StartTime:      now,
		})
	}
	if d.CameraFollow {
		ecs.AddComponent(e, components.CameraFollow{})
	}
	if k := d.KeyboardControlled; k != nil {
		ecs.AddComponent(e, components.KeyboardControlled{
			Up:    k.Up.vec2(),
			Right: k.Right.vec2(),
			Down:  k.Down.vec2(),
			Left:  k.Left.vec2(),
		})
	}
	if p := d.ProjectileEmitter; p != nil {
		ecs.AddComponent(e, components.ProjectileEmitter{
			Velocity:   p.Velocity.vec2(),
			Duration:   time.Duration(p.Duration * float64(time.Second)),
			ShouldLoop: p.Loop,
			IsFriendly: p.Friendly,
		})
	}
	return e
}
