package level_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
	"github.com/plus3/chopper/internal/level"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *ecs.Registry {
	types := ecs.NewComponentRegistry()
	components.Register(types)
	return ecs.NewRegistry(types)
}

func TestParseTileMap(t *testing.T) {
	m := level.TileMap{Cols: 3, Rows: 2, TileSize: 32, Scale: 2}

	t.Run("codes are row then column", func(t *testing.T) {
		tiles, err := level.ParseTileMap(strings.NewReader("21,00,13\n\n05,10,99\n"), m)
		require.NoError(t, err)
		assert.Equal(t, [][]level.Tile{
			{{SrcRow: 2, SrcCol: 1}, {SrcRow: 0, SrcCol: 0}, {SrcRow: 1, SrcCol: 3}},
			{{SrcRow: 0, SrcCol: 5}, {SrcRow: 1, SrcCol: 0}, {SrcRow: 9, SrcCol: 9}},
		}, tiles)
	})

	t.Run("trailing commas and spaces are accepted", func(t *testing.T) {
		_, err := level.ParseTileMap(strings.NewReader("21, 00, 13,\r\n05,10,99"), m)
		assert.NoError(t, err)
	})

	tests := []struct {
		name  string
		input string
	}{
		{"too few rows", "21,00,13\n"},
		{"too many rows", "21,00,13\n21,00,13\n21,00,13\n"},
		{"short row", "21,00\n21,00,13\n"},
		{"bad code", "21,0x,13\n21,00,13\n"},
		{"three digit code", "21,000,13\n21,00,13\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := level.ParseTileMap(strings.NewReader(tt.input), m)
			assert.Error(t, err)
		})
	}

	t.Run("non positive size", func(t *testing.T) {
		_, err := level.ParseTileMap(strings.NewReader(""), level.TileMap{})
		assert.Error(t, err)
	})
}

func TestSpawnTiles(t *testing.T) {
	r := newRegistry()
	m := level.TileMap{Texture: "tilemap-texture", Cols: 2, Rows: 1, TileSize: 32, Scale: 2}

	bounds := level.SpawnTiles(r, m, [][]level.Tile{{{SrcRow: 0, SrcCol: 0}, {SrcRow: 2, SrcCol: 1}}})

	assert.Equal(t, components.MapBounds{Width: 128, Height: 64}, bounds)
	require.Equal(t, 2, r.EntityCount())

	second := r.Entity(1)
	assert.Equal(t, components.Transform{
		Position: components.Vec2{X: 64, Y: 0},
		Scale:    components.Vec2{X: 2, Y: 2},
	}, *ecs.GetComponent[components.Transform](second))
	sprite := ecs.GetComponent[components.Sprite](second)
	assert.Equal(t, "tilemap-texture", sprite.AssetID)
	assert.Equal(t, 0, sprite.ZIndex)
	assert.Equal(t, components.Rect{X: 32, Y: 64, W: 32, H: 32}, sprite.SrcRect)
}

const testLevel = `
name: test
textures:
  - id: chopper-texture
    path: images/chopper-spritesheet.png
  - id: tilemap-texture
    path: tilemaps/jungle.png
tilemap:
  file: tiny.map
  texture: tilemap-texture
  cols: 2
  rows: 2
  tile_size: 32
  scale: 1.0
entities:
  - name: chopper
    transform: {position: [240, 108], scale: [1.2, 1.2]}
    rigid_body: {velocity: [0, 0]}
    sprite: {asset: chopper-texture, width: 32, height: 32, z: 3}
    animation: {frames: 2, rate: 10}
    box_collider: {offset: [0, 5], width: 32, height: 25}
    health: 100
    camera_follow: true
    keyboard_controlled: {up: [0, -60], right: [60, 0], down: [0, 60], left: [-60, 0]}
    projectile_emitter: {velocity: [100, 100], duration: 5, loop: true, friendly: true}
  - name: base
    transform: {position: [240, 115]}
    sprite: {asset: base-texture, width: 32, height: 32, z: 1}
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testLevel), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tiny.map"), []byte("00,01\n10,11\n"), 0o644))

	lvl, err := level.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", lvl.Name)
	assert.Equal(t, []level.Texture{
		{ID: "chopper-texture", Path: "images/chopper-spritesheet.png"},
		{ID: "tilemap-texture", Path: "tilemaps/jungle.png"},
	}, lvl.Textures)

	r := newRegistry()
	bounds, err := lvl.Spawn(r, 2*time.Second)
	require.NoError(t, err)
	assert.Equal(t, components.MapBounds{Width: 64, Height: 64}, bounds)
	assert.Equal(t, 6, r.EntityCount())

	chopper := r.Entity(4)
	assert.Equal(t, components.Vec2{X: 1.2, Y: 1.2}, ecs.GetComponent[components.Transform](chopper).Scale)
	assert.Equal(t, components.Animation{NumFrames: 2, FrameSpeedRate: 10, IsLoop: true, StartTime: 2 * time.Second},
		*ecs.GetComponent[components.Animation](chopper))
	assert.Equal(t, components.Health{Percentage: 100}, *ecs.GetComponent[components.Health](chopper))
	assert.True(t, ecs.HasComponent[components.CameraFollow](chopper))
	assert.Equal(t, components.Vec2{X: -60}, ecs.GetComponent[components.KeyboardControlled](chopper).Left)
	assert.Equal(t, components.ProjectileEmitter{
		Velocity:   components.Vec2{X: 100, Y: 100},
		Duration:   5 * time.Second,
		ShouldLoop: true,
		IsFriendly: true,
	}, *ecs.GetComponent[components.ProjectileEmitter](chopper))

	base := r.Entity(5)
	assert.Equal(t, components.Vec2{X: 1, Y: 1}, ecs.GetComponent[components.Transform](base).Scale, "scale defaults to one")
	assert.False(t, ecs.HasComponent[components.RigidBody](base))
	assert.False(t, ecs.HasComponent[components.BoxCollider](base))
}

func TestLoadErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := level.Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	tests := []struct {
		name string
		body string
	}{
		{"malformed yaml", "entities: [\n"},
		{"duplicate texture", "textures:\n  - {id: a, path: x}\n  - {id: a, path: y}\n"},
		{"texture without id", "textures:\n  - {path: x}\n"},
		{"bad tile size", "tilemap: {file: x.map, cols: 1, rows: 1, tile_size: 0, scale: 1}\n"},
		{"animation without frames", "entities:\n  - {name: x, animation: {frames: 0, rate: 1}}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := level.Parse([]byte(tt.body))
			assert.Error(t, err)
		})
	}

	t.Run("missing tile map file", func(t *testing.T) {
		lvl, err := level.Parse([]byte("tilemap: {file: /nonexistent/x.map, cols: 1, rows: 1, tile_size: 32, scale: 1}\n"))
		require.NoError(t, err)
		_, err = lvl.Spawn(newRegistry(), 0)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestShippedLevel(t *testing.T) {
	lvl, err := level.Load(filepath.Join("..", "..", "assets", "levels", "jungle.yaml"))
	require.NoError(t, err)

	r := newRegistry()
	bounds, err := lvl.Spawn(r, 0)
	require.NoError(t, err)

	assert.Equal(t, components.MapBounds{Width: 1600, Height: 1280}, bounds)
	assert.Equal(t, 25*20+len(lvl.Entities), r.EntityCount())
}
