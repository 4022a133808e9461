package level

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/plus3/chopper/ecs"
	"github.com/plus3/chopper/internal/components"
)

// TileMap describes how a .map file is laid out and drawn.
type TileMap struct {
	File     string  `yaml:"file"`
	Texture  string  `yaml:"texture"`
	Cols     int     `yaml:"cols"`
	Rows     int     `yaml:"rows"`
	TileSize int     `yaml:"tile_size"`
	Scale    float64 `yaml:"scale"`
}

// Tile is one cell of a parsed map: the row and column of its image in the
// tile sheet.
type Tile struct {
	SrcRow int
	SrcCol int
}

// ParseTileMap reads rows of comma separated two digit codes. The first
// digit of a code is the source row in the tile sheet, the second the
// source column. Exactly m.Rows rows of m.Cols codes are required; blank
// lines are ignored.
func ParseTileMap(r io.Reader, m TileMap) ([][]Tile, error) {
	if m.Cols <= 0 || m.Rows <= 0 {
		return nil, fmt.Errorf("tile map size %dx%d must be positive", m.Cols, m.Rows)
	}

	tiles := make([][]Tile, 0, m.Rows)
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if len(tiles) == m.Rows {
			return nil, fmt.Errorf("line %d: more than %d rows", line, m.Rows)
		}

		codes := strings.Split(strings.TrimSuffix(text, ","), ",")
		if len(codes) != m.Cols {
			return nil, fmt.Errorf("line %d: got %d tiles, want %d", line, len(codes), m.Cols)
		}

		row := make([]Tile, m.Cols)
		for x, code := range codes {
			code = strings.TrimSpace(code)
			if len(code) != 2 || !isDigit(code[0]) || !isDigit(code[1]) {
				return nil, fmt.Errorf("line %d, column %d: invalid tile code %q", line, x+1, code)
			}
			row[x] = Tile{SrcRow: int(code[0] - '0'), SrcCol: int(code[1] - '0')}
		}
		tiles = append(tiles, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read tile map: %w", err)
	}
	if len(tiles) != m.Rows {
		return nil, fmt.Errorf("got %d rows, want %d", len(tiles), m.Rows)
	}
	return tiles, nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// SpawnTiles creates one entity per tile and returns the size of the map in
// world pixels.
func SpawnTiles(r *ecs.Registry, m TileMap, tiles [][]Tile) components.MapBounds {
	step := m.Scale * float64(m.TileSize)
	for y, row := range tiles {
		for x, tile := range row {
			e := r.CreateEntity()
			ecs.AddComponent(e, components.Transform{
				Position: components.Vec2{X: float64(x) * step, Y: float64(y) * step},
				Scale:    components.Vec2{X: m.Scale, Y: m.Scale},
			})
			ecs.AddComponent(e, components.NewSprite(m.Texture, m.TileSize, m.TileSize, 0, false,
				tile.SrcCol*m.TileSize, tile.SrcRow*m.TileSize))
		}
	}
	return components.MapBounds{
		Width:  int(float64(m.Cols) * step),
		Height: int(float64(m.Rows) * step),
	}
}
