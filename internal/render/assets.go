// Package render draws the chopper game with ebiten.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// placeholderSize is the edge length of the image used for missing textures.
const placeholderSize = 32

// AssetStore holds the textures of the game keyed by asset id.
type AssetStore struct {
	root     string
	textures map[string]*ebiten.Image
	missing  map[string]bool
	log      *zap.Logger
}

// NewAssetStore creates a store that resolves relative texture paths
// against root.
func NewAssetStore(root string, log *zap.Logger) *AssetStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &AssetStore{
		root:     root,
		textures: make(map[string]*ebiten.Image),
		missing:  make(map[string]bool),
		log:      log,
	}
}

// AddTexture decodes the image at path and stores it under id. A file that
// does not exist is replaced by a placeholder so the game stays playable
// without its art; any other failure is returned.
func (s *AssetStore) AddTexture(id, path string) error {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.root, path)
	}

	img, err := LoadImage(path)
	switch {
	case err == nil:
		delete(s.missing, id)
	case errors.Is(err, fs.ErrNotExist):
		s.log.Warn("texture missing, using placeholder",
			zap.String("id", id),
			zap.String("path", path))
		img = Placeholder(id)
		s.missing[id] = true
	default:
		return fmt.Errorf("load texture %q: %w", id, err)
	}

	s.textures[id] = ebiten.NewImageFromImage(img)
	s.log.Debug("texture added", zap.String("id", id), zap.String("path", path))
	return nil
}

// Texture returns the texture stored under id, or nil.
func (s *AssetStore) Texture(id string) *ebiten.Image {
	return s.textures[id]
}

// IDs returns the ids of every stored texture in sorted order.
func (s *AssetStore) IDs() []string {
	ids := make([]string, 0, len(s.textures))
	for id := range s.textures {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// IsPlaceholder reports whether id was loaded from a missing file.
func (s *AssetStore) IsPlaceholder(id string) bool {
	return s.missing[id]
}

// Clear deallocates every stored texture.
func (s *AssetStore) Clear() {
	for _, tex := range s.textures {
		tex.Deallocate()
	}
	clear(s.textures)
	clear(s.missing)
}

// LoadImage decodes the image file at path.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// Placeholder returns a checkerboard image tinted by a colour derived from
// id, so different missing textures stay distinguishable.
func Placeholder(id string) image.Image {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h = (h ^ uint32(id[i])) * 16777619
	}
	tint := color.RGBA{R: uint8(h), G: uint8(h >> 8), B: uint8(h >> 16), A: 255}
	dark := color.RGBA{R: tint.R / 2, G: tint.G / 2, B: tint.B / 2, A: 255}

	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	for y := range placeholderSize {
		for x := range placeholderSize {
			if (x/8+y/8)%2 == 0 {
				img.SetRGBA(x, y, tint)
			} else {
				img.SetRGBA(x, y, dark)
			}
		}
	}
	return img
}
