package assets

import (
	"errors"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"voxelview/internal/logger"
	"voxelview/internal/raster"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// ErrNoTextures is returned when there is nothing to build an array from.
var ErrNoTextures = errors.New("no textures to load")

var textureExts = map[string]bool{".png": true, ".bmp": true, ".webp": true}

// LoadTextureArray decodes every path into one layer, in order. Layers are
// resampled with nearest filtering to size x size; size <= 0 adopts the size
// of the first image.
func LoadTextureArray(paths []string, size int) (*raster.TextureArray, error) {
	if len(paths) == 0 {
		return nil, ErrNoTextures
	}
	layers := make([]*image.NRGBA, 0, len(paths))
	for _, path := range paths {
		img, err := decodeFile(path)
		if err != nil {
			return nil, err
		}
		if size <= 0 {
			size = img.Bounds().Dx()
		}
		if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
			logger.Log.Debug("Resampling texture",
				zap.String("path", path),
				zap.Int("width", b.Dx()),
				zap.Int("height", b.Dy()),
				zap.Int("size", size))
		}
		layers = append(layers, toLayer(img, size))
	}

	ta, err := raster.NewTextureArray(layers)
	if err != nil {
		return nil, fmt.Errorf("building texture array: %w", err)
	}
	logger.Log.Info("Loaded texture array",
		zap.Int("layers", ta.Len()),
		zap.Int("size", size))
	return ta, nil
}

// LoadTextureDir loads every supported image in dir, sorted by file name, and
// returns the layer index of each name without its extension.
func LoadTextureDir(dir string, size int) (*raster.TextureArray, map[string]int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("reading texture dir: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !textureExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)

	ta, err := LoadTextureArray(paths, size)
	if err != nil {
		return nil, nil, err
	}
	index := make(map[string]int, len(paths))
	for i, p := range paths {
		base := filepath.Base(p)
		index[strings.TrimSuffix(base, filepath.Ext(base))] = i
	}
	return ta, index, nil
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}
	return img, nil
}

func toLayer(img image.Image, size int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, size, size))
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
		return dst
	}
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}
