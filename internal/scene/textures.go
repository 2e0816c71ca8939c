package scene

import (
	"fmt"
	"image"
	"image/color"
	"math/rand"

	"voxelview/internal/assets"
	"voxelview/internal/raster"
)

// Texture layers of the fixture scene.
const (
	LayerGrassTop = iota
	LayerGrassSide
	LayerDirt
	LayerStone
	LayerWater
	LayerTallGrass
	layerCount
)

const texSize = 16

// LayerNames maps file-style names to layers so a texture directory can
// replace the procedural set.
var LayerNames = map[string]int{
	"grass_block_top":  LayerGrassTop,
	"grass_block_side": LayerGrassSide,
	"dirt":             LayerDirt,
	"stone":            LayerStone,
	"water_still":      LayerWater,
	"short_grass":      LayerTallGrass,
}

// Textures builds a procedural texture array for the fixture scene.
func Textures() *raster.TextureArray {
	rng := rand.New(rand.NewSource(1))
	layers := make([]*image.NRGBA, layerCount)
	layers[LayerGrassTop] = noisy(rng, color.NRGBA{150, 150, 150, 255}, 30)
	layers[LayerDirt] = noisy(rng, color.NRGBA{134, 96, 67, 255}, 25)
	layers[LayerStone] = noisy(rng, color.NRGBA{125, 125, 125, 255}, 20)
	layers[LayerWater] = noisy(rng, color.NRGBA{200, 200, 200, 255}, 10)

	side := noisy(rng, color.NRGBA{134, 96, 67, 255}, 25)
	for y := 0; y < 4; y++ {
		for x := 0; x < texSize; x++ {
			side.SetNRGBA(x, y, color.NRGBA{95, 159, 53, 255})
		}
	}
	layers[LayerGrassSide] = side

	// blades on a transparent background exercise the alpha cutout
	blades := image.NewNRGBA(image.Rect(0, 0, texSize, texSize))
	for x := 1; x < texSize; x += 3 {
		top := 2 + rng.Intn(8)
		for y := top; y < texSize; y++ {
			blades.SetNRGBA(x, y, color.NRGBA{170, 170, 170, 255})
		}
	}
	layers[LayerTallGrass] = blades

	ta, err := raster.NewTextureArray(layers)
	if err != nil {
		panic(err) // all layers are texSize square
	}
	return ta
}

// TexturesFromDir loads the scene layers from image files named after
// LayerNames. Every layer must be present.
func TexturesFromDir(dir string, size int) (*raster.TextureArray, error) {
	loaded, index, err := assets.LoadTextureDir(dir, size)
	if err != nil {
		return nil, err
	}
	layers := make([]*image.NRGBA, layerCount)
	for name, layer := range LayerNames {
		i, ok := index[name]
		if !ok {
			return nil, fmt.Errorf("texture %q missing from %s: %w", name, dir, assets.ErrNoTextures)
		}
		layers[layer] = loaded.Layers()[i]
	}
	return raster.NewTextureArray(layers)
}

func noisy(rng *rand.Rand, base color.NRGBA, spread int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, texSize, texSize))
	for y := 0; y < texSize; y++ {
		for x := 0; x < texSize; x++ {
			d := rng.Intn(2*spread+1) - spread
			img.SetNRGBA(x, y, color.NRGBA{
				R: clamp8(int(base.R) + d),
				G: clamp8(int(base.G) + d),
				B: clamp8(int(base.B) + d),
				A: base.A,
			})
		}
	}
	return img
}

func clamp8(v int) uint8 {
	return uint8(max(0, min(255, v)))
}
