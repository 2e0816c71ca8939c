package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// TextureArray is a stack of equal-size straight-alpha RGBA layers sampled with
// nearest filtering and repeat wrapping.
type TextureArray struct {
	width, height int
	layers        []*image.NRGBA
}

// NewTextureArray validates that every layer has the same size.
func NewTextureArray(layers []*image.NRGBA) (*TextureArray, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("texture array needs at least one layer")
	}
	b := layers[0].Bounds()
	for i, l := range layers[1:] {
		if l.Bounds().Dx() != b.Dx() || l.Bounds().Dy() != b.Dy() {
			return nil, fmt.Errorf("layer %d is %dx%d, want %dx%d", i+1, l.Bounds().Dx(), l.Bounds().Dy(), b.Dx(), b.Dy())
		}
	}
	return &TextureArray{width: b.Dx(), height: b.Dy(), layers: layers}, nil
}

func (t *TextureArray) Size() (width, height int) { return t.width, t.height }
func (t *TextureArray) Len() int                 { return len(t.layers) }

// Layers exposes the layer images, for GPU upload.
func (t *TextureArray) Layers() []*image.NRGBA { return t.layers }

// Sample implements shading.Sampler. Layers outside the array clamp to the
// nearest valid layer, the way GL resolves array-texture layer indices.
func (t *TextureArray) Sample(uv mgl32.Vec2, layer int) mgl32.Vec4 {
	layer = max(0, min(layer, len(t.layers)-1))
	img := t.layers[layer]
	x := wrap(uv[0], t.width)
	y := wrap(uv[1], t.height)
	b := img.Bounds()
	off := img.PixOffset(b.Min.X+x, b.Min.Y+y)
	p := img.Pix[off : off+4 : off+4]
	return mgl32.Vec4{
		float32(p[0]) / 255,
		float32(p[1]) / 255,
		float32(p[2]) / 255,
		float32(p[3]) / 255,
	}
}

func wrap(c float32, size int) int {
	f := c - float32(math.Floor(float64(c)))
	i := int(f * float32(size))
	if i >= size {
		i = size - 1
	}
	return i
}
