package graphics

import (
	"fmt"

	"voxelview/internal/logger"
	"voxelview/internal/raster"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// TextureArray is a GL_TEXTURE_2D_ARRAY uploaded from CPU layers.
type TextureArray struct {
	ID     uint32
	Layers int
}

// UploadTextureArray copies every layer of src to the GPU. Sampling matches
// the CPU sampler: nearest filtering, repeat wrapping.
func UploadTextureArray(src *raster.TextureArray) (*TextureArray, error) {
	width, height := src.Size()
	if src.Len() == 0 {
		return nil, fmt.Errorf("texture array has no layers")
	}

	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, texture)

	gl.TexImage3D(
		gl.TEXTURE_2D_ARRAY,
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		int32(src.Len()),
		0,
		gl.RGBA,
		gl.UNSIGNED_BYTE,
		nil,
	)
	for i, img := range src.Layers() {
		gl.TexSubImage3D(
			gl.TEXTURE_2D_ARRAY,
			0,
			0, 0, int32(i),
			int32(width),
			int32(height),
			1,
			gl.RGBA,
			gl.UNSIGNED_BYTE,
			gl.Ptr(img.Pix),
		)
	}

	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D_ARRAY, gl.TEXTURE_WRAP_T, gl.REPEAT)

	if errCode := gl.GetError(); errCode != gl.NO_ERROR {
		gl.DeleteTextures(1, &texture)
		return nil, fmt.Errorf("uploading texture array: gl error 0x%x", errCode)
	}

	logger.Log.Info("Uploaded texture array",
		zap.Int("layers", src.Len()),
		zap.Int("width", width),
		zap.Int("height", height))
	return &TextureArray{ID: texture, Layers: src.Len()}, nil
}

// Bind attaches the array to the given texture unit.
func (t *TextureArray) Bind(unit uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + unit)
	gl.BindTexture(gl.TEXTURE_2D_ARRAY, t.ID)
}

func (t *TextureArray) Delete() {
	if t.ID != 0 {
		gl.DeleteTextures(1, &t.ID)
		t.ID = 0
	}
}
