// Package chunks draws prebuilt chunk vertex buffers with the chunk program.
package chunks

import (
	"fmt"

	"voxelview/internal/graphics"
	renderer "voxelview/internal/graphics/renderer"
	"voxelview/internal/logger"
	"voxelview/internal/meshing"
	"voxelview/internal/profiling"
	"voxelview/internal/raster"
	"voxelview/internal/scene"
	"voxelview/internal/shading"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

type mesh struct {
	vao, vbo uint32
	count    int32
}

// Chunks implements the chunk rendering feature: an opaque pass followed by
// a transparent pass that leaves the depth buffer untouched.
type Chunks struct {
	scene    *scene.Scene
	textures *raster.TextureArray

	shader      *graphics.Shader
	gpuTextures *graphics.TextureArray
	opaque      mesh
	transparent mesh
}

// NewChunks creates a chunks renderable for the given scene and textures.
func NewChunks(s *scene.Scene, textures *raster.TextureArray) *Chunks {
	return &Chunks{scene: s, textures: textures}
}

// Init compiles the program and uploads textures and geometry.
func (c *Chunks) Init() error {
	vertexSrc, err := shading.VertexSource()
	if err != nil {
		return err
	}
	fragmentSrc, err := shading.FragmentSource()
	if err != nil {
		return err
	}
	c.shader, err = graphics.NewShaderFromSource(vertexSrc, fragmentSrc)
	if err != nil {
		return fmt.Errorf("chunk program: %w", err)
	}

	c.gpuTextures, err = graphics.UploadTextureArray(c.textures)
	if err != nil {
		return err
	}

	c.shader.Use()
	c.shader.SetInt(shading.UniformTextureArray, 0)

	func() {
		defer profiling.Track(profiling.StageUpload)()
		c.opaque = upload(c.scene.Opaque)
		c.transparent = upload(c.scene.Transparent)
	}()

	logger.Log.Info("Chunk meshes uploaded",
		zap.Int32("opaqueVertices", c.opaque.count),
		zap.Int32("transparentVertices", c.transparent.count))
	return nil
}

func upload(b *meshing.Buffer) mesh {
	var m mesh
	m.count = int32(b.VertexCount())
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	if data := b.Floats(); len(data) > 0 {
		gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	}

	stride := int32(meshing.VertexStrideBytes)
	attrib := func(index uint32, size int32, offset int) {
		gl.EnableVertexAttribArray(index)
		gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(offset))
	}
	attrib(shading.AttribPosition, 3, meshing.OffsetPosition)
	attrib(shading.AttribTextureLayer, 1, meshing.OffsetTextureLayer)
	attrib(shading.AttribPackedFaceAO, 1, meshing.OffsetPackedFaceAO)
	attrib(shading.AttribTint, 3, meshing.OffsetTint)
	attrib(shading.AttribAlpha, 1, meshing.OffsetAlpha)

	gl.BindVertexArray(0)
	return m
}

// Render draws both passes.
func (c *Chunks) Render(ctx renderer.RenderContext) {
	defer profiling.Track(profiling.StageDraw)()

	c.shader.Use()
	c.shader.SetMat4(shading.UniformProj, ctx.Proj)
	c.shader.SetMat4(shading.UniformView, ctx.View)
	c.shader.SetVec3(shading.UniformBackground, ctx.Background)
	c.gpuTextures.Bind(0)

	draw(c.opaque)

	gl.DepthMask(false)
	draw(c.transparent)
	gl.DepthMask(true)

	gl.BindVertexArray(0)
}

func draw(m mesh) {
	if m.count == 0 {
		return
	}
	gl.BindVertexArray(m.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, m.count)
}

// Dispose cleans up OpenGL resources
func (c *Chunks) Dispose() {
	for _, m := range []*mesh{&c.opaque, &c.transparent} {
		if m.vao != 0 {
			gl.DeleteVertexArrays(1, &m.vao)
		}
		if m.vbo != 0 {
			gl.DeleteBuffers(1, &m.vbo)
		}
		*m = mesh{}
	}
	if c.gpuTextures != nil {
		c.gpuTextures.Delete()
	}
	if c.shader != nil {
		c.shader.Delete()
	}
}

func (c *Chunks) SetViewport(width, height int) {}
