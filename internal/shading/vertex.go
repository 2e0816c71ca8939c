package shading

import "github.com/go-gl/mathgl/mgl32"

// Vertex is one record of a chunk vertex buffer. TextureLayer and PackedFaceAO
// travel as floats, the way the GPU attribute layout stores them.
type Vertex struct {
	Position     mgl32.Vec3
	TextureLayer float32
	PackedFaceAO float32
	Tint         mgl32.Vec3
	Alpha        float32
}

// VertexUniforms are the per-frame inputs of the vertex stage.
type VertexUniforms struct {
	Proj mgl32.Mat4
	View mgl32.Mat4
}

// ViewProj returns the combined transform applied to every vertex.
func (u VertexUniforms) ViewProj() mgl32.Mat4 {
	return u.Proj.Mul4(u.View)
}

// VertexOut is what the vertex stage hands to rasterization.
type VertexOut struct {
	Clip         mgl32.Vec4
	UV           mgl32.Vec2
	Shading      float32
	Tint         mgl32.Vec3
	Alpha        float32
	TextureLayer int
	FaceID       int
}

// UV resolves the texture coordinate of the ordinal-th vertex of a quad.
// Unshaded faces share the layout of their shaded twins through the parity bit.
// A negative ordinal wraps the same way a positive one does.
func UV(face, flip, ordinal int) mgl32.Vec2 {
	parity := face & 1
	vert := (ordinal%VerticesPerQuad + VerticesPerQuad) % VerticesPerQuad
	idx := vert + (parity+(flip&1)*2)*VerticesPerQuad
	return UVCorners[UVOrder[idx]]
}

// Shade combines directional face light and ambient occlusion. AO levels
// from the unused slots of the encoding (4-7) fold back onto 0-3.
func Shade(face, ao int) float32 {
	return FaceShading[uint(face)%FaceCount] * AOScale[ao&(AOLevels-1)]
}

// RunVertex is the vertex stage. ordinal is the vertex index within its draw
// call and must be non-negative.
func RunVertex(u VertexUniforms, v Vertex, ordinal int) VertexOut {
	return runVertex(u.ViewProj(), v, ordinal)
}

func runVertex(viewProj mgl32.Mat4, v Vertex, ordinal int) VertexOut {
	face, ao, flip := Unpack(int(v.PackedFaceAO))
	return VertexOut{
		Clip:         viewProj.Mul4x1(v.Position.Vec4(1)),
		UV:           UV(face, flip, ordinal),
		Shading:      Shade(face, ao),
		Tint:         v.Tint,
		Alpha:        v.Alpha,
		TextureLayer: int(v.TextureLayer),
		FaceID:       face,
	}
}

// VertexProgram runs the vertex stage with the view-projection product
// computed once per draw instead of once per vertex.
type VertexProgram struct {
	viewProj mgl32.Mat4
}

func NewVertexProgram(u VertexUniforms) VertexProgram {
	return VertexProgram{viewProj: u.ViewProj()}
}

func (p VertexProgram) Run(v Vertex, ordinal int) VertexOut {
	return runVertex(p.viewProj, v, ordinal)
}
