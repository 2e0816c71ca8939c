package meshing

import (
	"voxelview/internal/shading"

	"github.com/go-gl/mathgl/mgl32"
)

// FloatsPerVertex is the interleaved layout: pos.xyz, layer, packed face/AO/flip,
// tint.rgb, alpha.
const FloatsPerVertex = 9

// Byte offsets of each attribute inside one vertex.
const (
	OffsetPosition     = 0
	OffsetTextureLayer = 3 * 4
	OffsetPackedFaceAO = 4 * 4
	OffsetTint         = 5 * 4
	OffsetAlpha        = 8 * 4
	VertexStrideBytes  = FloatsPerVertex * 4
)

// winding lists, per face and flip, which quad corner each of the six emitted
// vertices uses. It has to agree with shading.UVOrder.
var winding = [6][2][6]int{
	{{0, 3, 2, 0, 2, 1}, {1, 0, 3, 1, 3, 2}}, // top
	{{0, 2, 3, 0, 1, 2}, {1, 3, 0, 1, 2, 3}}, // bottom
	{{0, 1, 2, 0, 2, 3}, {3, 0, 1, 3, 1, 2}}, // right +x
	{{0, 2, 1, 0, 3, 2}, {3, 1, 0, 3, 2, 1}}, // left -x
	{{0, 1, 2, 0, 2, 3}, {3, 0, 1, 3, 1, 2}}, // front -z
	{{0, 2, 1, 0, 3, 2}, {3, 1, 0, 3, 2, 1}}, // back +z
}

// unit cube corners per face, in the order winding refers to.
var faceCorners = [6][4]mgl32.Vec3{
	{{0, 1, 0}, {1, 1, 0}, {1, 1, 1}, {0, 1, 1}},
	{{0, 0, 0}, {1, 0, 0}, {1, 0, 1}, {0, 0, 1}},
	{{1, 0, 0}, {1, 1, 0}, {1, 1, 1}, {1, 0, 1}},
	{{0, 0, 0}, {0, 1, 0}, {0, 1, 1}, {0, 0, 1}},
	{{0, 0, 0}, {0, 1, 0}, {1, 1, 0}, {1, 0, 0}},
	{{0, 0, 1}, {0, 1, 1}, {1, 1, 1}, {1, 0, 1}},
}

// FaceNormals are the outward neighbor offsets per face.
var FaceNormals = [6][3]int{
	{0, 1, 0},
	{0, -1, 0},
	{1, 0, 0},
	{-1, 0, 0},
	{0, 0, -1},
	{0, 0, 1},
}

// cross plant planes, corners bottom-up
var crossPlanes = func() [4][4]mgl32.Vec3 {
	const d = 0.854
	const e = 1 - d
	return [4][4]mgl32.Vec3{
		{{e, 0, e}, {e, 1, e}, {d, 1, d}, {d, 0, d}},
		{{d, 0, d}, {d, 1, d}, {e, 1, e}, {e, 0, e}},
		{{d, 0, e}, {d, 1, e}, {e, 1, d}, {e, 0, d}},
		{{e, 0, d}, {e, 1, d}, {d, 1, e}, {d, 0, e}},
	}
}()

// CubeFace returns the four corners of one face of the unit block at origin.
func CubeFace(face int, origin mgl32.Vec3) [4]mgl32.Vec3 {
	var out [4]mgl32.Vec3
	for i, c := range faceCorners[face%shading.UnshadedOffset] {
		out[i] = origin.Add(c)
	}
	return out
}

// Material is what every vertex of a quad shares.
type Material struct {
	Layer int
	Tint  mgl32.Vec3
	Alpha float32
}

// Opaque is an untinted, fully opaque material on layer.
func Opaque(layer int) Material {
	return Material{Layer: layer, Tint: mgl32.Vec3{1, 1, 1}, Alpha: 1}
}

// Buffer accumulates vertices in the chunk vertex layout.
type Buffer struct {
	data []float32
}

func NewBuffer(quads int) *Buffer {
	return &Buffer{data: make([]float32, 0, quads*shading.VerticesPerQuad*FloatsPerVertex)}
}

// Floats exposes the raw interleaved data for upload.
func (b *Buffer) Floats() []float32 { return b.data }

// VertexCount returns the number of complete vertices.
func (b *Buffer) VertexCount() int { return len(b.data) / FloatsPerVertex }

func (b *Buffer) Reset() { b.data = b.data[:0] }

func (b *Buffer) push(p mgl32.Vec3, m Material, code int) {
	b.data = append(b.data,
		p[0], p[1], p[2],
		float32(m.Layer), float32(code),
		m.Tint[0], m.Tint[1], m.Tint[2],
		m.Alpha,
	)
}

// FlipFor chooses the diagonal that keeps AO interpolation symmetric.
// occluders counts solid neighbours (0-3) per corner.
func FlipFor(occluders [4]int) int {
	if occluders[1]+occluders[3] > occluders[0]+occluders[2] {
		return 1
	}
	return 0
}

// AppendQuad emits a shaded quad. corners must be in CubeFace order for face
// and occluders holds the per-corner occluder count.
func (b *Buffer) AppendQuad(face int, corners [4]mgl32.Vec3, occluders [4]int, m Material) {
	flip := FlipFor(occluders)
	for _, ci := range winding[face][flip] {
		ao := shading.AOLevels - 1 - occluders[ci]
		b.push(corners[ci], m, shading.Pack(face, ao, flip))
	}
}

// AppendFlatQuad emits a shaded quad with no occlusion.
func (b *Buffer) AppendFlatQuad(face int, corners [4]mgl32.Vec3, m Material) {
	b.AppendQuad(face, corners, [4]int{}, m)
}

// AppendUnshadedQuad emits a quad that gets neither face shading nor AO.
func (b *Buffer) AppendUnshadedQuad(face int, corners [4]mgl32.Vec3, m Material) {
	code := shading.Pack(shading.Unshaded(face), shading.AOLevels-1, 0)
	for _, ci := range winding[face%shading.UnshadedOffset][0] {
		b.push(corners[ci], m, code)
	}
}

// AppendCross emits the four planes of a cross-shaped plant at origin.
func (b *Buffer) AppendCross(origin mgl32.Vec3, m Material) {
	code := shading.Pack(shading.FaceTop, shading.AOLevels-1, 0)
	for _, plane := range crossPlanes {
		for _, ci := range [6]int{0, 1, 2, 0, 2, 3} {
			b.push(origin.Add(plane[ci]), m, code)
		}
	}
}

// Decode reads an interleaved buffer back into vertex records. A trailing
// partial vertex is ignored.
func Decode(data []float32) []shading.Vertex {
	n := len(data) / FloatsPerVertex
	out := make([]shading.Vertex, n)
	for i := range out {
		f := data[i*FloatsPerVertex : (i+1)*FloatsPerVertex]
		out[i] = shading.Vertex{
			Position:     mgl32.Vec3{f[0], f[1], f[2]},
			TextureLayer: f[3],
			PackedFaceAO: f[4],
			Tint:         mgl32.Vec3{f[5], f[6], f[7]},
			Alpha:        f[8],
		}
	}
	return out
}
