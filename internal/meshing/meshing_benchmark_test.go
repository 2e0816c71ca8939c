package meshing

import (
	"testing"

	"voxelview/internal/shading"

	"github.com/go-gl/mathgl/mgl32"
)

func BenchmarkAppendQuad(b *testing.B) {
	buf := NewBuffer(4096)
	m := Opaque(2)
	occ := [4]int{0, 1, 2, 1}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if i%4096 == 0 {
			buf.Reset()
		}
		o := mgl32.Vec3{float32(i % 64), 0, float32(i / 64 % 64)}
		buf.AppendQuad(shading.FaceTop, CubeFace(shading.FaceTop, o), occ, m)
	}
}

func BenchmarkDecode(b *testing.B) {
	buf := NewBuffer(4096)
	for i := 0; i < 4096; i++ {
		o := mgl32.Vec3{float32(i % 64), 0, float32(i / 64)}
		buf.AppendFlatQuad(shading.FaceFront, CubeFace(shading.FaceFront, o), Opaque(1))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = Decode(buf.Floats())
	}
}
