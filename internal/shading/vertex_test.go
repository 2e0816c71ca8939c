package shading

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return float32(math.Abs(float64(a-b))) <= eps
}

func TestShadeRange(t *testing.T) {
	lo, hi := float32(math.Inf(1)), float32(0)
	for face := 0; face < FaceCount; face++ {
		for ao := 0; ao < AOLevels; ao++ {
			s := Shade(face, ao)
			if s <= 0 || s > 1 {
				t.Fatalf("Shade(%d,%d) = %v outside (0,1]", face, ao, s)
			}
			lo = min(lo, s)
			hi = max(hi, s)
		}
	}
	if !near(lo, 0.05, 1e-6) || hi != 1 {
		t.Fatalf("shade range [%v,%v], want [0.05,1]", lo, hi)
	}
}

func TestUnshadedFacesIgnoreDirection(t *testing.T) {
	for face := UnshadedOffset; face < FaceCount; face++ {
		if FaceShading[face] != 1 {
			t.Fatalf("FaceShading[%d] = %v, want 1", face, FaceShading[face])
		}
	}
	if FaceShading[FaceTop] != 1 {
		t.Fatalf("top face should be brightest")
	}
}

func TestUVFirstVertex(t *testing.T) {
	got := UV(0, 0, 0)
	want := UVCorners[UVOrder[0]]
	if got != want || got != (mgl32.Vec2{0, 1}) {
		t.Fatalf("UV(0,0,0) = %v, want %v", got, want)
	}
}

func TestUVWrapsEverySixVertices(t *testing.T) {
	for ord := 0; ord < 24; ord++ {
		if UV(2, 1, ord) != UV(2, 1, ord%VerticesPerQuad) {
			t.Fatalf("vertex %d does not repeat vertex %d", ord, ord%VerticesPerQuad)
		}
	}
}

func TestUVOrderCoversQuad(t *testing.T) {
	for group := 0; group < 4; group++ {
		seen := map[int]int{}
		for _, c := range UVOrder[group*6 : group*6+6] {
			if c < 0 || c >= len(UVCorners) {
				t.Fatalf("group %d: corner index %d", group, c)
			}
			seen[c]++
		}
		// two triangles share one diagonal: two corners appear twice
		if len(seen) != 4 {
			t.Fatalf("group %d uses %d distinct corners", group, len(seen))
		}
	}
}

func TestRunVertex(t *testing.T) {
	proj := mgl32.Perspective(mgl32.DegToRad(70), 16.0/9.0, 0.1, 2000)
	view := mgl32.LookAtV(mgl32.Vec3{0, 10, 20}, mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0, 1, 0})
	u := VertexUniforms{Proj: proj, View: view}
	v := Vertex{
		Position:     mgl32.Vec3{1, 2, 3},
		TextureLayer: 7,
		PackedFaceAO: float32(Pack(FaceLeft, 2, 1)),
		Tint:         mgl32.Vec3{0.5, 0.8, 0.3},
		Alpha:        0.5,
	}

	out := RunVertex(u, v, 8)
	wantClip := proj.Mul4(view).Mul4x1(mgl32.Vec4{1, 2, 3, 1})
	if !out.Clip.ApproxEqualThreshold(wantClip, 1e-4) {
		t.Fatalf("clip = %v, want %v", out.Clip, wantClip)
	}
	if out.FaceID != FaceLeft || out.TextureLayer != 7 {
		t.Fatalf("pass-through face=%d tex=%d", out.FaceID, out.TextureLayer)
	}
	if out.Tint != v.Tint || out.Alpha != v.Alpha {
		t.Fatalf("tint/alpha not passed through")
	}
	if !near(out.Shading, 0.8*0.5, 1e-6) {
		t.Fatalf("shading = %v, want 0.4", out.Shading)
	}
	// ordinal 8 is vertex 2 of the second quad; odd face flipped group starts at 18
	if want := UVCorners[UVOrder[18+2]]; out.UV != want {
		t.Fatalf("uv = %v, want %v", out.UV, want)
	}

	if p := NewVertexProgram(u).Run(v, 8); p != out {
		t.Fatalf("VertexProgram.Run = %+v, want %+v", p, out)
	}
}

func TestRunVertexTotalOverTrustedCodes(t *testing.T) {
	u := VertexUniforms{Proj: mgl32.Ident4(), View: mgl32.Ident4()}
	for code := 0; code < TrustedCodes; code++ {
		for ord := 0; ord < VerticesPerQuad; ord++ {
			out := RunVertex(u, Vertex{PackedFaceAO: float32(code)}, ord)
			if out.Shading <= 0 || out.Shading > 1 {
				t.Fatalf("code %d: shading %v outside (0,1]", code, out.Shading)
			}
		}
	}
	// unused AO slots fold back onto the real levels
	if Shade(FaceTop, 4) != Shade(FaceTop, 0) || Shade(FaceTop, 7) != Shade(FaceTop, 3) {
		t.Fatalf("AO levels 4-7 do not fold onto 0-3")
	}
}

func TestUVNegativeOrdinal(t *testing.T) {
	for ord := -12; ord < 0; ord++ {
		want := UV(FaceRight, 0, ord+12)
		if got := UV(FaceRight, 0, ord); got != want {
			t.Fatalf("UV ordinal %d = %v, want %v", ord, got, want)
		}
	}
}
