package shading

import "testing"

func TestPackRoundTrip(t *testing.T) {
	for code := 0; code < TrustedCodes; code++ {
		face, ao, flip := Unpack(code)
		if got := Pack(face, ao, flip); got != code {
			t.Fatalf("code %d: repacked to %d", code, got)
		}
	}
}

func TestUnpackProducedCodes(t *testing.T) {
	for face := 0; face < FaceCount; face++ {
		for ao := 0; ao < AOLevels; ao++ {
			for flip := 0; flip < 2; flip++ {
				code := Pack(face, ao, flip)
				if code < 0 || code > MaxPackedCode {
					t.Fatalf("Pack(%d,%d,%d) = %d outside [0,%d]", face, ao, flip, code, MaxPackedCode)
				}
				if f, a, fl := Unpack(code); f != face || a != ao || fl != flip {
					t.Fatalf("Unpack(%d) = %d,%d,%d; want %d,%d,%d", code, f, a, fl, face, ao, flip)
				}
			}
		}
	}
}

func TestMaxPackedCode(t *testing.T) {
	if MaxPackedCode != 183 {
		t.Fatalf("MaxPackedCode = %d, want 183", MaxPackedCode)
	}
	if got := Pack(FaceCount-1, AOLevels-1, 1); got != MaxPackedCode {
		t.Fatalf("largest packed code = %d, want %d", got, MaxPackedCode)
	}
}

func TestUnpackBottomDarkestAO(t *testing.T) {
	face, ao, flip := Unpack(16)
	if face != FaceBottom || ao != 0 || flip != 0 {
		t.Fatalf("Unpack(16) = %d,%d,%d; want 1,0,0", face, ao, flip)
	}
	if got := Shade(face, ao); !near(got, 0.05, 1e-6) {
		t.Fatalf("shading = %v, want 0.05", got)
	}
}

func TestUnshadedKeepsParity(t *testing.T) {
	for face := 0; face < UnshadedOffset; face++ {
		u := Unshaded(face)
		if u != face+UnshadedOffset {
			t.Fatalf("Unshaded(%d) = %d", face, u)
		}
		if !IsUnshaded(u) || IsUnshaded(face) {
			t.Fatalf("IsUnshaded mismatch for %d/%d", face, u)
		}
		if u&1 != face&1 {
			t.Fatalf("face %d and %d differ in parity", face, u)
		}
		for flip := 0; flip < 2; flip++ {
			for ord := 0; ord < VerticesPerQuad; ord++ {
				if UV(face, flip, ord) != UV(u, flip, ord) {
					t.Fatalf("face %d/%d flip %d vertex %d: UV differs", face, u, flip, ord)
				}
			}
		}
	}
}
