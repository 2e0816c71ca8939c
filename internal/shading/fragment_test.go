package shading

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// solid samples the same texel everywhere.
type solid mgl32.Vec4

func (s solid) Sample(mgl32.Vec2, int) mgl32.Vec4 { return mgl32.Vec4(s) }

func fragmentAt(depth float32) FragmentIn {
	return FragmentIn{
		UV:        mgl32.Vec2{0.5, 0.5},
		Shading:   1,
		Tint:      mgl32.Vec3{1, 1, 1},
		Alpha:     1,
		FragCoord: mgl32.Vec4{0, 0, depth, 1},
	}
}

func TestFogFactor(t *testing.T) {
	if f := FogFactor(0); f != 0 {
		t.Fatalf("FogFactor(0) = %v", f)
	}
	prev := float32(0)
	for d := float32(10); d <= 5000; d += 10 {
		f := FogFactor(d)
		if f < prev || f < 0 || f > 1 {
			t.Fatalf("FogFactor(%v) = %v after %v", d, f, prev)
		}
		prev = f
	}
	if prev < 0.999 {
		t.Fatalf("FogFactor at long range = %v, want ~1", prev)
	}
	if f := FogFactor(1e6); f != 1 {
		t.Fatalf("FogFactor(1e6) = %v, want 1", f)
	}
}

func TestGammaRoundTrip(t *testing.T) {
	for r := float32(0); r <= 1; r += 0.125 {
		c := mgl32.Vec3{r, 1 - r, r * r}
		got := GammaDecode(GammaEncode(c))
		if !got.ApproxEqualThreshold(c, 1e-5) {
			t.Fatalf("round trip of %v = %v", c, got)
		}
		got = GammaEncode(GammaDecode(c))
		if !got.ApproxEqualThreshold(c, 1e-5) {
			t.Fatalf("round trip of %v = %v", c, got)
		}
	}
}

func TestRunFragmentDiscardsCutout(t *testing.T) {
	in := fragmentAt(0)
	in.Alpha = 1
	if _, ok := RunFragment(in, solid{1, 1, 1, 0.05}, mgl32.Vec3{1, 0, 0}); ok {
		t.Fatalf("fragment with texel alpha 0.05 was not discarded")
	}
	if _, ok := RunFragment(in, solid{1, 1, 1, AlphaCutoff}, mgl32.Vec3{}); !ok {
		t.Fatalf("fragment at the cutoff was discarded")
	}
}

func TestRunFragmentNoFogAtZeroDistance(t *testing.T) {
	texel := mgl32.Vec4{0.2, 0.6, 0.9, 1}
	out, ok := RunFragment(fragmentAt(0), solid(texel), mgl32.Vec3{1, 0, 1})
	if !ok {
		t.Fatalf("unexpected discard")
	}
	if !out.Vec3().ApproxEqualThreshold(texel.Vec3(), 1e-5) {
		t.Fatalf("color = %v, want %v", out.Vec3(), texel.Vec3())
	}
}

func TestRunFragmentTintAndShading(t *testing.T) {
	in := fragmentAt(0)
	in.Tint = mgl32.Vec3{0.5, 1, 0.25}
	in.Shading = 0.4
	in.Alpha = 0.5
	texel := mgl32.Vec4{0.8, 0.8, 0.8, 1}

	out, ok := RunFragment(in, solid(texel), mgl32.Vec3{})
	if !ok {
		t.Fatalf("unexpected discard")
	}
	lin := math.Pow(0.8, Gamma)
	for i, tint := range []float64{0.5, 1, 0.25} {
		want := float32(math.Pow(lin*tint*0.4, 1/Gamma))
		if !near(out[i], want, 1e-5) {
			t.Fatalf("channel %d = %v, want %v", i, out[i], want)
		}
	}
	if out.W() != 0.5 {
		t.Fatalf("alpha = %v, want vertex alpha 0.5 not texel alpha", out.W())
	}
}

func TestRunFragmentFarFogIsBackground(t *testing.T) {
	bg := mgl32.Vec3{0.58, 0.83, 0.99}
	in := fragmentAt(1)
	in.FragCoord[3] = 1.0 / 100000 // clip w of 1e5
	out, ok := RunFragment(in, solid{0, 0, 0, 1}, bg)
	if !ok {
		t.Fatalf("unexpected discard")
	}
	// the background is mixed as linear and then encoded
	want := GammaEncode(bg)
	if !out.Vec3().ApproxEqualThreshold(want, 1e-4) {
		t.Fatalf("color = %v, want %v", out.Vec3(), want)
	}
}

func TestFogDistance(t *testing.T) {
	in := FragmentIn{FragCoord: mgl32.Vec4{0, 0, 0.5, 0.25}}
	if d := in.FogDistance(); d != 2 {
		t.Fatalf("FogDistance = %v, want 2", d)
	}
}
