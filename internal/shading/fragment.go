package shading

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Sampler is a layered 2D texture. Out-of-range layers are the sampler's
// business; the fragment stage passes them through untouched.
type Sampler interface {
	Sample(uv mgl32.Vec2, layer int) mgl32.Vec4
}

// FragmentIn carries the interpolated vertex outputs for one pixel sample.
// FragCoord follows window-space conventions: Z is depth in [0,1] and W is
// the reciprocal of the clip-space w.
type FragmentIn struct {
	UV           mgl32.Vec2
	Shading      float32
	Tint         mgl32.Vec3
	Alpha        float32
	TextureLayer int
	FaceID       int
	FragCoord    mgl32.Vec4
}

// FogDistance recovers the depth proxy the fog law is evaluated on.
func (in FragmentIn) FogDistance() float32 {
	return in.FragCoord.Z() / in.FragCoord.W()
}

// FogFactor is the blend weight toward the background at distance d.
func FogFactor(d float32) float32 {
	dd := float64(d)
	return float32(1 - math.Exp(-FogDensity*dd*dd))
}

// GammaDecode converts a display-space color to linear light.
func GammaDecode(c mgl32.Vec3) mgl32.Vec3 {
	return powVec3(c, Gamma)
}

// GammaEncode converts linear light back to display space.
func GammaEncode(c mgl32.Vec3) mgl32.Vec3 {
	return powVec3(c, 1/Gamma)
}

func powVec3(c mgl32.Vec3, e float64) mgl32.Vec3 {
	return mgl32.Vec3{
		float32(math.Pow(float64(c[0]), e)),
		float32(math.Pow(float64(c[1]), e)),
		float32(math.Pow(float64(c[2]), e)),
	}
}

func mix(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

// RunFragment is the fragment stage. It returns false when the sample is cut
// out, in which case neither color nor depth may be written.
//
// The background color is blended as if it were already linear.
func RunFragment(in FragmentIn, tex Sampler, bg mgl32.Vec3) (mgl32.Vec4, bool) {
	texel := tex.Sample(in.UV, in.TextureLayer)
	if texel.W() < AlphaCutoff {
		return mgl32.Vec4{}, false
	}

	col := GammaDecode(texel.Vec3())
	col = mgl32.Vec3{col[0] * in.Tint[0], col[1] * in.Tint[1], col[2] * in.Tint[2]}
	col = col.Mul(in.Shading)

	col = mix(col, bg, FogFactor(in.FogDistance()))

	col = GammaEncode(col)
	return col.Vec4(in.Alpha), true
}
