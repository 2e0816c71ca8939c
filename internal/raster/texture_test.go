package raster

import (
	"image"
	"image/color"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTextureArraySizeMismatch(t *testing.T) {
	_, err := NewTextureArray([]*image.NRGBA{
		image.NewNRGBA(image.Rect(0, 0, 16, 16)),
		image.NewNRGBA(image.Rect(0, 0, 8, 16)),
	})
	if err == nil {
		t.Fatalf("expected size mismatch error")
	}
	if _, err := NewTextureArray(nil); err == nil {
		t.Fatalf("expected error for empty array")
	}
}

func TestTextureArraySample(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(1, 0, color.NRGBA{0, 255, 0, 255})
	img.SetNRGBA(0, 1, color.NRGBA{0, 0, 255, 255})
	img.SetNRGBA(1, 1, color.NRGBA{255, 255, 255, 0})
	other := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	ta, err := NewTextureArray([]*image.NRGBA{img, other})
	if err != nil {
		t.Fatalf("NewTextureArray: %v", err)
	}

	cases := []struct {
		uv    mgl32.Vec2
		layer int
		want  mgl32.Vec4
	}{
		{mgl32.Vec2{0.25, 0.25}, 0, mgl32.Vec4{1, 0, 0, 1}},
		{mgl32.Vec2{0.75, 0.25}, 0, mgl32.Vec4{0, 1, 0, 1}},
		{mgl32.Vec2{0.25, 0.75}, 0, mgl32.Vec4{0, 0, 1, 1}},
		{mgl32.Vec2{0.75, 0.75}, 0, mgl32.Vec4{1, 1, 1, 0}},
		{mgl32.Vec2{1.25, -0.75}, 0, mgl32.Vec4{1, 0, 0, 1}}, // repeat
		{mgl32.Vec2{0.25, 0.25}, 1, mgl32.Vec4{}},
		{mgl32.Vec2{0.25, 0.25}, 7, mgl32.Vec4{}},            // clamps to last layer
		{mgl32.Vec2{0.25, 0.25}, -2, mgl32.Vec4{1, 0, 0, 1}}, // clamps to first layer
	}
	for _, c := range cases {
		if got := ta.Sample(c.uv, c.layer); got != c.want {
			t.Errorf("Sample(%v, %d) = %v, want %v", c.uv, c.layer, got, c.want)
		}
	}
}
