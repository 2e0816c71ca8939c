package raster

import (
	"image"
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
)

// Framebuffer holds linear float color and window-space depth.
type Framebuffer struct {
	width, height int
	color         []mgl32.Vec4
	depth         []float32
}

func NewFramebuffer(width, height int) *Framebuffer {
	n := width * height
	fb := &Framebuffer{
		width:  width,
		height: height,
		color:  make([]mgl32.Vec4, n),
		depth:  make([]float32, n),
	}
	fb.Clear(mgl32.Vec4{})
	return fb
}

func (fb *Framebuffer) Width() int  { return fb.width }
func (fb *Framebuffer) Height() int { return fb.height }

// Clear fills color with c and resets depth to the far plane.
func (fb *Framebuffer) Clear(c mgl32.Vec4) {
	for i := range fb.color {
		fb.color[i] = c
		fb.depth[i] = 1
	}
}

// At returns the stored color at (x, y); row 0 is the top of the image.
func (fb *Framebuffer) At(x, y int) mgl32.Vec4 {
	return fb.color[y*fb.width+x]
}

// DepthAt returns the stored depth at (x, y).
func (fb *Framebuffer) DepthAt(x, y int) float32 {
	return fb.depth[y*fb.width+x]
}

// Image converts the color buffer to 8-bit RGBA.
func (fb *Framebuffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.width, fb.height))
	for y := 0; y < fb.height; y++ {
		for x := 0; x < fb.width; x++ {
			c := fb.color[y*fb.width+x]
			img.SetNRGBA(x, y, color.NRGBA{R: to8(c[0]), G: to8(c[1]), B: to8(c[2]), A: to8(c[3])})
		}
	}
	return img
}

func to8(v float32) uint8 {
	return uint8(mgl32.Clamp(v, 0, 1)*255 + 0.5)
}
