package graphics

import (
	"voxelview/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices
type Camera struct {
	AspectRatio float32
	FOV         float32
	NearPlane   float32
	FarPlane    float32

	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

// NewCamera takes its lens from the view settings.
func NewCamera(width, height int) *Camera {
	near, far := config.ClipPlanes()
	return &Camera{
		AspectRatio: float32(width) / float32(height),
		FOV:         config.FOV(),
		NearPlane:   near,
		FarPlane:    far,
		Target:      mgl32.Vec3{0, 0, -1},
	}
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.AspectRatio, c.NearPlane, c.FarPlane)
}

func (c *Camera) GetViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Eye, c.Target, mgl32.Vec3{0, 1, 0})
}

// Orbit moves the eye around Target on the horizontal plane by angle radians.
func (c *Camera) Orbit(angle float32) {
	offset := c.Eye.Sub(c.Target)
	rot := mgl32.Rotate3DY(angle)
	c.Eye = c.Target.Add(rot.Mul3x1(offset))
}

func (c *Camera) SetViewport(width, height int) {
	if height == 0 {
		return
	}
	c.AspectRatio = float32(width) / float32(height)
}
