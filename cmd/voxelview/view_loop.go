package main

import (
	"time"

	"voxelview/internal/config"
	renderer "voxelview/internal/graphics/renderer"
	"voxelview/internal/input"
	"voxelview/internal/logger"
	"voxelview/internal/profiling"

	"github.com/go-gl/glfw/v3.3/glfw"
	"go.uber.org/zap"
)

// ViewLoop drives input, camera motion and rendering once per frame.
type ViewLoop struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	input    *input.Manager
	limiter  FPSLimiter

	frames           int
	lastFPSCheckTime time.Time
	lastTime         time.Time
}

func NewViewLoop(window *glfw.Window, r *renderer.Renderer, im *input.Manager) *ViewLoop {
	now := time.Now()
	return &ViewLoop{
		window:           window,
		renderer:         r,
		input:            im,
		lastFPSCheckTime: now,
		lastTime:         now,
	}
}

// Run loops until the window is closed or quit is pressed.
func (v *ViewLoop) Run() {
	for !v.window.ShouldClose() {
		v.tick()
	}
}

func (v *ViewLoop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(v.lastTime).Seconds()
	v.lastTime = now

	glfw.PollEvents()
	v.handleInput(float32(dt))

	v.renderer.Render(dt)
	v.window.SwapBuffers()
	v.frames++

	if time.Since(v.lastFPSCheckTime) >= time.Second {
		logger.Log.Debug("frame stats",
			zap.Int("fps", v.frames),
			zap.Duration("frame", profiling.Snapshot()[profiling.StageFrame]))
		v.frames = 0
		v.lastFPSCheckTime = time.Now()
	}

	v.input.PostUpdate()
	v.limiter.Wait()
}

func (v *ViewLoop) handleInput(dt float32) {
	camera := v.renderer.GetCamera()

	if v.input.JustPressed(input.ActionQuit) {
		v.window.SetShouldClose(true)
	}
	if v.input.IsActive(input.ActionOrbitLeft) {
		camera.Orbit(-orbitStep * dt)
	}
	if v.input.IsActive(input.ActionOrbitRight) {
		camera.Orbit(orbitStep * dt)
	}
	if v.input.IsActive(input.ActionZoomIn) {
		zoom(camera, zoomStep*dt)
	}
	if v.input.IsActive(input.ActionZoomOut) {
		zoom(camera, -zoomStep*dt)
	}
	if v.input.IsActive(input.ActionWidenFOV) {
		config.SetFOV(config.FOV() + fovStep*dt)
		camera.FOV = config.FOV()
	}
	if v.input.IsActive(input.ActionNarrowFOV) {
		config.SetFOV(config.FOV() - fovStep*dt)
		camera.FOV = config.FOV()
	}
	if v.input.JustPressed(input.ActionDumpProfile) {
		logger.Log.Info("profile", zap.String("top", profiling.TopN(6)))
	}
}
