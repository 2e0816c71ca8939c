package config

import (
	"runtime"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// ViewSettings holds viewer configuration shared by both backends.
type ViewSettings struct {
	mu         sync.RWMutex
	width      int
	height     int
	fov        float32 // vertical, degrees
	near       float32
	far        float32
	background mgl32.Vec3
	workers    int
	bandHeight int
	fpsLimit   int
}

var globalViewSettings = &ViewSettings{
	width:      1600,
	height:     900,
	fov:        70,
	near:       0.1,
	far:        2000,
	background: mgl32.Vec3{0.58, 0.83, 0.99},
	workers:    runtime.NumCPU(),
	bandHeight: 16,
	fpsLimit:   0,
}

// Resolution returns the framebuffer size in pixels.
func Resolution() (width, height int) {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.width, globalViewSettings.height
}

// SetResolution clamps each side to [16, 8192].
func SetResolution(width, height int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.width = clampInt(width, 16, 8192)
	globalViewSettings.height = clampInt(height, 16, 8192)
}

// AspectRatio returns width over height.
func AspectRatio() float32 {
	w, h := Resolution()
	return float32(w) / float32(h)
}

func FOV() float32 {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.fov
}

// SetFOV clamps the vertical field of view to [30, 120] degrees.
func SetFOV(deg float32) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.fov = mgl32.Clamp(deg, 30, 120)
}

// ClipPlanes returns the near and far distances.
func ClipPlanes() (near, far float32) {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.near, globalViewSettings.far
}

// Projection builds the perspective matrix from the current settings.
func Projection() mgl32.Mat4 {
	near, far := ClipPlanes()
	return mgl32.Perspective(mgl32.DegToRad(FOV()), AspectRatio(), near, far)
}

// Background is both the clear color and the fog color.
func Background() mgl32.Vec3 {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.background
}

func SetBackground(c mgl32.Vec3) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	for i := range c {
		c[i] = mgl32.Clamp(c[i], 0, 1)
	}
	globalViewSettings.background = c
}

// Workers is the CPU raster worker count.
func Workers() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.workers
}

// SetWorkers clamps to [1, 256]; zero or less means one per CPU.
func SetWorkers(n int) {
	if n <= 0 {
		n = runtime.NumCPU()
	}
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.workers = clampInt(n, 1, 256)
}

// BandHeight is the number of scanlines per CPU fragment job.
func BandHeight() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.bandHeight
}

func SetBandHeight(rows int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	globalViewSettings.bandHeight = clampInt(rows, 1, 1024)
}

// FPSLimit caps the viewer frame rate; 0 means uncapped.
func FPSLimit() int {
	globalViewSettings.mu.RLock()
	defer globalViewSettings.mu.RUnlock()
	return globalViewSettings.fpsLimit
}

func SetFPSLimit(fps int) {
	globalViewSettings.mu.Lock()
	defer globalViewSettings.mu.Unlock()
	if fps <= 0 {
		globalViewSettings.fpsLimit = 0
		return
	}
	globalViewSettings.fpsLimit = clampInt(fps, 10, 1000)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
