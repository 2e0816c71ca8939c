package config

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaults(t *testing.T) {
	if FOV() != 70 {
		t.Fatalf("FOV = %v, want 70", FOV())
	}
	near, far := ClipPlanes()
	if near != 0.1 || far != 2000 {
		t.Fatalf("clip planes = %v,%v", near, far)
	}
	if Background() != (mgl32.Vec3{0.58, 0.83, 0.99}) {
		t.Fatalf("background = %v", Background())
	}
}

func TestSettersClamp(t *testing.T) {
	w, h := Resolution()
	defer SetResolution(w, h)
	fov := FOV()
	defer SetFOV(fov)
	workers := Workers()
	defer SetWorkers(workers)
	bg := Background()
	defer SetBackground(bg)

	SetResolution(4, 100000)
	if w, h := Resolution(); w != 16 || h != 8192 {
		t.Fatalf("resolution = %dx%d", w, h)
	}
	SetFOV(500)
	if FOV() != 120 {
		t.Fatalf("FOV = %v, want 120", FOV())
	}
	SetWorkers(1000)
	if Workers() != 256 {
		t.Fatalf("workers = %d", Workers())
	}
	SetWorkers(0)
	if Workers() < 1 {
		t.Fatalf("workers = %d", Workers())
	}
	SetBackground(mgl32.Vec3{-1, 0.5, 3})
	if Background() != (mgl32.Vec3{0, 0.5, 1}) {
		t.Fatalf("background = %v", Background())
	}
}

func TestProjectionUsesAspect(t *testing.T) {
	w, h := Resolution()
	defer SetResolution(w, h)
	SetResolution(200, 100)
	p := Projection()
	if p[5]/p[0] < 1.99 || p[5]/p[0] > 2.01 {
		t.Fatalf("projection aspect = %v, want 2", p[5]/p[0])
	}
}

func TestFPSLimit(t *testing.T) {
	defer SetFPSLimit(FPSLimit())

	if FPSLimit() != 0 {
		t.Fatalf("default FPS limit = %d, want uncapped", FPSLimit())
	}
	SetFPSLimit(3)
	if FPSLimit() != 10 {
		t.Fatalf("FPS limit = %d, want 10", FPSLimit())
	}
	SetFPSLimit(-5)
	if FPSLimit() != 0 {
		t.Fatalf("FPS limit = %d, want 0", FPSLimit())
	}
}
