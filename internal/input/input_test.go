package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func TestPressEdges(t *testing.T) {
	m := NewManager()

	m.HandleKeyEvent(glfw.KeyLeft, glfw.Press)
	if !m.IsActive(ActionOrbitLeft) || !m.JustPressed(ActionOrbitLeft) {
		t.Fatal("expected orbit-left active and just pressed")
	}

	m.PostUpdate()
	m.HandleKeyEvent(glfw.KeyLeft, glfw.Repeat)
	if !m.IsActive(ActionOrbitLeft) {
		t.Fatal("repeat should keep the action active")
	}
	if m.JustPressed(ActionOrbitLeft) {
		t.Fatal("repeat must not produce a new edge")
	}

	m.HandleKeyEvent(glfw.KeyLeft, glfw.Release)
	if m.IsActive(ActionOrbitLeft) {
		t.Fatal("release should clear the action")
	}
}

func TestSharedBindings(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyEscape, glfw.Press)
	m.HandleKeyEvent(glfw.KeyQ, glfw.Press)
	if !m.JustPressed(ActionQuit) {
		t.Fatal("escape should trigger quit")
	}
}

func TestBindKey(t *testing.T) {
	m := NewManager()
	m.HandleKeyEvent(glfw.KeyF1, glfw.Press)
	if m.IsActive(ActionDumpProfile) {
		t.Fatal("unbound key should be ignored")
	}

	m.BindKey(glfw.KeyF1, ActionDumpProfile)
	m.HandleKeyEvent(glfw.KeyF1, glfw.Press)
	if !m.JustPressed(ActionDumpProfile) {
		t.Fatal("bound key should trigger")
	}

	m.BindKey(glfw.KeyF2, ActionCount)
	m.HandleKeyEvent(glfw.KeyF2, glfw.Press)
	if m.IsActive(ActionCount) || m.JustPressed(-1) {
		t.Fatal("out of range actions are never active")
	}
}
