package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action represents a logical viewer action, not a physical key
type Action int

const (
	ActionQuit Action = iota
	ActionOrbitLeft
	ActionOrbitRight
	ActionZoomIn
	ActionZoomOut
	ActionWidenFOV
	ActionNarrowFOV
	ActionDumpProfile
	ActionCount // Sentinel value for array sizing
)

// Manager maps physical keys to viewer actions and tracks per-frame edges.
type Manager struct {
	mu sync.RWMutex

	keyToActions map[glfw.Key][]Action

	currentState [ActionCount]bool
	justPressed  [ActionCount]bool
}

// NewManager creates a Manager with the default bindings.
func NewManager() *Manager {
	m := &Manager{keyToActions: make(map[glfw.Key][]Action)}

	m.BindKey(glfw.KeyEscape, ActionQuit)
	m.BindKey(glfw.KeyQ, ActionQuit)
	m.BindKey(glfw.KeyA, ActionOrbitLeft)
	m.BindKey(glfw.KeyLeft, ActionOrbitLeft)
	m.BindKey(glfw.KeyD, ActionOrbitRight)
	m.BindKey(glfw.KeyRight, ActionOrbitRight)
	m.BindKey(glfw.KeyW, ActionZoomIn)
	m.BindKey(glfw.KeyUp, ActionZoomIn)
	m.BindKey(glfw.KeyS, ActionZoomOut)
	m.BindKey(glfw.KeyDown, ActionZoomOut)
	m.BindKey(glfw.KeyEqual, ActionNarrowFOV)
	m.BindKey(glfw.KeyMinus, ActionWidenFOV)
	m.BindKey(glfw.KeyP, ActionDumpProfile)

	return m
}

// BindKey binds a physical key to a logical action.
// Multiple keys can be bound to the same action.
func (m *Manager) BindKey(key glfw.Key, action Action) {
	if action < 0 || action >= ActionCount {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.keyToActions[key] = append(m.keyToActions[key], action)
}

// HandleKeyEvent processes a key event and updates internal state
func (m *Manager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	m.mu.Lock()
	defer m.mu.Unlock()

	actions, ok := m.keyToActions[key]
	if !ok {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	for _, act := range actions {
		if pressed && !m.currentState[act] {
			m.justPressed[act] = true
		}
		m.currentState[act] = pressed
	}
}

// SetKeyCallback routes the window's key events into the manager.
func (m *Manager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		m.HandleKeyEvent(key, action)
	})
}

// PostUpdate clears edge flags; call once at the end of each frame.
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := Action(0); i < ActionCount; i++ {
		m.justPressed[i] = false
	}
}

// IsActive returns true if the action is currently being held down
func (m *Manager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentState[action]
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.justPressed[action]
}
