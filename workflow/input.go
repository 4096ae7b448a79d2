package workflow

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

// maxActiveKeys bounds the pressed-key list; keyboards rarely report more
// simultaneous keys anyway.
const maxActiveKeys = 12

// EventController gathers the input state the loop hands to the application
// every frame: currently held keys and cursor motion since the last frame.
type EventController struct {
	active []glfw.Key

	lastX, lastY   float64
	deltaX, deltaY float32
	firstMotion    bool
}

// NewEventController installs key and cursor callbacks on window.
func NewEventController(window *Window) *EventController {
	e := &EventController{
		active:      make([]glfw.Key, 0, maxActiveKeys),
		firstMotion: true,
	}

	window.Handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		switch action {
		case glfw.Press:
			e.press(key)
		case glfw.Release:
			e.release(key)
		}
	})
	window.Handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		if e.firstMotion {
			e.lastX, e.lastY = x, y
			e.firstMotion = false
			return
		}
		e.deltaX += float32(x - e.lastX)
		e.deltaY += float32(y - e.lastY)
		e.lastX, e.lastY = x, y
	})

	return e
}

func (e *EventController) press(key glfw.Key) {
	for _, k := range e.active {
		if k == key {
			return
		}
	}
	if len(e.active) < maxActiveKeys {
		e.active = append(e.active, key)
	}
}

func (e *EventController) release(key glfw.Key) {
	for i, k := range e.active {
		if k == key {
			e.active = append(e.active[:i], e.active[i+1:]...)
			return
		}
	}
}

// IsKeyHeld reports whether key is currently pressed.
func (e *EventController) IsKeyHeld(key glfw.Key) bool {
	for _, k := range e.active {
		if k == key {
			return true
		}
	}
	return false
}

// CursorDelta returns the accumulated cursor motion since the last call to
// NextFrame.
func (e *EventController) CursorDelta() (dx, dy float32) {
	return e.deltaX, e.deltaY
}

// NextFrame clears the per-frame accumulators. The loop calls it after the
// application consumed the input.
func (e *EventController) NextFrame() {
	e.deltaX, e.deltaY = 0, 0
}
