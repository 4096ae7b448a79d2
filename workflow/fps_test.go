package workflow

import (
	"testing"
	"time"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func glfwKeyAt(offset int) glfw.Key {
	return glfw.KeyA + glfw.Key(offset)
}

func TestFpsCounterWindowAverage(t *testing.T) {
	f := &FpsCounter{}
	// Feed fixed 10ms frames directly into the ring.
	for i := 0; i < fpsSampleCount*2; i++ {
		f.samples[f.cursor] = 10 * time.Millisecond
		f.cursor = (f.cursor + 1) % fpsSampleCount
		if f.filled < fpsSampleCount {
			f.filled++
		}
	}
	fps := f.Fps()
	if fps < 99 || fps > 101 {
		t.Errorf("fps = %v, want about 100", fps)
	}
}

func TestFpsCounterEmpty(t *testing.T) {
	f := NewFpsCounter()
	if fps := f.Fps(); fps != 0 {
		t.Errorf("fps before any tick = %v, want 0", fps)
	}
}

func TestFrameCounterWraps(t *testing.T) {
	c := NewFrameCounter(2)
	if c.Current() != 0 {
		t.Fatalf("initial frame %d, want 0", c.Current())
	}
	c.Next()
	if c.Current() != 1 {
		t.Errorf("frame after one advance %d, want 1", c.Current())
	}
	c.Next()
	if c.Current() != 0 {
		t.Errorf("frame after wrap %d, want 0", c.Current())
	}
}

func TestEventControllerKeyBounds(t *testing.T) {
	e := &EventController{}
	for key := 0; key < maxActiveKeys+5; key++ {
		e.press(glfwKeyAt(key))
	}
	if len(e.active) != maxActiveKeys {
		t.Errorf("active key count %d, want capped at %d", len(e.active), maxActiveKeys)
	}

	e.press(glfwKeyAt(0))
	if len(e.active) != maxActiveKeys {
		t.Error("re-pressing a held key must not duplicate it")
	}

	e.release(glfwKeyAt(0))
	if e.IsKeyHeld(glfwKeyAt(0)) {
		t.Error("released key still reported held")
	}
	if !e.IsKeyHeld(glfwKeyAt(1)) {
		t.Error("unrelated key lost on release")
	}
}
