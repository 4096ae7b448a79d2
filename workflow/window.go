// Package workflow drives the per-frame loop of an application: window and
// input handling, frame pacing, and the acquire/render/present cycle with
// its fences and semaphores.
package workflow

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

// WindowMode selects the initial window presentation.
type WindowMode int

const (
	// WindowNormal is a plain decorated window.
	WindowNormal WindowMode = iota
	// WindowMaximized starts maximized.
	WindowMaximized
	// WindowFullscreen covers the primary monitor.
	WindowFullscreen
)

// WindowConfig controls window creation.
type WindowConfig struct {
	Title  string
	Mode   WindowMode
	Width  int
	Height int

	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	Resizable   bool
	AlwaysOnTop bool
	CursorGrab  bool
	CursorHide  bool
}

// DefaultWindowConfig is a resizable 1280x720 window.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:     "vkbase",
		Width:     1280,
		Height:    720,
		Resizable: true,
	}
}

// Window wraps the GLFW window and tracks resize interest for the loop.
type Window struct {
	Handle *glfw.Window

	resized bool
}

// NewWindow initializes GLFW (idempotent per process via glfw itself) and
// creates the window without an OpenGL context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, vkbase.ErrWindow(err)
	}
	if !glfw.VulkanSupported() {
		glfw.Terminate()
		return nil, vkbase.ErrUnsupported("vulkan on this windowing system")
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	if config.Resizable {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Resizable, glfw.False)
	}
	if config.AlwaysOnTop {
		glfw.WindowHint(glfw.Floating, glfw.True)
	}
	if config.Mode == WindowMaximized {
		glfw.WindowHint(glfw.Maximized, glfw.True)
	}

	var monitor *glfw.Monitor
	width, height := config.Width, config.Height
	if config.Mode == WindowFullscreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	handle, err := glfw.CreateWindow(width, height, config.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		return nil, vkbase.ErrWindow(err)
	}

	if config.MinWidth > 0 || config.MaxWidth > 0 {
		maxW, maxH := config.MaxWidth, config.MaxHeight
		if maxW == 0 {
			maxW = glfw.DontCare
		}
		if maxH == 0 {
			maxH = glfw.DontCare
		}
		handle.SetSizeLimits(config.MinWidth, config.MinHeight, maxW, maxH)
	}
	if config.CursorGrab || config.CursorHide {
		mode := glfw.CursorHidden
		if config.CursorGrab {
			mode = glfw.CursorDisabled
		}
		handle.SetInputMode(glfw.CursorMode, mode)
	}

	w := &Window{Handle: handle}
	handle.SetFramebufferSizeCallback(func(_ *glfw.Window, _, _ int) {
		w.resized = true
	})
	return w, nil
}

// Extent returns the current framebuffer size.
func (w *Window) Extent() vk.Extent2D {
	width, height := w.Handle.GetFramebufferSize()
	return vk.Extent2D{Width: uint32(width), Height: uint32(height)}
}

// ConsumeResize reports and clears the pending-resize flag.
func (w *Window) ConsumeResize() bool {
	resized := w.resized
	w.resized = false
	return resized
}

// WaitWhileMinimized blocks until the framebuffer has a non-zero area, the
// usual treatment of minimized windows before swapchain recreation.
func (w *Window) WaitWhileMinimized() {
	width, height := w.Handle.GetFramebufferSize()
	for width == 0 || height == 0 {
		glfw.WaitEvents()
		width, height = w.Handle.GetFramebufferSize()
	}
}

// ShouldClose reports whether the user asked to close the window.
func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

// Destroy destroys the window and terminates GLFW.
func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}
