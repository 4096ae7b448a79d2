package vkbase

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"
)

// Surface wraps a window surface created through GLFW.
type Surface struct {
	Handle   vk.Surface
	instance vk.Instance
}

// NewSurface creates a presentation surface for window.
func NewSurface(instance *Instance, window *glfw.Window) (*Surface, error) {
	surfacePtr, err := window.CreateWindowSurface(instance.Handle, nil)
	if err != nil {
		return nil, ErrWindow(err)
	}
	return &Surface{
		Handle:   vk.SurfaceFromPointer(surfacePtr),
		instance: instance.Handle,
	}, nil
}

// Destroy releases the surface. Call it before the instance goes away.
func (s *Surface) Destroy() {
	if s.Handle != vk.NullSurface {
		vk.DestroySurface(s.instance, s.Handle, nil)
		s.Handle = vk.NullSurface
	}
}
