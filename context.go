package vkbase

import (
	"log"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// ContextConfig aggregates the configuration of every object the context
// creates. DefaultContextConfig is a working starting point; examples tweak
// individual fields from there.
type ContextConfig struct {
	Instance  InstanceConfig
	Debug     DebugSeverity
	Physical  PhysicalConfig
	Logic     LogicConfig
	Swapchain SwapchainConfig
}

// DefaultContextConfig enables validation with warnings-and-errors reporting.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		Instance:  DefaultInstanceConfig(),
		Debug:     DebugWarnings,
		Physical:  DefaultPhysicalConfig(),
		Logic:     DefaultLogicConfig(),
		Swapchain: DefaultSwapchainConfig(),
	}
}

// Context owns the Vulkan core objects in creation order.
type Context struct {
	Instance  *Instance
	Debugger  *Debugger
	Surface   *Surface
	Phy       *PhysicalDevice
	Device    *Device
	Swapchain *Swapchain

	config ContextConfig
}

// NewContext builds instance, debugger, surface, device and swapchain for
// window. On any failure everything built so far is torn down.
func NewContext(window *glfw.Window, config ContextConfig) (*Context, error) {
	ctx := &Context{config: config}
	if err := ctx.build(window); err != nil {
		ctx.Destroy()
		return nil, err
	}
	return ctx, nil
}

func (c *Context) build(window *glfw.Window) error {
	var err error

	if !c.config.Instance.DebugReport {
		c.config.Debug = DebugNone
	}
	if c.Instance, err = NewInstance(c.config.Instance); err != nil {
		return err
	}
	if c.Debugger, err = NewDebugger(c.Instance, c.config.Debug); err != nil {
		return err
	}
	if c.Surface, err = NewSurface(c.Instance, window); err != nil {
		return err
	}
	if c.Phy, err = PickPhysicalDevice(c.Instance, c.config.Physical); err != nil {
		return err
	}
	if c.Device, err = NewDevice(c.Instance, c.Phy, c.config.Logic); err != nil {
		return err
	}
	if c.Swapchain, err = NewSwapchain(c.Device, c.Surface, c.config.Swapchain); err != nil {
		return err
	}
	return nil
}

// RecreateSwapchain replaces the swapchain after the surface changed. The
// caller must wait the device idle first.
func (c *Context) RecreateSwapchain() error {
	replacement, err := c.Swapchain.Recreate(c.Device, c.Surface, c.config.Swapchain)
	if err != nil {
		return err
	}
	c.Swapchain = replacement
	return nil
}

// Destroy tears everything down in reverse creation order. Safe to call on a
// partially built context.
func (c *Context) Destroy() {
	if c.Device != nil {
		if err := c.Device.Wait(); err != nil {
			log.Printf("[Warning] device wait during teardown: %v", err)
		}
	}
	if c.Swapchain != nil {
		c.Swapchain.Destroy()
		c.Swapchain = nil
	}
	if c.Device != nil {
		c.Device.Destroy()
		c.Device = nil
	}
	if c.Debugger != nil {
		c.Debugger.Destroy()
		c.Debugger = nil
	}
	if c.Surface != nil {
		c.Surface.Destroy()
		c.Surface = nil
	}
	if c.Instance != nil {
		c.Instance.Destroy()
		c.Instance = nil
	}
}
