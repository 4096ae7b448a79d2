package vkbase

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormatPrefersB8G8R8A8Unorm(t *testing.T) {
	available := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}
	got := chooseSurfaceFormat(available)
	if got.Format != vk.FormatB8g8r8a8Unorm {
		t.Errorf("chose format %v, want FormatB8g8r8a8Unorm", got.Format)
	}
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	available := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Srgb},
		{Format: vk.FormatR5g6b5UnormPack16},
	}
	if got := chooseSurfaceFormat(available); got.Format != vk.FormatR8g8b8a8Srgb {
		t.Errorf("chose format %v, want the first available", got.Format)
	}
}

func TestChoosePresentMode(t *testing.T) {
	cases := []struct {
		name      string
		available []vk.PresentMode
		vsync     bool
		want      vk.PresentMode
	}{
		{"vsync forces fifo", []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeFifo}, true, vk.PresentModeFifo},
		{"mailbox preferred", []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate, vk.PresentModeMailbox}, false, vk.PresentModeMailbox},
		{"immediate next", []vk.PresentMode{vk.PresentModeFifo, vk.PresentModeImmediate}, false, vk.PresentModeImmediate},
		{"fifo last resort", []vk.PresentMode{vk.PresentModeFifo}, false, vk.PresentModeFifo},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := choosePresentMode(c.available, c.vsync); got != c.want {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestChooseExtentUsesCurrentWhenFixed(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 800, Height: 600},
	}
	got := chooseExtent(caps, vk.Extent2D{Width: 1920, Height: 1080})
	if got.Width != 800 || got.Height != 600 {
		t.Errorf("got %dx%d, want the surface's 800x600", got.Width, got.Height)
	}
}

func TestChooseExtentClampsPreference(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: specialExtent, Height: specialExtent},
		MinImageExtent: vk.Extent2D{Width: 320, Height: 240},
		MaxImageExtent: vk.Extent2D{Width: 1600, Height: 900},
	}
	got := chooseExtent(caps, vk.Extent2D{Width: 4096, Height: 100})
	if got.Width != 1600 {
		t.Errorf("width %d, want clamped 1600", got.Width)
	}
	if got.Height != 240 {
		t.Errorf("height %d, want clamped 240", got.Height)
	}
}

func TestChooseImageCount(t *testing.T) {
	cases := []struct {
		min, max, want uint32
	}{
		{2, 0, 3},
		{2, 8, 3},
		{3, 3, 3},
	}
	for _, c := range cases {
		caps := vk.SurfaceCapabilities{MinImageCount: c.min, MaxImageCount: c.max}
		if got := chooseImageCount(caps); got != c.want {
			t.Errorf("min=%d max=%d: got %d images, want %d", c.min, c.max, got, c.want)
		}
	}
}

func TestChooseImageUsageMasksUnsupportedTransfer(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		SupportedUsageFlags: vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit | vk.ImageUsageTransferDstBit),
	}
	usage := chooseImageUsage(caps)
	if usage&vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit) == 0 {
		t.Error("color attachment usage must always be present")
	}
	if usage&vk.ImageUsageFlags(vk.ImageUsageTransferSrcBit) != 0 {
		t.Error("transfer src must stay unset when the surface does not support it")
	}
	if usage&vk.ImageUsageFlags(vk.ImageUsageTransferDstBit) == 0 {
		t.Error("transfer dst should be set when the surface supports it")
	}
}

func TestChoosePreTransform(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		SupportedTransforms: vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit | vk.SurfaceTransformRotate90Bit),
		CurrentTransform:    vk.SurfaceTransformRotate90Bit,
	}
	if got := choosePreTransform(caps); got != vk.SurfaceTransformIdentityBit {
		t.Errorf("got %v, want identity when supported", got)
	}

	caps.SupportedTransforms = vk.SurfaceTransformFlags(vk.SurfaceTransformRotate90Bit)
	if got := choosePreTransform(caps); got != vk.SurfaceTransformRotate90Bit {
		t.Errorf("got %v, want the current transform as fallback", got)
	}
}

func TestChooseCompositeAlphaOrder(t *testing.T) {
	caps := vk.SurfaceCapabilities{
		SupportedCompositeAlpha: vk.CompositeAlphaFlags(vk.CompositeAlphaPostMultipliedBit | vk.CompositeAlphaInheritBit),
	}
	if got := chooseCompositeAlpha(caps); got != vk.CompositeAlphaPostMultipliedBit {
		t.Errorf("got %v, want post-multiplied before inherit", got)
	}
}

func TestSyncStatusOf(t *testing.T) {
	cases := []struct {
		ret  vk.Result
		want SyncStatus
	}{
		{vk.Success, SyncOK},
		{vk.Timeout, SyncTimeout},
		{vk.NotReady, SyncTimeout},
		{vk.Suboptimal, SyncSuboptimal},
		{vk.ErrorOutOfDate, SyncOutOfDate},
		{vk.ErrorDeviceLost, SyncError},
	}
	for _, c := range cases {
		if got := syncStatusOf(c.ret); got != c.want {
			t.Errorf("syncStatusOf(%v) = %v, want %v", c.ret, got, c.want)
		}
	}
}
