package vkbase

import (
	vk "github.com/vulkan-go/vulkan"
)

// SwapchainConfig controls swapchain creation and per-frame acquisition.
type SwapchainConfig struct {
	// Vsync forces FIFO presentation. Without it the negotiation prefers
	// mailbox, then immediate, then FIFO.
	Vsync bool

	// PreferredExtent is used only when the surface leaves the extent to the
	// application.
	PreferredExtent vk.Extent2D

	// AcquireTimeout in nanoseconds. Zero means wait forever.
	AcquireTimeout uint64
}

// DefaultSwapchainConfig waits forever on acquire with vsync off.
func DefaultSwapchainConfig() SwapchainConfig {
	return SwapchainConfig{
		PreferredExtent: vk.Extent2D{Width: 1280, Height: 720},
	}
}

// SyncStatus reports how an acquire or present call went when it did not
// plainly succeed.
type SyncStatus int

const (
	// SyncOK means the image is usable.
	SyncOK SyncStatus = iota
	// SyncTimeout means AcquireTimeout elapsed without an image.
	SyncTimeout
	// SyncSuboptimal means the image is usable but the swapchain no longer
	// matches the surface exactly.
	SyncSuboptimal
	// SyncOutOfDate means the swapchain is unusable and must be recreated.
	SyncOutOfDate
	// SyncError means an unrecoverable failure.
	SyncError
)

// surfaceSupport is everything the surface reports ahead of negotiation.
type surfaceSupport struct {
	capabilities vk.SurfaceCapabilities
	formats      []vk.SurfaceFormat
	presentModes []vk.PresentMode
}

func querySurfaceSupport(phy vk.PhysicalDevice, surface vk.Surface) (*surfaceSupport, error) {
	var support surfaceSupport
	if ret := vk.GetPhysicalDeviceSurfaceCapabilities(phy, surface, &support.capabilities); ret != vk.Success {
		return nil, ErrQuery("surface capabilities")
	}
	support.capabilities.Deref()
	support.capabilities.CurrentExtent.Deref()
	support.capabilities.MinImageExtent.Deref()
	support.capabilities.MaxImageExtent.Deref()

	var formatCount uint32
	if ret := vk.GetPhysicalDeviceSurfaceFormats(phy, surface, &formatCount, nil); ret != vk.Success {
		return nil, ErrQuery("surface formats")
	}
	support.formats = make([]vk.SurfaceFormat, formatCount)
	if ret := vk.GetPhysicalDeviceSurfaceFormats(phy, surface, &formatCount, support.formats); ret != vk.Success {
		return nil, ErrQuery("surface formats")
	}
	for i := range support.formats {
		support.formats[i].Deref()
	}

	var modeCount uint32
	if ret := vk.GetPhysicalDeviceSurfacePresentModes(phy, surface, &modeCount, nil); ret != vk.Success {
		return nil, ErrQuery("surface present modes")
	}
	support.presentModes = make([]vk.PresentMode, modeCount)
	if ret := vk.GetPhysicalDeviceSurfacePresentModes(phy, surface, &modeCount, support.presentModes); ret != vk.Success {
		return nil, ErrQuery("surface present modes")
	}

	if len(support.formats) == 0 || len(support.presentModes) == 0 {
		return nil, ErrUnsupported("presentation to this surface")
	}
	return &support, nil
}

func chooseSurfaceFormat(available []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, format := range available {
		if format.Format == vk.FormatB8g8r8a8Unorm {
			return format
		}
	}
	return available[0]
}

func choosePresentMode(available []vk.PresentMode, vsync bool) vk.PresentMode {
	// FIFO is the only mode the standard guarantees.
	if vsync {
		return vk.PresentModeFifo
	}
	for _, wanted := range []vk.PresentMode{vk.PresentModeMailbox, vk.PresentModeImmediate} {
		for _, mode := range available {
			if mode == wanted {
				return mode
			}
		}
	}
	return vk.PresentModeFifo
}

// specialExtent is the sentinel meaning "the application decides".
const specialExtent = 0xFFFFFFFF

func chooseExtent(caps vk.SurfaceCapabilities, preferred vk.Extent2D) vk.Extent2D {
	if caps.CurrentExtent.Width != specialExtent {
		return caps.CurrentExtent
	}
	return vk.Extent2D{
		Width:  clamp(preferred.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clamp(preferred.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

func chooseImageCount(caps vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount + 1
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

func chooseImageUsage(caps vk.SurfaceCapabilities) vk.ImageUsageFlags {
	usage := vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit)
	// Transfer usage enables screenshots and clears when the surface allows.
	for _, extra := range []vk.ImageUsageFlagBits{vk.ImageUsageTransferSrcBit, vk.ImageUsageTransferDstBit} {
		if caps.SupportedUsageFlags&vk.ImageUsageFlags(extra) != 0 {
			usage |= vk.ImageUsageFlags(extra)
		}
	}
	return usage
}

func choosePreTransform(caps vk.SurfaceCapabilities) vk.SurfaceTransformFlagBits {
	if caps.SupportedTransforms&vk.SurfaceTransformFlags(vk.SurfaceTransformIdentityBit) != 0 {
		return vk.SurfaceTransformIdentityBit
	}
	return caps.CurrentTransform
}

func chooseCompositeAlpha(caps vk.SurfaceCapabilities) vk.CompositeAlphaFlagBits {
	candidates := []vk.CompositeAlphaFlagBits{
		vk.CompositeAlphaOpaqueBit,
		vk.CompositeAlphaPreMultipliedBit,
		vk.CompositeAlphaPostMultipliedBit,
		vk.CompositeAlphaInheritBit,
	}
	for _, candidate := range candidates {
		if caps.SupportedCompositeAlpha&vk.CompositeAlphaFlags(candidate) != 0 {
			return candidate
		}
	}
	return vk.CompositeAlphaOpaqueBit
}

func clamp(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Swapchain owns the vk.Swapchain together with its images and views.
type Swapchain struct {
	Handle vk.Swapchain

	Images []vk.Image
	Views  []vk.ImageView
	Format vk.Format
	Extent vk.Extent2D

	device  vk.Device
	timeout uint64
}

// NewSwapchain negotiates and creates a swapchain for the surface. The
// graphics queue must be able to present to the surface.
func NewSwapchain(dev *Device, surface *Surface, config SwapchainConfig) (*Swapchain, error) {
	return buildSwapchain(dev, surface, config, vk.NullSwapchain)
}

// Recreate builds a replacement swapchain handing the old one to the driver,
// then destroys the old images and views. The caller must wait the device
// idle first.
func (s *Swapchain) Recreate(dev *Device, surface *Surface, config SwapchainConfig) (*Swapchain, error) {
	replacement, err := buildSwapchain(dev, surface, config, s.Handle)
	if err != nil {
		return nil, err
	}
	s.Destroy()
	return replacement, nil
}

func buildSwapchain(dev *Device, surface *Surface, config SwapchainConfig, old vk.Swapchain) (*Swapchain, error) {
	var presentSupport vk.Bool32
	vk.GetPhysicalDeviceSurfaceSupport(dev.Phy.Handle, dev.GraphicsQueue.FamilyIndex, surface.Handle, &presentSupport)
	if presentSupport != vk.True {
		return nil, ErrUnsupported("presentation on the graphics queue family")
	}

	support, err := querySurfaceSupport(dev.Phy.Handle, surface.Handle)
	if err != nil {
		return nil, err
	}

	format := chooseSurfaceFormat(support.formats)
	extent := chooseExtent(support.capabilities, config.PreferredExtent)

	createInfo := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface.Handle,
		MinImageCount:    chooseImageCount(support.capabilities),
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		ImageArrayLayers: 1,
		ImageUsage:       chooseImageUsage(support.capabilities),
		ImageSharingMode: vk.SharingModeExclusive,
		PreTransform:     choosePreTransform(support.capabilities),
		CompositeAlpha:   chooseCompositeAlpha(support.capabilities),
		PresentMode:      choosePresentMode(support.presentModes, config.Vsync),
		Clipped:          vk.True,
		OldSwapchain:     old,
	}

	var handle vk.Swapchain
	if ret := vk.CreateSwapchain(dev.Handle, &createInfo, nil, &handle); ret != vk.Success {
		return nil, ErrCreate("swapchain", ret)
	}

	swapchain := &Swapchain{
		Handle:  handle,
		Format:  format.Format,
		Extent:  extent,
		device:  dev.Handle,
		timeout: config.AcquireTimeout,
	}
	if swapchain.timeout == 0 {
		swapchain.timeout = vk.MaxUint64
	}

	var imageCount uint32
	if ret := vk.GetSwapchainImages(dev.Handle, handle, &imageCount, nil); ret != vk.Success {
		swapchain.Destroy()
		return nil, ErrQuery("swapchain images")
	}
	swapchain.Images = make([]vk.Image, imageCount)
	if ret := vk.GetSwapchainImages(dev.Handle, handle, &imageCount, swapchain.Images); ret != vk.Success {
		swapchain.Destroy()
		return nil, ErrQuery("swapchain images")
	}

	swapchain.Views = make([]vk.ImageView, imageCount)
	for i, image := range swapchain.Images {
		viewInfo := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    image,
			ViewType: vk.ImageViewType2d,
			Format:   format.Format,
			Components: vk.ComponentMapping{
				R: vk.ComponentSwizzleIdentity,
				G: vk.ComponentSwizzleIdentity,
				B: vk.ComponentSwizzleIdentity,
				A: vk.ComponentSwizzleIdentity,
			},
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}
		if ret := vk.CreateImageView(dev.Handle, &viewInfo, nil, &swapchain.Views[i]); ret != vk.Success {
			swapchain.Destroy()
			return nil, ErrCreate("swapchain image view", ret)
		}
	}

	return swapchain, nil
}

// AcquireNextImage fetches the next presentable image index, signaling
// available once the image is ready to render into.
func (s *Swapchain) AcquireNextImage(available vk.Semaphore) (uint32, SyncStatus) {
	var index uint32
	ret := vk.AcquireNextImage(s.device, s.Handle, s.timeout, available, vk.NullFence, &index)
	return index, syncStatusOf(ret)
}

// Present queues the image for presentation once rendered signals.
func (s *Swapchain) Present(queue *Queue, imageIndex uint32, rendered vk.Semaphore) SyncStatus {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{rendered},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{s.Handle},
		PImageIndices:      []uint32{imageIndex},
	}
	return syncStatusOf(vk.QueuePresent(queue.Handle, &presentInfo))
}

func syncStatusOf(ret vk.Result) SyncStatus {
	switch ret {
	case vk.Success:
		return SyncOK
	case vk.Timeout, vk.NotReady:
		return SyncTimeout
	case vk.Suboptimal:
		return SyncSuboptimal
	case vk.ErrorOutOfDate:
		return SyncOutOfDate
	default:
		return SyncError
	}
}

// Destroy releases the image views and the swapchain handle. The images
// belong to the swapchain and go away with it.
func (s *Swapchain) Destroy() {
	for _, view := range s.Views {
		vk.DestroyImageView(s.device, view, nil)
	}
	s.Views = nil
	if s.Handle != vk.NullSwapchain {
		vk.DestroySwapchain(s.device, s.Handle, nil)
		s.Handle = vk.NullSwapchain
	}
}
