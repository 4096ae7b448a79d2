package vkbase

import (
	"log"

	"github.com/google/uuid"
	vk "github.com/vulkan-go/vulkan"
)

// PhysicalConfig controls physical device selection.
type PhysicalConfig struct {
	// PreferredTypes orders acceptable device types, most wanted first.
	PreferredTypes []vk.PhysicalDeviceType

	// Extensions lists device extensions the device must support.
	Extensions []string

	// Features holds the device features the device must support. The same
	// set is enabled on the logical device.
	Features vk.PhysicalDeviceFeatures

	PrintProperties bool
}

// DefaultPhysicalConfig prefers a discrete GPU and requires swapchain support.
func DefaultPhysicalConfig() PhysicalConfig {
	return PhysicalConfig{
		PreferredTypes: []vk.PhysicalDeviceType{
			vk.PhysicalDeviceTypeDiscreteGpu,
			vk.PhysicalDeviceTypeIntegratedGpu,
			vk.PhysicalDeviceTypeCpu,
		},
		Extensions: []string{vk.KhrSwapchainExtensionName},
	}
}

// depthFormatCandidates ordered by preference.
var depthFormatCandidates = []vk.Format{
	vk.FormatD32SfloatS8Uint,
	vk.FormatD32Sfloat,
	vk.FormatD24UnormS8Uint,
	vk.FormatD16UnormS8Uint,
	vk.FormatD16Unorm,
}

// PhysicalDevice is a selected physical device together with the properties
// the rest of the wrapper keeps asking for.
type PhysicalDevice struct {
	Handle vk.PhysicalDevice

	Properties       vk.PhysicalDeviceProperties
	MemoryProperties vk.PhysicalDeviceMemoryProperties
	Limits           vk.PhysicalDeviceLimits
	EnabledFeatures  vk.PhysicalDeviceFeatures
	Extensions       []string

	// DepthFormat is the most capable depth format the device supports as an
	// optimal tiling depth-stencil attachment.
	DepthFormat vk.Format

	QueueFamilies []vk.QueueFamilyProperties
}

// PickPhysicalDevice selects the first device matching config, honoring the
// preferred type order.
func PickPhysicalDevice(instance *Instance, config PhysicalConfig) (*PhysicalDevice, error) {
	var count uint32
	if ret := vk.EnumeratePhysicalDevices(instance.Handle, &count, nil); ret != vk.Success {
		return nil, ErrQuery("physical devices")
	}
	if count == 0 {
		return nil, ErrUnsupported("any GPU with Vulkan driver")
	}
	devices := make([]vk.PhysicalDevice, count)
	if ret := vk.EnumeratePhysicalDevices(instance.Handle, &count, devices); ret != vk.Success {
		return nil, ErrQuery("physical devices")
	}

	preferred := config.PreferredTypes
	if len(preferred) == 0 {
		preferred = DefaultPhysicalConfig().PreferredTypes
	}

	for _, wanted := range preferred {
		for _, candidate := range devices {
			dev, ok := inspectDevice(candidate, wanted, config)
			if !ok {
				continue
			}
			if config.PrintProperties {
				dev.printProperties()
			}
			return dev, nil
		}
	}
	return nil, ErrUnsupported("a physical device matching the requested type, extensions and features")
}

func inspectDevice(handle vk.PhysicalDevice, wanted vk.PhysicalDeviceType, config PhysicalConfig) (*PhysicalDevice, bool) {
	var properties vk.PhysicalDeviceProperties
	vk.GetPhysicalDeviceProperties(handle, &properties)
	properties.Deref()
	properties.Limits.Deref()

	if properties.DeviceType != wanted {
		return nil, false
	}
	if !supportsExtensions(handle, config.Extensions) {
		return nil, false
	}
	if !supportsFeatures(handle, config.Features) {
		return nil, false
	}

	dev := &PhysicalDevice{
		Handle:          handle,
		Properties:      properties,
		Limits:          properties.Limits,
		EnabledFeatures: config.Features,
		Extensions:      config.Extensions,
		DepthFormat:     findDepthFormat(handle),
	}

	vk.GetPhysicalDeviceMemoryProperties(handle, &dev.MemoryProperties)
	dev.MemoryProperties.Deref()

	var familyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(handle, &familyCount, nil)
	dev.QueueFamilies = make([]vk.QueueFamilyProperties, familyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(handle, &familyCount, dev.QueueFamilies)
	for i := range dev.QueueFamilies {
		dev.QueueFamilies[i].Deref()
	}

	return dev, true
}

func supportsExtensions(handle vk.PhysicalDevice, required []string) bool {
	if len(required) == 0 {
		return true
	}
	var count uint32
	if ret := vk.EnumerateDeviceExtensionProperties(handle, "", &count, nil); ret != vk.Success {
		return false
	}
	properties := make([]vk.ExtensionProperties, count)
	if ret := vk.EnumerateDeviceExtensionProperties(handle, "", &count, properties); ret != vk.Success {
		return false
	}

	available := make(map[string]bool, count)
	for i := range properties {
		properties[i].Deref()
		available[vk.ToString(properties[i].ExtensionName[:])] = true
	}
	for _, ext := range required {
		if !available[ext] {
			return false
		}
	}
	return true
}

// supportsFeatures checks the handful of features the wrapper and its callers
// actually request. Extend as demand grows.
func supportsFeatures(handle vk.PhysicalDevice, required vk.PhysicalDeviceFeatures) bool {
	var features vk.PhysicalDeviceFeatures
	vk.GetPhysicalDeviceFeatures(handle, &features)
	features.Deref()

	switch {
	case required.SamplerAnisotropy == vk.True && features.SamplerAnisotropy != vk.True:
		return false
	case required.FillModeNonSolid == vk.True && features.FillModeNonSolid != vk.True:
		return false
	case required.GeometryShader == vk.True && features.GeometryShader != vk.True:
		return false
	case required.TessellationShader == vk.True && features.TessellationShader != vk.True:
		return false
	case required.TextureCompressionBC == vk.True && features.TextureCompressionBC != vk.True:
		return false
	case required.WideLines == vk.True && features.WideLines != vk.True:
		return false
	case required.DepthClamp == vk.True && features.DepthClamp != vk.True:
		return false
	}
	return true
}

func findDepthFormat(handle vk.PhysicalDevice) vk.Format {
	for _, format := range depthFormatCandidates {
		var props vk.FormatProperties
		vk.GetPhysicalDeviceFormatProperties(handle, format, &props)
		props.Deref()
		if vk.FormatFeatureFlagBits(props.OptimalTilingFeatures)&vk.FormatFeatureDepthStencilAttachmentBit != 0 {
			return format
		}
	}
	return vk.FormatUndefined
}

// MemoryTypeIndex finds a memory type contained in typeBits with all the
// requested property flags set.
func (p *PhysicalDevice) MemoryTypeIndex(typeBits uint32, props vk.MemoryPropertyFlags) (uint32, error) {
	for i := uint32(0); i < p.MemoryProperties.MemoryTypeCount; i++ {
		if typeBits&(1<<i) == 0 {
			continue
		}
		p.MemoryProperties.MemoryTypes[i].Deref()
		if p.MemoryProperties.MemoryTypes[i].PropertyFlags&props == props {
			return i, nil
		}
	}
	return 0, ErrUnsupported("a suitable memory type")
}

func (p *PhysicalDevice) printProperties() {
	apiVersion := p.Properties.ApiVersion
	cacheUUID := uuid.Must(uuid.FromBytes(p.Properties.PipelineCacheUUID[:]))
	log.Printf("[Info] using device: %s", vk.ToString(p.Properties.DeviceName[:]))
	log.Printf("[Info] device type: %s, api version %d.%d.%d",
		deviceTypeName(p.Properties.DeviceType),
		apiVersion>>22, (apiVersion>>12)&0x3ff, apiVersion&0xfff)
	log.Printf("[Info] pipeline cache UUID: %s", cacheUUID)
}

func deviceTypeName(t vk.PhysicalDeviceType) string {
	switch t {
	case vk.PhysicalDeviceTypeDiscreteGpu:
		return "discrete GPU"
	case vk.PhysicalDeviceTypeIntegratedGpu:
		return "integrated GPU"
	case vk.PhysicalDeviceTypeVirtualGpu:
		return "virtual GPU"
	case vk.PhysicalDeviceTypeCpu:
		return "CPU"
	default:
		return "other"
	}
}
