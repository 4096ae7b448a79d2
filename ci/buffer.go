// Package ci wraps the Vulkan create info structs in small builders with
// usable defaults. Every builder starts from a constructor, is adjusted
// through fluent setters and ends in a Build call against the device.
package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// BufferCI builds a vk.Buffer.
type BufferCI struct {
	info vk.BufferCreateInfo
}

// Buffer starts a buffer create info for size bytes, exclusive sharing.
func Buffer(size vk.DeviceSize) *BufferCI {
	return &BufferCI{
		info: vk.BufferCreateInfo{
			SType:       vk.StructureTypeBufferCreateInfo,
			Size:        size,
			SharingMode: vk.SharingModeExclusive,
		},
	}
}

// Usage sets the buffer usage flags.
func (b *BufferCI) Usage(usage vk.BufferUsageFlagBits) *BufferCI {
	b.info.Usage = vk.BufferUsageFlags(usage)
	return b
}

// Sharing switches the sharing mode and the owning queue families.
func (b *BufferCI) Sharing(mode vk.SharingMode, families []uint32) *BufferCI {
	b.info.SharingMode = mode
	b.info.QueueFamilyIndexCount = uint32(len(families))
	b.info.PQueueFamilyIndices = families
	return b
}

// Build creates the buffer.
func (b *BufferCI) Build(dev vk.Device) (vk.Buffer, error) {
	if b.info.Usage == 0 {
		return vk.NullBuffer, vkbase.ErrUnsupported("a buffer without usage flags")
	}
	var handle vk.Buffer
	if ret := vk.CreateBuffer(dev, &b.info, nil, &handle); ret != vk.Success {
		return vk.NullBuffer, vkbase.ErrCreate("buffer", ret)
	}
	return handle, nil
}
