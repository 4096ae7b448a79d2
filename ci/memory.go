package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// MemoryAI builds a device memory allocation.
type MemoryAI struct {
	info vk.MemoryAllocateInfo
}

// MemoryAllocate starts an allocate info for size bytes from the memory type
// at typeIndex.
func MemoryAllocate(size vk.DeviceSize, typeIndex uint32) *MemoryAI {
	return &MemoryAI{
		info: vk.MemoryAllocateInfo{
			SType:           vk.StructureTypeMemoryAllocateInfo,
			AllocationSize:  size,
			MemoryTypeIndex: typeIndex,
		},
	}
}

// Build allocates the memory block.
func (m *MemoryAI) Build(dev vk.Device) (vk.DeviceMemory, error) {
	var handle vk.DeviceMemory
	if ret := vk.AllocateMemory(dev, &m.info, nil, &handle); ret != vk.Success {
		return vk.NullDeviceMemory, vkbase.ErrCreate("device memory", ret)
	}
	return handle, nil
}
