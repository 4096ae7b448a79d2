package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// SemaphoreCI builds a binary vk.Semaphore.
type SemaphoreCI struct {
	info vk.SemaphoreCreateInfo
}

// Semaphore starts a semaphore create info.
func Semaphore() *SemaphoreCI {
	return &SemaphoreCI{
		info: vk.SemaphoreCreateInfo{
			SType: vk.StructureTypeSemaphoreCreateInfo,
		},
	}
}

// Build creates the semaphore.
func (s *SemaphoreCI) Build(dev vk.Device) (vk.Semaphore, error) {
	var handle vk.Semaphore
	if ret := vk.CreateSemaphore(dev, &s.info, nil, &handle); ret != vk.Success {
		return vk.NullSemaphore, vkbase.ErrCreate("semaphore", ret)
	}
	return handle, nil
}

// FenceCI builds a vk.Fence.
type FenceCI struct {
	info vk.FenceCreateInfo
}

// Fence starts a fence create info, signaled or not.
func Fence(signaled bool) *FenceCI {
	info := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		info.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}
	return &FenceCI{info: info}
}

// Build creates the fence.
func (f *FenceCI) Build(dev vk.Device) (vk.Fence, error) {
	var handle vk.Fence
	if ret := vk.CreateFence(dev, &f.info, nil, &handle); ret != vk.Success {
		return vk.NullFence, vkbase.ErrCreate("fence", ret)
	}
	return handle, nil
}
