package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// CommandPoolCI builds a vk.CommandPool.
type CommandPoolCI struct {
	info vk.CommandPoolCreateInfo
}

// CommandPool starts a pool create info for a queue family, with individual
// command buffer reset enabled.
func CommandPool(queueFamily uint32) *CommandPoolCI {
	return &CommandPoolCI{
		info: vk.CommandPoolCreateInfo{
			SType:            vk.StructureTypeCommandPoolCreateInfo,
			Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
			QueueFamilyIndex: queueFamily,
		},
	}
}

// Transient marks the pool's buffers as short lived.
func (c *CommandPoolCI) Transient() *CommandPoolCI {
	c.info.Flags |= vk.CommandPoolCreateFlags(vk.CommandPoolCreateTransientBit)
	return c
}

// Build creates the command pool.
func (c *CommandPoolCI) Build(dev vk.Device) (vk.CommandPool, error) {
	var handle vk.CommandPool
	if ret := vk.CreateCommandPool(dev, &c.info, nil, &handle); ret != vk.Success {
		return vk.NullCommandPool, vkbase.ErrCreate("command pool", ret)
	}
	return handle, nil
}

// CommandBufferAI builds a command buffer allocation.
type CommandBufferAI struct {
	info vk.CommandBufferAllocateInfo
}

// CommandBuffers starts an allocate info for count primary buffers from pool.
func CommandBuffers(pool vk.CommandPool, count uint32) *CommandBufferAI {
	return &CommandBufferAI{
		info: vk.CommandBufferAllocateInfo{
			SType:              vk.StructureTypeCommandBufferAllocateInfo,
			CommandPool:        pool,
			Level:              vk.CommandBufferLevelPrimary,
			CommandBufferCount: count,
		},
	}
}

// Secondary switches the allocation to secondary buffers.
func (c *CommandBufferAI) Secondary() *CommandBufferAI {
	c.info.Level = vk.CommandBufferLevelSecondary
	return c
}

// Build allocates the command buffers.
func (c *CommandBufferAI) Build(dev vk.Device) ([]vk.CommandBuffer, error) {
	buffers := make([]vk.CommandBuffer, c.info.CommandBufferCount)
	if ret := vk.AllocateCommandBuffers(dev, &c.info, buffers); ret != vk.Success {
		return nil, vkbase.ErrCreate("command buffers", ret)
	}
	return buffers, nil
}
