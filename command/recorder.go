// Package command wraps command buffer recording behind typed recorders. A
// GraphicsRecorder exposes the draw-path commands, a TransferRecorder the
// copy-path ones; both chain fluently.
package command

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// Recorder is the part shared by both recorder kinds.
type Recorder struct {
	Buffer vk.CommandBuffer
}

// Begin starts recording with the given usage flags.
func (r *Recorder) Begin(flags vk.CommandBufferUsageFlagBits) error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(flags),
	}
	if ret := vk.BeginCommandBuffer(r.Buffer, &beginInfo); ret != vk.Success {
		return vkbase.ErrDevice("begin command buffer", ret)
	}
	return nil
}

// End finishes recording.
func (r *Recorder) End() error {
	if ret := vk.EndCommandBuffer(r.Buffer); ret != vk.Success {
		return vkbase.ErrDevice("end command buffer", ret)
	}
	return nil
}

// Reset returns the buffer to the initial state. The pool must have been
// created with individual reset enabled.
func (r *Recorder) Reset() error {
	if ret := vk.ResetCommandBuffer(r.Buffer, 0); ret != vk.Success {
		return vkbase.ErrDevice("reset command buffer", ret)
	}
	return nil
}
