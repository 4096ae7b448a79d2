package command

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/ci"
)

// TransferRecorder records one-shot copy work and flushes it with a fence.
// It owns a transient command pool on the device's transfer queue family.
type TransferRecorder struct {
	Recorder

	dev  *vkbase.Device
	pool vk.CommandPool
}

// NewTransfer creates the recorder and begins a one-time-submit buffer, so
// copy commands can be recorded immediately.
func NewTransfer(dev *vkbase.Device) (*TransferRecorder, error) {
	pool, err := ci.CommandPool(dev.TransferQueue.FamilyIndex).Transient().Build(dev.Handle)
	if err != nil {
		return nil, err
	}

	buffers, err := ci.CommandBuffers(pool, 1).Build(dev.Handle)
	if err != nil {
		vk.DestroyCommandPool(dev.Handle, pool, nil)
		return nil, err
	}

	t := &TransferRecorder{
		Recorder: Recorder{Buffer: buffers[0]},
		dev:      dev,
		pool:     pool,
	}
	if err := t.Begin(vk.CommandBufferUsageOneTimeSubmitBit); err != nil {
		t.Destroy()
		return nil, err
	}
	return t, nil
}

// CopyBuffer copies size bytes between buffers at offset zero.
func (t *TransferRecorder) CopyBuffer(src, dst vk.Buffer, size vk.DeviceSize) *TransferRecorder {
	region := vk.BufferCopy{Size: size}
	vk.CmdCopyBuffer(t.Buffer, src, dst, 1, []vk.BufferCopy{region})
	return t
}

// CopyBufferRegions copies explicit regions between buffers.
func (t *TransferRecorder) CopyBufferRegions(src, dst vk.Buffer, regions []vk.BufferCopy) *TransferRecorder {
	vk.CmdCopyBuffer(t.Buffer, src, dst, uint32(len(regions)), regions)
	return t
}

// CopyBufferToImage copies buffer regions into an image in transfer dst
// layout.
func (t *TransferRecorder) CopyBufferToImage(src vk.Buffer, dst vk.Image, regions []vk.BufferImageCopy) *TransferRecorder {
	vk.CmdCopyBufferToImage(t.Buffer, src, dst, vk.ImageLayoutTransferDstOptimal,
		uint32(len(regions)), regions)
	return t
}

// CopyImageToBuffer copies image regions into a buffer.
func (t *TransferRecorder) CopyImageToBuffer(src vk.Image, dst vk.Buffer, regions []vk.BufferImageCopy) *TransferRecorder {
	vk.CmdCopyImageToBuffer(t.Buffer, src, vk.ImageLayoutTransferSrcOptimal, dst,
		uint32(len(regions)), regions)
	return t
}

// CopyImage copies regions between images in transfer layouts.
func (t *TransferRecorder) CopyImage(src, dst vk.Image, regions []vk.ImageCopy) *TransferRecorder {
	vk.CmdCopyImage(t.Buffer, src, vk.ImageLayoutTransferSrcOptimal,
		dst, vk.ImageLayoutTransferDstOptimal, uint32(len(regions)), regions)
	return t
}

// Blit performs a filtered image blit.
func (t *TransferRecorder) Blit(src, dst vk.Image, regions []vk.ImageBlit, filter vk.Filter) *TransferRecorder {
	vk.CmdBlitImage(t.Buffer, src, vk.ImageLayoutTransferSrcOptimal,
		dst, vk.ImageLayoutTransferDstOptimal, uint32(len(regions)), regions, filter)
	return t
}

// ImageBarrier records a layout transition between the given pipeline stages.
func (t *TransferRecorder) ImageBarrier(srcStage, dstStage vk.PipelineStageFlagBits, barrier *ci.ImageBarrierCI) *TransferRecorder {
	barriers := []vk.ImageMemoryBarrier{barrier.Barrier()}
	vk.CmdPipelineBarrier(t.Buffer,
		vk.PipelineStageFlags(srcStage), vk.PipelineStageFlags(dstStage),
		0, 0, nil, 0, nil, 1, barriers)
	return t
}

// Flush ends recording, submits to the transfer queue and blocks on a fence
// until the copies complete. The recorder stays usable for another round
// after a Reset and Begin.
func (t *TransferRecorder) Flush() error {
	if err := t.End(); err != nil {
		return err
	}

	fence, err := ci.Fence(false).Build(t.dev.Handle)
	if err != nil {
		return err
	}
	defer vk.DestroyFence(t.dev.Handle, fence, nil)

	if err := ci.Submit().Commands(t.Buffer).SubmitTo(t.dev.TransferQueue.Handle, fence); err != nil {
		return err
	}
	fences := []vk.Fence{fence}
	if ret := vk.WaitForFences(t.dev.Handle, 1, fences, vk.True, vk.MaxUint64); ret != vk.Success {
		return vkbase.ErrDevice("wait for transfer fence", ret)
	}
	return nil
}

// Destroy frees the command buffer and its pool.
func (t *TransferRecorder) Destroy() {
	vk.FreeCommandBuffers(t.dev.Handle, t.pool, 1, []vk.CommandBuffer{t.Buffer})
	vk.DestroyCommandPool(t.dev.Handle, t.pool, nil)
}
