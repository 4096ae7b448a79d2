package ci

import (
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
)

// SubmitCI builds one vk.SubmitInfo and hands it to a queue.
type SubmitCI struct {
	waits      []vk.Semaphore
	waitStages []vk.PipelineStageFlags
	signals    []vk.Semaphore
	buffers    []vk.CommandBuffer
}

// Submit starts an empty submission.
func Submit() *SubmitCI {
	return &SubmitCI{}
}

// Wait makes the submission wait on semaphore before the given stage.
func (s *SubmitCI) Wait(semaphore vk.Semaphore, stage vk.PipelineStageFlagBits) *SubmitCI {
	s.waits = append(s.waits, semaphore)
	s.waitStages = append(s.waitStages, vk.PipelineStageFlags(stage))
	return s
}

// Signal makes the submission signal semaphore when it finishes.
func (s *SubmitCI) Signal(semaphore vk.Semaphore) *SubmitCI {
	s.signals = append(s.signals, semaphore)
	return s
}

// Commands appends command buffers in execution order.
func (s *SubmitCI) Commands(buffers ...vk.CommandBuffer) *SubmitCI {
	s.buffers = append(s.buffers, buffers...)
	return s
}

// Info returns the finished vk struct.
func (s *SubmitCI) Info() vk.SubmitInfo {
	return vk.SubmitInfo{
		SType:                vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount:   uint32(len(s.waits)),
		PWaitSemaphores:      s.waits,
		PWaitDstStageMask:    s.waitStages,
		CommandBufferCount:   uint32(len(s.buffers)),
		PCommandBuffers:      s.buffers,
		SignalSemaphoreCount: uint32(len(s.signals)),
		PSignalSemaphores:    s.signals,
	}
}

// SubmitTo queues the submission, optionally fenced.
func (s *SubmitCI) SubmitTo(queue vk.Queue, fence vk.Fence) error {
	info := s.Info()
	if ret := vk.QueueSubmit(queue, 1, []vk.SubmitInfo{info}, fence); ret != vk.Success {
		return vkbase.ErrDevice("submit command buffers", ret)
	}
	return nil
}
