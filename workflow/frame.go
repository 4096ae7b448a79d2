package workflow

import (
	vk "github.com/vulkan-go/vulkan"
)

// FrameAction is what the loop does after evaluating a frame.
type FrameAction int

const (
	// Rendering continues with the next frame.
	Rendering FrameAction = iota
	// SwapchainRecreate rebuilds the swapchain before the next frame.
	SwapchainRecreate
	// Terminate leaves the loop.
	Terminate
)

// FrameEnv is everything the loop hands the application for one frame.
type FrameEnv struct {
	// ImageIndex is the acquired swapchain image.
	ImageIndex uint32
	// InflightIndex cycles over the frames in flight; per-frame resources
	// are indexed with it.
	InflightIndex int
	// ImageAvailable is signaled when the image can be rendered into.
	ImageAvailable vk.Semaphore
	// DeviceAvailable is the per-frame fence the submission must signal.
	DeviceAvailable vk.Fence
	// DeltaTime is the duration of the previous frame in seconds.
	DeltaTime float32
}

// Workflow is implemented by every application the render context drives.
type Workflow interface {
	// Init builds the application's Vulkan objects. The context's device
	// and swapchain exist by then.
	Init() error

	// RenderFrame submits the frame's command buffers. The submission must
	// wait on env.ImageAvailable, signal env.DeviceAvailable when the GPU
	// is done, and return the semaphore presentation has to wait on.
	RenderFrame(env FrameEnv) (vk.Semaphore, error)

	// SwapchainReload rebuilds everything derived from the swapchain after
	// a recreate.
	SwapchainReload() error

	// ReceiveInput reacts to the input state and returns the action the
	// loop should take.
	ReceiveInput(events *EventController, delta float32) FrameAction

	// Deinit destroys the application's Vulkan objects. The device is idle
	// when it runs.
	Deinit()
}
