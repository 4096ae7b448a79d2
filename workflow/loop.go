package workflow

import (
	"log"

	"github.com/cockroachdb/errors"
	"github.com/go-gl/glfw/v3.3/glfw"
	vk "github.com/vulkan-go/vulkan"

	"vkbase"
	"vkbase/ci"
)

// framesInFlight is how many frames the CPU may record ahead of the GPU.
const framesInFlight = 2

// RenderContext owns the window, the Vulkan context and the per-frame sync
// objects, and runs the acquire/render/present loop over a Workflow.
type RenderContext struct {
	Window *Window
	Vk     *vkbase.Context
	Events *EventController

	fences     [framesInFlight]vk.Fence
	available  [framesInFlight]vk.Semaphore
	frames     *FrameCounter
	fps        *FpsCounter
	printFps   bool
	fpsElapsed float32
}

// NewRenderContext creates the window, the Vulkan context and the per-frame
// fences and semaphores.
func NewRenderContext(windowConfig WindowConfig, vkConfig vkbase.ContextConfig) (*RenderContext, error) {
	window, err := NewWindow(windowConfig)
	if err != nil {
		return nil, err
	}

	vkCtx, err := vkbase.NewContext(window.Handle, vkConfig)
	if err != nil {
		window.Destroy()
		return nil, err
	}

	rc := &RenderContext{
		Window: window,
		Vk:     vkCtx,
		Events: NewEventController(window),
		frames: NewFrameCounter(framesInFlight),
		fps:    NewFpsCounter(),
	}
	for i := 0; i < framesInFlight; i++ {
		// Fences start signaled so the first wait falls through.
		if rc.fences[i], err = ci.Fence(true).Build(vkCtx.Device.Handle); err != nil {
			rc.Destroy()
			return nil, err
		}
		if rc.available[i], err = ci.Semaphore().Build(vkCtx.Device.Handle); err != nil {
			rc.Destroy()
			return nil, err
		}
	}
	return rc, nil
}

// PrintFps logs the averaged frame rate once per second.
func (rc *RenderContext) PrintFps() *RenderContext {
	rc.printFps = true
	return rc
}

// Launch runs app: Init, then the frame loop until Terminate, then Deinit.
func (rc *RenderContext) Launch(app Workflow) error {
	if err := app.Init(); err != nil {
		return err
	}
	err := rc.mainLoop(app)

	if werr := rc.Vk.Device.Wait(); werr != nil && err == nil {
		err = werr
	}
	app.Deinit()
	return err
}

func (rc *RenderContext) mainLoop(app Workflow) error {
	for {
		glfw.PollEvents()

		delta := rc.fps.DeltaTime()
		action := app.ReceiveInput(rc.Events, delta)
		rc.Events.NextFrame()
		if rc.Window.ShouldClose() {
			action = Terminate
		}

		switch action {
		case Terminate:
			return nil
		case SwapchainRecreate:
			if err := rc.reloadSwapchain(app); err != nil {
				return err
			}
			continue
		}

		recreate, err := rc.renderFrame(app, delta)
		if err != nil {
			return err
		}
		if recreate {
			if err := rc.reloadSwapchain(app); err != nil {
				return err
			}
		}

		rc.fps.Tick()
		if rc.printFps {
			rc.fpsElapsed += rc.fps.DeltaTime()
			if rc.fpsElapsed >= 1 {
				log.Printf("[Info] %.1f fps", rc.fps.Fps())
				rc.fpsElapsed = 0
			}
		}
	}
}

type acquireOutcome int

const (
	acquireRender acquireOutcome = iota
	acquireRecreate
	acquireSkip
	acquireFailed
)

// classifyAcquire maps the acquire status to the loop action. A suboptimal
// acquire recreates immediately instead of rendering to a stale extent.
func classifyAcquire(status vkbase.SyncStatus) acquireOutcome {
	switch status {
	case vkbase.SyncOK:
		return acquireRender
	case vkbase.SyncSuboptimal, vkbase.SyncOutOfDate:
		return acquireRecreate
	case vkbase.SyncTimeout:
		return acquireSkip
	default:
		return acquireFailed
	}
}

// renderFrame runs one acquire/render/present cycle. It reports whether the
// swapchain must be recreated.
func (rc *RenderContext) renderFrame(app Workflow, delta float32) (bool, error) {
	dev := rc.Vk.Device
	current := rc.frames.Current()
	fence := rc.fences[current]
	available := rc.available[current]

	fences := []vk.Fence{fence}
	if ret := vk.WaitForFences(dev.Handle, 1, fences, vk.True, vk.MaxUint64); ret != vk.Success {
		return false, vkbase.ErrDevice("wait for frame fence", ret)
	}

	imageIndex, status := rc.Vk.Swapchain.AcquireNextImage(available)
	switch classifyAcquire(status) {
	case acquireRender:
	case acquireRecreate:
		return true, nil
	case acquireSkip:
		// Skip the frame; the image may come through next time.
		return false, nil
	default:
		return false, vkbase.ErrOther(errors.New("acquiring a swapchain image failed"))
	}

	// Reset only after acquire succeeded, otherwise the next wait would
	// deadlock on a fence nothing signals.
	if ret := vk.ResetFences(dev.Handle, 1, fences); ret != vk.Success {
		return false, vkbase.ErrDevice("reset frame fence", ret)
	}

	rendered, err := app.RenderFrame(FrameEnv{
		ImageIndex:      imageIndex,
		InflightIndex:   current,
		ImageAvailable:  available,
		DeviceAvailable: fence,
		DeltaTime:       delta,
	})
	if err != nil {
		return false, err
	}

	status = rc.Vk.Swapchain.Present(dev.GraphicsQueue, imageIndex, rendered)
	rc.frames.Next()
	switch status {
	case vkbase.SyncOK:
		return false, nil
	case vkbase.SyncSuboptimal, vkbase.SyncOutOfDate:
		return true, nil
	default:
		return false, vkbase.ErrOther(errors.New("presenting a swapchain image failed"))
	}
}

func (rc *RenderContext) reloadSwapchain(app Workflow) error {
	rc.Window.WaitWhileMinimized()
	if err := rc.Vk.Device.Wait(); err != nil {
		return err
	}
	if err := rc.Vk.RecreateSwapchain(); err != nil {
		return err
	}
	return app.SwapchainReload()
}

// Destroy releases the sync objects, the Vulkan context and the window.
func (rc *RenderContext) Destroy() {
	dev := rc.Vk.Device
	if dev != nil {
		if err := dev.Wait(); err != nil {
			log.Printf("[Warning] device wait during teardown: %v", err)
		}
		for i := 0; i < framesInFlight; i++ {
			if rc.fences[i] != vk.NullFence {
				vk.DestroyFence(dev.Handle, rc.fences[i], nil)
			}
			if rc.available[i] != vk.NullSemaphore {
				vk.DestroySemaphore(dev.Handle, rc.available[i], nil)
			}
		}
	}
	rc.Vk.Destroy()
	rc.Window.Destroy()
}
