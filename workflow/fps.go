package workflow

import (
	"time"

	"github.com/loov/hrtime"
)

// fpsSampleCount is the size of the moving window the rate is averaged over.
const fpsSampleCount = 5

// FpsCounter tracks frame durations over a small moving window.
type FpsCounter struct {
	samples [fpsSampleCount]time.Duration
	cursor  int
	filled  int

	lastTick time.Duration
	delta    time.Duration
}

// NewFpsCounter starts the counter at the current timestamp.
func NewFpsCounter() *FpsCounter {
	return &FpsCounter{lastTick: hrtime.Now()}
}

// Tick records the end of a frame and returns that frame's duration.
func (f *FpsCounter) Tick() time.Duration {
	now := hrtime.Now()
	f.delta = now - f.lastTick
	f.lastTick = now

	f.samples[f.cursor] = f.delta
	f.cursor = (f.cursor + 1) % fpsSampleCount
	if f.filled < fpsSampleCount {
		f.filled++
	}
	return f.delta
}

// DeltaTime returns the last frame duration in seconds.
func (f *FpsCounter) DeltaTime() float32 {
	return float32(f.delta.Seconds())
}

// Fps returns the frame rate averaged over the sample window.
func (f *FpsCounter) Fps() float64 {
	if f.filled == 0 {
		return 0
	}
	var total time.Duration
	for i := 0; i < f.filled; i++ {
		total += f.samples[i]
	}
	if total <= 0 {
		return 0
	}
	return float64(f.filled) / total.Seconds()
}

// FrameCounter numbers the frames in flight so per-frame resources can be
// indexed without modulo arithmetic at every use site.
type FrameCounter struct {
	current int
	total   int
}

// NewFrameCounter counts over total frames in flight.
func NewFrameCounter(total int) *FrameCounter {
	return &FrameCounter{total: total}
}

// Current returns the in-flight frame index.
func (c *FrameCounter) Current() int { return c.current }

// Next advances to the next in-flight frame.
func (c *FrameCounter) Next() {
	c.current = (c.current + 1) % c.total
}
