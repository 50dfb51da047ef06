package quad

import (
	"time"

	"github.com/mokiat/gog/opt"
)

// FrameClock measures the time between frames. It is used by hosts that
// drive the frame loop themselves.
type FrameClock struct {
	FrameCount      uint64
	AverageDuration time.Duration
	MaxDuration     time.Duration

	// Delta time to previous frame
	Delta time.Duration

	start    time.Time
	lastTime time.Time

	now func() time.Time
}

func NewFrameClock() *FrameClock {
	return &FrameClock{now: time.Now}
}

func (t *FrameClock) update(d time.Duration) {
	const window = 64

	t.Delta = d
	t.MaxDuration = max(t.MaxDuration, d)

	if t.FrameCount < window/2 {
		t.AverageDuration = d
	} else {
		t.AverageDuration = ((window-1)*t.AverageDuration + d) / window
	}
}

func (t *FrameClock) FPS() float64 {
	if t.AverageDuration <= 0 {
		return 0
	}

	return 1.0 / t.AverageDuration.Seconds()
}

// Tick records a new frame and returns an update holding the
// elapsed time since the first frame and the time since the previous one.
func (t *FrameClock) Tick() FrameUpdate {
	now := t.now()

	if t.FrameCount == 0 {
		t.start = now
	} else {
		t.update(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1

	return FrameUpdate{
		Time:      opt.V(float32(now.Sub(t.start).Seconds())),
		DeltaTime: opt.V(float32(t.Delta.Seconds())),
	}
}

// ShouldReport is true once every 60 frames.
func (t *FrameClock) ShouldReport() bool {
	return t.FrameCount%60 == 0
}
