package mesh

import (
	"context"
	"fmt"
	"log"
	"runtime/debug"
	"time"
)

// Scheduler delivers frame ticks. There is no guaranteed interval and no
// backpressure: a slow frame simply misses ticks.
type Scheduler interface {
	C() <-chan time.Time
	Stop()
}

type tickerScheduler struct {
	t *time.Ticker
}

// NewTicker returns a Scheduler ticking every interval.
func NewTicker(interval time.Duration) Scheduler {
	return &tickerScheduler{t: time.NewTicker(interval)}
}

func (s *tickerScheduler) C() <-chan time.Time { return s.t.C }
func (s *tickerScheduler) Stop()               { s.t.Stop() }

// FrameFunc renders one frame.
type FrameFunc func() error

// SafeFrame runs frame and converts a panic into an error.
func SafeFrame(frame FrameFunc) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("frame panicked: %v\n%s", r, debug.Stack())
		}
	}()
	return frame()
}

// Run calls frame on every tick until ctx is cancelled. A failing frame is
// logged and skipped. Run stops the scheduler before returning.
func Run(ctx context.Context, s Scheduler, frame FrameFunc, logger *log.Logger) error {
	defer s.Stop()
	if logger == nil {
		logger = log.Default()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.C():
			// Cancellation wins over a tick that raced with it.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if err := SafeFrame(frame); err != nil {
				logger.Printf("mesh: frame skipped: %v", err)
			}
		}
	}
}
