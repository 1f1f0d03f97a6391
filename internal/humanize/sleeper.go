package humanize

import (
	"context"
	"time"
)

// Sleeper is the suspension point every randomized delay runs through.
// Control must not resume before the full duration has elapsed; the only
// early exit is external termination via the context.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealSleeper waits on the wall clock.
type RealSleeper struct{}

func (RealSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RecordingSleeper captures requested durations without waiting. Test use.
type RecordingSleeper struct {
	Slept []time.Duration
}

func (s *RecordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.Slept = append(s.Slept, d)
	return nil
}
