package translate

import (
	"context"
	"math/rand"
	"time"
)

// Delay injects randomized pauses between UI actions to emulate human
// pacing. Zero or negative Max disables it.
type Delay struct {
	Min time.Duration
	Max time.Duration
}

// Duration picks a uniform random duration within [Min, Max], clamping so
// that Min <= Max. It returns 0 when Max <= 0.
func (d Delay) Duration() time.Duration {
	min := d.Min
	if min < 0 {
		min = 0
	}
	max := d.Max
	if max < min {
		max = min
	}
	if max <= 0 {
		return 0
	}
	return min + time.Duration(rand.Int63n(int64(max-min)+1))
}

// Wait sleeps for a randomized natural delay, returning early if ctx is
// canceled.
func (d Delay) Wait(ctx context.Context) {
	dur := d.Duration()
	if dur <= 0 {
		return
	}
	select {
	case <-time.After(dur):
	case <-ctx.Done():
	}
}
