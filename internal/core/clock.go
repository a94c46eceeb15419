package core

import (
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FrameWindow is the number of most recent frame rates kept by FrameClock.
const FrameWindow = 100

// FrameStats summarizes the frame-rate window after a recorded frame.
type FrameStats struct {
	Rate    float64
	Rounded int
	Mean    float64
	Min     float64
	Max     float64
	Samples int
	// Recorded is set when the call that produced these stats added a
	// sample to the window.
	Recorded bool
}

// FrameClock derives a rolling frames-per-second statistic from the
// timestamps of successive renders.
type FrameClock struct {
	last    time.Duration
	rate    float64
	samples []float64
}

// NewFrameClock seeds the clock with the timestamp of the moment it was
// created so that the first recorded frame has a well-defined delta.
func NewFrameClock(start time.Duration) *FrameClock {
	return &FrameClock{last: start, samples: make([]float64, 0, FrameWindow+1)}
}

// RecordFrame records a render at the monotonic timestamp now. A timestamp
// that does not advance past the previous one is skipped and the previous
// rate is reported.
func (c *FrameClock) RecordFrame(now time.Duration) FrameStats {
	delta := now - c.last
	if delta <= 0 {
		return c.Stats()
	}
	c.last = now
	c.rate = float64(time.Second) / float64(delta)

	c.samples = append(c.samples, c.rate)
	if len(c.samples) > FrameWindow {
		copy(c.samples, c.samples[1:])
		c.samples = c.samples[:FrameWindow]
	}
	st := c.Stats()
	st.Recorded = true
	return st
}

// Stats reports the current rate and the window aggregates.
func (c *FrameClock) Stats() FrameStats {
	st := FrameStats{
		Rate:    c.rate,
		Rounded: int(math.Round(c.rate)),
		Samples: len(c.samples),
	}
	if len(c.samples) == 0 {
		return st
	}
	st.Mean = stat.Mean(c.samples, nil)
	st.Min = floats.Min(c.samples)
	st.Max = floats.Max(c.samples)
	return st
}

// Samples returns a copy of the window, oldest first.
func (c *FrameClock) Samples() []float64 {
	return append([]float64(nil), c.samples...)
}

// Last returns the timestamp of the most recently recorded frame.
func (c *FrameClock) Last() time.Duration { return c.last }
