package anim

import "time"

// Handle identifies one scheduled frame callback. The zero Handle is never
// issued.
type Handle uint64

// FrameFunc is invoked once per display refresh with the refresh timestamp.
type FrameFunc func(now time.Duration) error

// Scheduler is a display-refresh callback source.
type Scheduler interface {
	// RequestFrame registers fn to run on the next refresh.
	RequestFrame(fn FrameFunc) Handle
	// CancelFrame drops a pending callback. Unknown or stale handles are
	// ignored.
	CancelFrame(h Handle)
	// Now returns the current monotonic timestamp.
	Now() time.Duration
}

type frameEntry struct {
	h  Handle
	fn FrameFunc
}

// FrameQueue is a single-threaded Scheduler. The host calls Dispatch once per
// display refresh from the same goroutine that delivers input events, so
// callbacks never interleave with input handlers.
type FrameQueue struct {
	now      func() time.Duration
	next     Handle
	pending  []frameEntry
	inflight []frameEntry
}

// NewFrameQueue returns a queue that reads timestamps from now.
func NewFrameQueue(now func() time.Duration) *FrameQueue {
	return &FrameQueue{now: now}
}

// RequestFrame implements Scheduler.
func (q *FrameQueue) RequestFrame(fn FrameFunc) Handle {
	q.next++
	q.pending = append(q.pending, frameEntry{h: q.next, fn: fn})
	return q.next
}

// CancelFrame implements Scheduler.
func (q *FrameQueue) CancelFrame(h Handle) {
	if h == 0 {
		return
	}
	for i, e := range q.pending {
		if e.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.inflight {
		if q.inflight[i].h == h {
			q.inflight[i].fn = nil
			return
		}
	}
}

// Now implements Scheduler.
func (q *FrameQueue) Now() time.Duration {
	if q.now == nil {
		return 0
	}
	return q.now()
}

// Pending returns the number of callbacks waiting for the next refresh.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Dispatch runs every callback registered before this refresh began.
// Callbacks requested while dispatching wait for the next refresh. The first
// error stops the dispatch; callbacks not yet run stay queued.
func (q *FrameQueue) Dispatch(now time.Duration) error {
	if len(q.pending) == 0 {
		return nil
	}
	q.inflight = q.pending
	q.pending = nil
	defer func() { q.inflight = nil }()

	for i := range q.inflight {
		fn := q.inflight[i].fn
		if fn == nil {
			continue
		}
		q.inflight[i].fn = nil
		if err := fn(now); err != nil {
			var rest []frameEntry
			for _, e := range q.inflight[i+1:] {
				if e.fn != nil {
					rest = append(rest, e)
				}
			}
			q.pending = append(rest, q.pending...)
			return err
		}
	}
	return nil
}
