package surface

import "sync"

// FrameQueue is a single-slot frame scheduler. A host calls Flush once per
// display refresh; at most one callback is pending at a time and a new
// request replaces the pending one.
type FrameQueue struct {
	mu   sync.Mutex
	next FrameID
	id   FrameID
	fn   func()
}

func (q *FrameQueue) RequestFrame(fn func()) FrameID {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.next++
	q.id = q.next
	q.fn = fn
	return q.id
}

// CancelFrame drops the pending callback if it is still the one named by id.
func (q *FrameQueue) CancelFrame(id FrameID) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if id != 0 && q.id == id {
		q.id = 0
		q.fn = nil
	}
}

func (q *FrameQueue) Pending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.fn != nil
}

// Flush detaches the pending callback and runs it outside the lock, so the
// callback may request the next frame. It reports whether anything ran.
func (q *FrameQueue) Flush() bool {
	q.mu.Lock()
	fn := q.fn
	q.id = 0
	q.fn = nil
	q.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}
