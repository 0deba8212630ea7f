// Package callback implements the inbound CallbackRequest queue and the
// dispatcher that drains it into a FederateAmbassador implementation, per
// spec §4.5.
package callback

import "github.com/makfedpro/fedpro-go/pkg/message"

// Queue is an ordered FIFO of decoded CallbackRequest frames awaiting
// dispatch. It is filled by the matcher while a call is in flight or while
// queueing is otherwise enabled, and drained by the Dispatcher during
// EvokeCallback.
type Queue struct {
	pending []message.Frame
}

// NewQueue creates an empty Queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends a CallbackRequest frame to the tail of the queue.
func (q *Queue) Enqueue(frame message.Frame) {
	q.pending = append(q.pending, frame)
}

// Dequeue removes and returns the oldest queued frame. ok is false when the
// queue is empty.
func (q *Queue) Dequeue() (frame message.Frame, ok bool) {
	if len(q.pending) == 0 {
		return message.Frame{}, false
	}
	frame = q.pending[0]
	q.pending = q.pending[1:]
	return frame, true
}

// Len returns the number of frames currently queued.
func (q *Queue) Len() int {
	return len(q.pending)
}

// Clear discards every queued frame. Called on session teardown (spec §3)
// so a stale callback never delivers into a new session's ambassador.
func (q *Queue) Clear() {
	q.pending = nil
}
