// Package metrics instruments an engine's call/callback/heartbeat
// activity. A nil Collector is always safe to use — every call site
// checks for nil before recording, matching the teacher's own pattern
// of optional injected collaborators (a nil logging.LoggerFactory is
// likewise a no-op throughout this module).
package metrics

// Collector receives counts for one engine's lifetime. Implementations
// must be safe to call from the single goroutine an Engine runs on; this
// module never calls a Collector concurrently, so implementations are
// not required to be safe for concurrent use by themselves.
type Collector interface {
	// CallIssued records one HLA_CALL_REQUEST sent, labeled by its
	// request-type tag.
	CallIssued(requestTag uint32)

	// CallSucceeded records one HLA_CALL_RESPONSE matched successfully.
	CallSucceeded(requestTag uint32)

	// CallFailed records a call that ended in a timeout, an RTI
	// exception, or a transport error, labeled by outcome.
	CallFailed(requestTag uint32, reason string)

	// CallbackQueued records one CallbackRequest enqueued while a call
	// was in flight (spec §4.5).
	CallbackQueued(callbackTag uint32)

	// CallbackDispatched records one CallbackRequest delivered to the
	// FederateAmbassador, labeled by whether the ambassador method
	// succeeded.
	CallbackDispatched(callbackTag uint32, succeeded bool)

	// HeartbeatMissed records the session's heartbeat deadline elapsing
	// with no reply (spec §4.3).
	HeartbeatMissed()
}
