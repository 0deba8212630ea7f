// Package engine wires transport, session, call matcher, callback
// dispatcher, and ambassador façade into one connected client and owns
// the idle-time heartbeat policy spec §4.3 assigns to "whatever is
// currently blocked reading the socket" — which, outside of an
// in-flight Call, is EvokeCallback.
package engine

import (
	"time"

	"github.com/pion/logging"

	"github.com/makfedpro/fedpro-go/pkg/ambassador"
	"github.com/makfedpro/fedpro-go/pkg/call"
	"github.com/makfedpro/fedpro-go/pkg/callback"
	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/message"
	"github.com/makfedpro/fedpro-go/pkg/metrics"
	"github.com/makfedpro/fedpro-go/pkg/payload"
	"github.com/makfedpro/fedpro-go/pkg/session"
	"github.com/makfedpro/fedpro-go/pkg/transport"
)

// Config configures an Engine.
type Config struct {
	Codec             payload.Codec
	Ambassador        ambassador.FederateAmbassador
	Metrics           metrics.Collector
	LoggerFactory     logging.LoggerFactory
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration
	HandshakeTimeout  time.Duration
}

// Engine owns one federate's connection to an RTI bridge end to end: the
// TCP transport, the session handshake and heartbeat clock, the
// request/response matcher, the callback dispatcher, and the host-facing
// RtiAmbassador built over all of the above.
type Engine struct {
	transport  *transport.Transport
	session    *session.Controller
	matcher    *call.Matcher
	dispatcher *callback.Dispatcher
	queue      *callback.Queue
	caches     *handle.Caches
	ambo       ambassador.FederateAmbassador
	Ambassador *ambassador.RtiAmbassador

	metrics metrics.Collector
	log     logging.LeveledLogger
}

// New constructs an Engine. The returned Engine is not yet connected;
// call Connect to dial the RTI bridge and run the session handshake.
func New(config Config) *Engine {
	tr := transport.New(transport.Config{LoggerFactory: config.LoggerFactory})
	sess := session.New(session.Config{
		Transport:         tr,
		LoggerFactory:     config.LoggerFactory,
		HeartbeatInterval: config.HeartbeatInterval,
		HeartbeatTimeout:  config.HeartbeatTimeout,
		HandshakeTimeout:  config.HandshakeTimeout,
	})
	queue := callback.NewQueue()
	matcher := call.New(call.Config{
		Transport:       tr,
		Session:         sess,
		Callbacks:       queue,
		DecodeException: config.Codec.DecodeException,
		LoggerFactory:   config.LoggerFactory,
	})
	dispatcher := callback.New(callback.Config{
		Transport:     tr,
		Session:       sess,
		Queue:         queue,
		Ambassador:    config.Ambassador,
		Codec:         config.Codec,
		LoggerFactory: config.LoggerFactory,
	})
	caches := handle.NewCaches()
	ambo := ambassador.New(ambassador.Config{
		Matcher:       matcher,
		Dispatcher:    dispatcher,
		Caches:        caches,
		Codec:         config.Codec,
		Metrics:       config.Metrics,
		LoggerFactory: config.LoggerFactory,
	})

	e := &Engine{
		transport:  tr,
		session:    sess,
		matcher:    matcher,
		dispatcher: dispatcher,
		queue:      queue,
		caches:     caches,
		ambo:       config.Ambassador,
		Ambassador: ambo,
		metrics:    config.Metrics,
	}
	if config.LoggerFactory != nil {
		e.log = config.LoggerFactory.NewLogger("engine")
	}
	return e
}

// Connect dials host:port and runs the session handshake (spec §4.3).
// On success the Engine's Ambassador is ready for calls.
func (e *Engine) Connect(host string, port uint16) error {
	if err := e.transport.Connect(host, port); err != nil {
		return err
	}
	return e.session.Handshake()
}

// State returns the session's current lifecycle state.
func (e *Engine) State() session.State { return e.session.State() }

// Disconnect closes the underlying transport and empties the handle caches
// and callback queue (spec §3: "on teardown, caches and queues are
// emptied"). It does not send CTRL_TERMINATE_SESSION; callers that want a
// clean RTI-side teardown should resign and destroy/leave the federation
// execution first.
func (e *Engine) Disconnect() error {
	e.session.MarkClosed()
	e.caches.Clear()
	e.queue.Clear()
	return e.transport.Close()
}

// EvokeCallback drains and delivers queued and freshly arrived callbacks
// for up to maxDuration, proactively sending an idle CTRL_HEARTBEAT
// whenever the session's heartbeat_interval has elapsed with no other
// outbound traffic, and failing with session.ErrHeartbeatLost if a sent
// heartbeat's own deadline elapses unanswered (spec §4.3).
func (e *Engine) EvokeCallback(maxDuration time.Duration) error {
	deadline := time.Now().Add(maxDuration)

	for {
		now := time.Now()
		if !now.Before(deadline) {
			return nil
		}

		if !e.session.HeartbeatTimeoutArmed() && !now.Before(e.session.HeartbeatDeadline()) {
			if err := e.sendHeartbeat(); err != nil {
				return err
			}
		}

		slice := deadline.Sub(now)
		if next := e.nextHeartbeatEvent(); next > 0 && next < slice {
			slice = next
		}

		if err := e.dispatcher.EvokeCallback(slice); err != nil {
			return err
		}

		if e.session.HeartbeatTimeoutArmed() && !time.Now().Before(e.session.HeartbeatTimeoutDeadline()) {
			e.session.MarkLost()
			if e.metrics != nil {
				e.metrics.HeartbeatMissed()
			}
			if e.ambo != nil {
				_ = e.ambo.ConnectionLost("heartbeat timeout")
			}
			_ = e.transport.Close()
			return session.ErrHeartbeatLost
		}
	}
}

// nextHeartbeatEvent reports how long until the next heartbeat-related
// deadline (send time, or timeout of an outstanding heartbeat), so
// EvokeCallback's read slices never overshoot past a point it needs to
// act. A non-positive result means "no bound from heartbeat timing."
func (e *Engine) nextHeartbeatEvent() time.Duration {
	now := time.Now()
	if e.session.HeartbeatTimeoutArmed() {
		return e.session.HeartbeatTimeoutDeadline().Sub(now)
	}
	return e.session.HeartbeatDeadline().Sub(now)
}

func (e *Engine) sendHeartbeat() error {
	seq := e.session.NextOutSeq()
	frame := message.Frame{
		Header: message.Header{
			SequenceNum:     seq,
			SessionID:       e.session.SessionID(),
			LastReceivedSeq: e.session.LastInSeq(),
			MessageType:     message.CtrlHeartbeat,
		},
	}
	if err := e.transport.Send(frame.Encode()); err != nil {
		return err
	}
	e.session.ArmHeartbeatTimeout()
	return nil
}
