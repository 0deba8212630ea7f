package session

import (
	"errors"
	"time"

	"github.com/pion/logging"

	"github.com/makfedpro/fedpro-go/pkg/message"
	"github.com/makfedpro/fedpro-go/pkg/transport"
)

// Default timing policy (spec §3, §5).
const (
	DefaultHeartbeatInterval = 60 * time.Second
	DefaultHeartbeatTimeout  = 180 * time.Second
	DefaultHandshakeTimeout  = 30 * time.Second
)

// Config configures a Controller.
type Config struct {
	Transport         *transport.Transport
	LoggerFactory     logging.LoggerFactory
	HeartbeatInterval time.Duration
	HeartbeatTimeout  time.Duration
	HandshakeTimeout  time.Duration
}

// Controller owns the session handshake, the out_seq/last_in_seq counters,
// and the heartbeat deadlines described in spec §3/§4.3. It does not itself
// read frames outside of the handshake and heartbeat send/receive; the
// request/response matcher (pkg/call) drives the steady-state read loop and
// reports inbound traffic back to the controller via RecordInbound.
type Controller struct {
	transport *transport.Transport
	log       logging.LeveledLogger

	heartbeatInterval time.Duration
	heartbeatTimeout  time.Duration
	handshakeTimeout  time.Duration

	state     State
	sessionID uint64
	outSeq    uint32
	lastInSeq uint32

	heartbeatDeadline        time.Time
	heartbeatTimeoutDeadline time.Time
	heartbeatTimeoutArmed    bool
}

// New creates a Controller in state Connecting.
func New(config Config) *Controller {
	c := &Controller{
		transport:         config.Transport,
		heartbeatInterval: config.HeartbeatInterval,
		heartbeatTimeout:  config.HeartbeatTimeout,
		handshakeTimeout:  config.HandshakeTimeout,
		state:             Connecting,
	}
	if c.heartbeatInterval == 0 {
		c.heartbeatInterval = DefaultHeartbeatInterval
	}
	if c.heartbeatTimeout == 0 {
		c.heartbeatTimeout = DefaultHeartbeatTimeout
	}
	if c.handshakeTimeout == 0 {
		c.handshakeTimeout = DefaultHandshakeTimeout
	}
	if config.LoggerFactory != nil {
		c.log = config.LoggerFactory.NewLogger("session")
	}
	return c
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State { return c.state }

// SessionID returns the server-assigned session identifier, or 0 before a
// successful handshake.
func (c *Controller) SessionID() uint64 { return c.sessionID }

// Handshake runs the connect-time sequence from spec §4.3: send
// NewSession, wait for NewSessionStatus (tolerating heartbeats), adopt the
// session_id on success, then confirm liveness with a synchronous
// heartbeat round trip.
//
// Handshake sends and receives through the controller's own transport.
// NewSession goes out with sequence number 0; the liveness heartbeat takes
// the first number minted by NextOutSeq, so steady-state calls continue
// from there.
func (c *Controller) Handshake() error {
	c.state = Handshaking

	deadline := time.Now().Add(c.handshakeTimeout)

	req := message.Frame{
		Header:  message.Header{SequenceNum: 0, SessionID: 0, MessageType: message.CtrlNewSession},
		Payload: message.NewSession{ProtocolVersion: message.ProtocolVersion}.Encode(),
	}
	if err := c.transport.Send(req.Encode()); err != nil {
		return err
	}

	for {
		frame, err := c.transport.Receive(deadline)
		if err != nil {
			c.tearDownOnUnknownType(err)
			return err
		}
		switch frame.Header.MessageType {
		case message.CtrlHeartbeat:
			// tolerate a stray heartbeat from a peer that hasn't seen our
			// NewSession yet; keep waiting for the status.
			continue
		case message.CtrlNewSessionStatus:
			status, err := message.DecodeNewSessionStatus(frame.Payload)
			if err != nil {
				return err
			}
			if err := c.applyStatus(status.Status, frame.Header.SessionID); err != nil {
				return err
			}
			return c.confirmLiveness(deadline)
		default:
			if c.log != nil {
				c.log.Warnf("unexpected %s during handshake, discarding", frame)
			}
			continue
		}
	}
}

func (c *Controller) applyStatus(status message.SessionStatus, sessionID uint64) error {
	switch status {
	case message.StatusSuccess:
		c.sessionID = sessionID
		return nil
	case message.StatusUnsupportedProtocolVersion:
		return ErrUnsupportedProtocolVersion
	case message.StatusOutOfResources:
		return ErrOutOfResources
	default:
		return ErrSessionInternalError
	}
}

func (c *Controller) confirmLiveness(deadline time.Time) error {
	seq := c.NextOutSeq()
	req := message.Frame{
		Header:  message.Header{SequenceNum: seq, SessionID: c.sessionID, MessageType: message.CtrlHeartbeat},
		Payload: nil,
	}
	if err := c.transport.Send(req.Encode()); err != nil {
		return err
	}
	c.ArmHeartbeat()

	for {
		frame, err := c.transport.Receive(deadline)
		if err != nil {
			c.tearDownOnUnknownType(err)
			return err
		}
		c.RecordInbound(frame.Header.SequenceNum)
		if frame.Header.MessageType == message.CtrlHeartbeatResponse {
			c.state = Ready
			return nil
		}
		if c.log != nil {
			c.log.Warnf("unexpected %s while confirming session liveness, discarding", frame)
		}
	}
}

// NextOutSeq mints and returns the next outbound sequence number (spec
// invariant 3: strictly increasing within a session).
func (c *Controller) NextOutSeq() uint32 {
	c.outSeq++
	return c.outSeq
}

// LastInSeq returns the highest inbound sequence number processed so far.
func (c *Controller) LastInSeq() uint32 { return c.lastInSeq }

// RecordInbound updates last_in_seq and resets both heartbeat deadlines,
// per spec §4.3 ("receipt of any inbound frame resets both deadlines").
func (c *Controller) RecordInbound(seq uint32) {
	if seq > c.lastInSeq {
		c.lastInSeq = seq
	}
	c.ArmHeartbeat()
	c.heartbeatTimeoutArmed = false
}

// ArmHeartbeat arms the idle-heartbeat deadline at now + heartbeat_interval,
// called after every successfully sent frame.
func (c *Controller) ArmHeartbeat() {
	c.heartbeatDeadline = time.Now().Add(c.heartbeatInterval)
}

// HeartbeatDeadline reports when an idle heartbeat should next be sent.
func (c *Controller) HeartbeatDeadline() time.Time { return c.heartbeatDeadline }

// HeartbeatTimeoutDeadline reports when a sent heartbeat should be
// considered lost. Only meaningful while a heartbeat is outstanding.
func (c *Controller) HeartbeatTimeoutDeadline() time.Time { return c.heartbeatTimeoutDeadline }

// ArmHeartbeatTimeout is called after sending an idle heartbeat; it starts
// the heartbeat_timeout clock (spec §4.3).
func (c *Controller) ArmHeartbeatTimeout() {
	c.heartbeatTimeoutDeadline = time.Now().Add(c.heartbeatTimeout)
	c.heartbeatTimeoutArmed = true
}

// HeartbeatTimeoutArmed reports whether a heartbeat is currently
// outstanding and awaiting its response.
func (c *Controller) HeartbeatTimeoutArmed() bool { return c.heartbeatTimeoutArmed }

// MarkLost transitions the controller into the Lost sink. Idempotent.
func (c *Controller) MarkLost() {
	c.state = Lost
}

// MarkClosed transitions the controller to Closed after a clean shutdown.
func (c *Controller) MarkClosed() {
	c.state = Closed
}

// BeginShutdown transitions to ShuttingDown ahead of a clean teardown.
func (c *Controller) BeginShutdown() {
	if c.state == Ready {
		c.state = ShuttingDown
	}
}

// tearDownOnUnknownType marks the session lost and closes the transport
// when err is an unrecognized message_type (spec §4.2/§7: a framing error
// is fatal to the connection, never a log-and-discard event).
func (c *Controller) tearDownOnUnknownType(err error) {
	var unknown *message.UnknownTypeError
	if errors.As(err, &unknown) {
		c.MarkLost()
		_ = c.transport.Close()
	}
}
