// Package call implements the request/response matcher: it sends one
// HLA_CALL_REQUEST, blocks reading frames until the matching
// HLA_CALL_RESPONSE arrives or a timeout elapses, and routes every other
// frame it sees along the way (heartbeats, callbacks, termination) to the
// right collaborator, per spec §4.4.
package call

import (
	"errors"
	"time"

	"github.com/pion/logging"

	"github.com/makfedpro/fedpro-go/pkg/callback"
	"github.com/makfedpro/fedpro-go/pkg/message"
	"github.com/makfedpro/fedpro-go/pkg/payload"
	"github.com/makfedpro/fedpro-go/pkg/session"
	"github.com/makfedpro/fedpro-go/pkg/transport"
)

// DefaultTimeout is used by callers that do not specify a per-call timeout.
const DefaultTimeout = 10 * time.Second

// ExceptionDataTag is the reserved response-variant tag signaling an
// RTI-side exception instead of a normal response (spec §6). Re-exported
// from pkg/payload so the matcher and the codec always agree on one
// definition.
const ExceptionDataTag = payload.ExceptionDataTag

// ExceptionDecoder decodes the schema-serialized body of an EXCEPTION_DATA
// response. It is supplied by whichever payload.Codec the engine is wired
// with, so the matcher never depends on a specific codec implementation.
type ExceptionDecoder func(body []byte) (name, detail string, err error)

// pendingExpectation is the matcher's single in-flight-call slot (spec
// invariant 4: at most one synchronous call per connection).
type pendingExpectation struct {
	responseTag uint32
	seq         uint32
}

// Matcher correlates one outbound HLA_CALL_REQUEST at a time with its
// HLA_CALL_RESPONSE, interleaving heartbeat bookkeeping and callback
// queueing while it waits.
type Matcher struct {
	transport *transport.Transport
	session   *session.Controller
	callbacks *callback.Queue
	decodeExc ExceptionDecoder
	log       logging.LeveledLogger

	pending *pendingExpectation
}

// Config configures a Matcher.
type Config struct {
	Transport       *transport.Transport
	Session         *session.Controller
	Callbacks       *callback.Queue
	DecodeException ExceptionDecoder
	LoggerFactory   logging.LoggerFactory
}

// New creates a Matcher.
func New(config Config) *Matcher {
	m := &Matcher{
		transport: config.Transport,
		session:   config.Session,
		callbacks: config.Callbacks,
		decodeExc: config.DecodeException,
	}
	if config.LoggerFactory != nil {
		m.log = config.LoggerFactory.NewLogger("call")
	}
	return m
}

// Response is the result of a successful Call: the response-type tag and
// the schema-serialized body, still undecoded.
type Response struct {
	Tag  uint32
	Body []byte
}

// Call sends payload as an HLA_CALL_REQUEST body and blocks for the
// matching HLA_CALL_RESPONSE (spec §4.4's algorithm). It returns an
// *RTIExceptionError when the peer reports EXCEPTION_DATA, and ErrTimeout
// when the deadline elapses with no match.
func (m *Matcher) Call(requestTag uint32, body []byte, expectedResponseTag uint32, timeout time.Duration) (Response, error) {
	if m.pending != nil {
		return Response{}, ErrCallAlreadyInFlight
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	seq := m.session.NextOutSeq()
	frame := message.Frame{
		Header: message.Header{
			SequenceNum:     seq,
			SessionID:       m.session.SessionID(),
			LastReceivedSeq: m.session.LastInSeq(),
			MessageType:     message.HLACallRequest,
		},
		Payload: message.JoinTaggedPayload(requestTag, body),
	}
	if err := m.transport.Send(frame.Encode()); err != nil {
		return Response{}, err
	}
	m.session.ArmHeartbeat()
	m.pending = &pendingExpectation{responseTag: expectedResponseTag, seq: seq}
	defer func() { m.pending = nil }()

	deadline := time.Now().Add(timeout)
	for {
		frame, err := m.transport.Receive(deadline)
		if err != nil {
			if err == transport.ErrTransportTimeout {
				return Response{}, ErrTimeout
			}
			m.tearDownOnUnknownType(err)
			return Response{}, err
		}
		m.session.RecordInbound(frame.Header.SequenceNum)

		switch frame.Header.MessageType {
		case message.HLACallResponse:
			tag, respBody, err := message.SplitTaggedPayload(frame.Payload)
			if err != nil {
				return Response{}, err
			}
			if frame.Header.SequenceNum != seq {
				if m.log != nil {
					m.log.Warnf("discarding unrelated call response: seq=%d want=%d", frame.Header.SequenceNum, seq)
				}
				continue
			}
			if tag == ExceptionDataTag {
				name, detail, err := m.decodeExc(respBody)
				if err != nil {
					return Response{}, err
				}
				return Response{}, &RTIExceptionError{Name: name, Detail: detail}
			}
			if tag != expectedResponseTag {
				if m.log != nil {
					m.log.Warnf("discarding unrelated call response: tag=%d want=%d", tag, expectedResponseTag)
				}
				continue
			}
			return Response{Tag: tag, Body: respBody}, nil

		case message.CtrlHeartbeatResponse:
			continue

		case message.HLACallbackRequest:
			m.callbacks.Enqueue(frame)
			continue

		case message.CtrlSessionTerminated:
			return Response{}, session.ErrSessionTerminated

		default:
			if m.log != nil {
				m.log.Warnf("discarding unexpected %s during call", frame)
			}
			continue
		}
	}
}

// InFlight reports whether a call is currently awaiting a response.
func (m *Matcher) InFlight() bool {
	return m.pending != nil
}

// tearDownOnUnknownType marks the session lost and closes the transport
// when err is an unrecognized message_type (spec §4.2/§7: a framing error
// is fatal to the connection, never a log-and-discard event).
func (m *Matcher) tearDownOnUnknownType(err error) {
	var unknown *message.UnknownTypeError
	if errors.As(err, &unknown) {
		m.session.MarkLost()
		_ = m.transport.Close()
	}
}
