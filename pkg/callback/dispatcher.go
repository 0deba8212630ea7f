package callback

import (
	"errors"
	"time"

	"github.com/pion/logging"

	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/message"
	"github.com/makfedpro/fedpro-go/pkg/payload"
	"github.com/makfedpro/fedpro-go/pkg/session"
	"github.com/makfedpro/fedpro-go/pkg/transport"
)

// FederateAmbassador receives RTI-initiated callbacks. The dispatcher
// invokes exactly one method per delivered CallbackRequest, decoded
// according to its variant tag (spec §4.6). A method returning a non-nil
// error marks the delivery as failed; the dispatcher still emits a
// CallbackResponse and continues with the next queued callback.
type FederateAmbassador interface {
	ConnectionLost(fault string) error
	ReportFederationExecutions(names []string) error
	ReportFederationExecutionMembers(federationName string, federateNames []string) error
	ReportFederationExecutionDoesNotExist(federationName string) error
	FederateResigned(reason string) error
	ObjectInstanceNameReservationSucceeded(name string) error
	ObjectInstanceNameReservationFailed(name string) error
	DiscoverObjectInstance(object handle.ObjectInstanceHandle, class handle.ObjectClassHandle, name string, producer handle.FederateHandle) error
	RemoveObjectInstance(object handle.ObjectInstanceHandle, userTag []byte, producer handle.FederateHandle) error
	ReceiveInteraction(interactionClass handle.InteractionClassHandle, parameterValues map[handle.ParameterHandle][]byte, userTag []byte, transportType uint8, producer handle.FederateHandle) error
	ReflectAttributeValues(object handle.ObjectInstanceHandle, attributeValues map[handle.AttributeHandle][]byte, userTag []byte, transportType uint8, producer handle.FederateHandle) error
}

// Dispatcher delivers RTI-initiated callbacks (spec §4.5): while a call is
// in flight, inbound CallbackRequest frames are queued by the matcher;
// EvokeCallback delivers everything queued plus anything that arrives
// before max_duration elapses. Whether a callback is queued or delivered
// follows from which of the two is reading the transport; the Dispatcher
// keeps no separate mode flag.
type Dispatcher struct {
	transport *transport.Transport
	session   *session.Controller
	queue     *Queue
	ambo      FederateAmbassador
	codec     payload.Codec
	log       logging.LeveledLogger

	dispatching bool
}

// Config configures a Dispatcher.
type Config struct {
	Transport     *transport.Transport
	Session       *session.Controller
	Queue         *Queue
	Ambassador    FederateAmbassador
	Codec         payload.Codec
	LoggerFactory logging.LoggerFactory
}

// New creates a Dispatcher.
func New(config Config) *Dispatcher {
	d := &Dispatcher{
		transport: config.Transport,
		session:   config.Session,
		queue:     config.Queue,
		ambo:      config.Ambassador,
		codec:     config.Codec,
	}
	if config.LoggerFactory != nil {
		d.log = config.LoggerFactory.NewLogger("callback")
	}
	return d
}

// Dispatching reports whether a callback method is currently executing.
// The ambassador façade consults this before issuing any HLA call, since
// reentrancy into the matcher from within a callback is forbidden (spec
// §4.5, §5) and must fail with CallNotAllowedFromWithinCallback instead.
func (d *Dispatcher) Dispatching() bool { return d.dispatching }

// EvokeCallback drains the callback queue and, for the remainder of
// max_duration, reads further frames from the transport, delivering each
// CallbackRequest to the ambassador in arrival order (spec §4.5). It
// returns nil once the deadline passes, and an error on a fatal frame or a
// failed delivery; an empty queue alone does not end it.
func (d *Dispatcher) EvokeCallback(maxDuration time.Duration) error {
	deadline := time.Now().Add(maxDuration)

	for {
		if frame, ok := d.queue.Dequeue(); ok {
			if err := d.deliver(frame); err != nil {
				return err
			}
			continue
		}

		if !time.Now().Before(deadline) {
			return nil
		}

		frame, err := d.transport.Receive(deadline)
		if err != nil {
			if err == transport.ErrTransportTimeout {
				return nil
			}
			d.tearDownOnUnknownType(err)
			return err
		}
		d.session.RecordInbound(frame.Header.SequenceNum)

		switch frame.Header.MessageType {
		case message.HLACallbackRequest:
			if err := d.deliver(frame); err != nil {
				return err
			}
		case message.CtrlHeartbeatResponse:
			continue
		case message.CtrlSessionTerminated:
			return session.ErrSessionTerminated
		default:
			if d.log != nil {
				d.log.Warnf("discarding unexpected %s while evoking callbacks", frame)
			}
		}
	}
}

// deliver decodes one CallbackRequest frame, invokes the matching
// FederateAmbassador method, and emits its CallbackResponse. It never
// returns an error for an ambassador failure — only for a transport or
// decode failure that makes the session itself unusable.
func (d *Dispatcher) deliver(frame message.Frame) error {
	tag, body, err := message.SplitTaggedPayload(frame.Payload)
	if err != nil {
		return err
	}
	req, err := d.codec.DecodeCallbackRequest(tag, body)
	if err != nil {
		return err
	}

	d.dispatching = true
	succeeded := d.invoke(req) == nil
	d.dispatching = false

	return d.respond(frame.Header.SequenceNum, succeeded)
}

// invoke type-switches the decoded callback variant onto the matching
// FederateAmbassador method (spec §4.6's callback list).
func (d *Dispatcher) invoke(req any) error {
	switch c := req.(type) {
	case payload.ConnectionLostCallback:
		return d.ambo.ConnectionLost(c.Fault)
	case payload.ReportFederationExecutionsCallback:
		return d.ambo.ReportFederationExecutions(c.FederationNames)
	case payload.ReportFederationExecutionMembersCallback:
		return d.ambo.ReportFederationExecutionMembers(c.FederationName, c.FederateNames)
	case payload.ReportFederationExecutionDoesNotExistCallback:
		return d.ambo.ReportFederationExecutionDoesNotExist(c.FederationName)
	case payload.FederateResignedCallback:
		return d.ambo.FederateResigned(c.Reason)
	case payload.ObjectInstanceNameReservationSucceededCallback:
		return d.ambo.ObjectInstanceNameReservationSucceeded(c.Name)
	case payload.ObjectInstanceNameReservationFailedCallback:
		return d.ambo.ObjectInstanceNameReservationFailed(c.Name)
	case payload.DiscoverObjectInstanceCallback:
		return d.ambo.DiscoverObjectInstance(c.Object, c.Class, c.Name, c.ProducingFederate)
	case payload.RemoveObjectInstanceCallback:
		return d.ambo.RemoveObjectInstance(c.Object, c.UserTag, c.ProducingFederate)
	case payload.ReceiveInteractionCallback:
		return d.ambo.ReceiveInteraction(c.InteractionClass, c.ParameterValues, c.UserTag, c.TransportType, c.ProducingFederate)
	case payload.ReflectAttributeValuesCallback:
		return d.ambo.ReflectAttributeValues(c.Object, c.AttributeValues, c.UserTag, c.TransportType, c.ProducingFederate)
	default:
		return ErrUnknownCallbackVariant
	}
}

// respond emits a CallbackResponse carrying the same sequence_num as the
// inbound CallbackRequest it answers (spec §4.5) — not a freshly minted
// out_seq, since it is an acknowledgement of that specific delivery
// rather than a new outbound request.
func (d *Dispatcher) respond(seq uint32, succeeded bool) error {
	frame := message.Frame{
		Header: message.Header{
			SequenceNum:     seq,
			SessionID:       d.session.SessionID(),
			LastReceivedSeq: d.session.LastInSeq(),
			MessageType:     message.HLACallbackResponse,
		},
		Payload: message.JoinTaggedPayload(boolTag(succeeded), nil),
	}
	if err := d.transport.Send(frame.Encode()); err != nil {
		return err
	}
	d.session.ArmHeartbeat()
	return nil
}

// tearDownOnUnknownType marks the session lost and closes the transport
// when err is an unrecognized message_type (spec §4.2/§7: a framing error
// is fatal to the connection, never a log-and-discard event).
func (d *Dispatcher) tearDownOnUnknownType(err error) {
	var unknown *message.UnknownTypeError
	if errors.As(err, &unknown) {
		d.session.MarkLost()
		_ = d.transport.Close()
	}
}

// boolTag encodes the CallbackResponse success bit as the variant tag of
// its (empty) payload: 1 for success, 0 for failure. The body itself
// carries no data (payload.CallbackAck), matching spec §4.5's "success
// bit" framing.
func boolTag(succeeded bool) uint32 {
	if succeeded {
		return 1
	}
	return 0
}
