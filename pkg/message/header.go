// Package message implements the FedPro framed envelope: the fixed 24-byte
// header, the message-type discriminator, and the control-envelope payloads
// exchanged during session setup and keep-alive. Payloads for the
// HLA_CALL_*/HLA_CALLBACK_* message types are left as opaque bytes; their
// interpretation is delegated to a payload.Codec.
package message

import "encoding/binary"

// HeaderSize is the fixed, exact size in bytes of a FedPro frame header.
const HeaderSize = 24

// Type enumerates the message_type discriminator values carried in every
// frame header. Unknown values are reserved.
type Type uint32

const (
	Unknown               Type = 0
	CtrlNewSession        Type = 1
	CtrlNewSessionStatus  Type = 2
	CtrlHeartbeat         Type = 3
	CtrlHeartbeatResponse Type = 4
	CtrlTerminateSession  Type = 6
	CtrlSessionTerminated Type = 7
	CtrlResumeRequest     Type = 10
	CtrlResumeStatus      Type = 11
	HLACallRequest        Type = 20
	HLACallResponse       Type = 21
	HLACallbackRequest    Type = 22
	HLACallbackResponse   Type = 23
	Invalid               Type = 99
)

// Valid reports whether t is one of the enumerated discriminator values a
// peer may legally put on the wire. Unknown and Invalid are sentinels for
// use in Go code, never valid wire values themselves.
func (t Type) Valid() bool {
	switch t {
	case CtrlNewSession, CtrlNewSessionStatus, CtrlHeartbeat, CtrlHeartbeatResponse,
		CtrlTerminateSession, CtrlSessionTerminated, CtrlResumeRequest, CtrlResumeStatus,
		HLACallRequest, HLACallResponse, HLACallbackRequest, HLACallbackResponse:
		return true
	default:
		return false
	}
}

func (t Type) String() string {
	switch t {
	case Unknown:
		return "UNKNOWN"
	case CtrlNewSession:
		return "CTRL_NEW_SESSION"
	case CtrlNewSessionStatus:
		return "CTRL_NEW_SESSION_STATUS"
	case CtrlHeartbeat:
		return "CTRL_HEARTBEAT"
	case CtrlHeartbeatResponse:
		return "CTRL_HEARTBEAT_RESPONSE"
	case CtrlTerminateSession:
		return "CTRL_TERMINATE_SESSION"
	case CtrlSessionTerminated:
		return "CTRL_SESSION_TERMINATED"
	case CtrlResumeRequest:
		return "CTRL_RESUME_REQUEST"
	case CtrlResumeStatus:
		return "CTRL_RESUME_STATUS"
	case HLACallRequest:
		return "HLA_CALL_REQUEST"
	case HLACallResponse:
		return "HLA_CALL_RESPONSE"
	case HLACallbackRequest:
		return "HLA_CALLBACK_REQUEST"
	case HLACallbackResponse:
		return "HLA_CALLBACK_RESPONSE"
	case Invalid:
		return "INVALID"
	default:
		return "RESERVED"
	}
}

// Header is the fixed 24-byte FedPro frame header. All integers are
// big-endian on the wire.
type Header struct {
	MessageSize     uint32 // total bytes of frame including this field
	SequenceNum     uint32 // sender-assigned, monotonic within a session; 0 when unset
	SessionID       uint64 // server-assigned after the NewSession handshake; 0 before
	LastReceivedSeq uint32 // highest peer sequence number this sender has processed
	MessageType     Type
}

// Encode writes the header to a fresh 24-byte buffer.
func (h Header) Encode() []byte {
	buf := make([]byte, HeaderSize)
	h.EncodeTo(buf)
	return buf
}

// EncodeTo writes the header into buf, which must be at least HeaderSize
// bytes, and returns the number of bytes written.
func (h Header) EncodeTo(buf []byte) int {
	binary.BigEndian.PutUint32(buf[0:4], h.MessageSize)
	binary.BigEndian.PutUint32(buf[4:8], h.SequenceNum)
	binary.BigEndian.PutUint64(buf[8:16], h.SessionID)
	binary.BigEndian.PutUint32(buf[16:20], h.LastReceivedSeq)
	binary.BigEndian.PutUint32(buf[20:24], uint32(h.MessageType))
	return HeaderSize
}

// DecodeHeader parses a 24-byte header from buf. buf may contain trailing
// payload bytes; only the first HeaderSize bytes are consumed.
func DecodeHeader(buf []byte) (Header, error) {
	if len(buf) < HeaderSize {
		return Header{}, ErrShortFrame
	}
	h := Header{
		MessageSize:     binary.BigEndian.Uint32(buf[0:4]),
		SequenceNum:     binary.BigEndian.Uint32(buf[4:8]),
		SessionID:       binary.BigEndian.Uint64(buf[8:16]),
		LastReceivedSeq: binary.BigEndian.Uint32(buf[16:20]),
		MessageType:     Type(binary.BigEndian.Uint32(buf[20:24])),
	}
	if h.MessageSize < HeaderSize {
		return Header{}, ErrShortFrame
	}
	if !h.MessageType.Valid() {
		return Header{}, &UnknownTypeError{Value: uint32(h.MessageType)}
	}
	return h, nil
}
