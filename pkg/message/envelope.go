package message

import "encoding/binary"

// SessionStatus is the status code carried in a NewSessionStatus payload.
type SessionStatus int32

const (
	// StatusUnset is a local, pre-parse sentinel; never seen on the wire.
	StatusUnset                      SessionStatus = -1
	StatusSuccess                    SessionStatus = 0
	StatusUnsupportedProtocolVersion SessionStatus = 1
	StatusOutOfResources             SessionStatus = 2
	StatusInternalError              SessionStatus = 99
)

func (s SessionStatus) String() string {
	switch s {
	case StatusUnset:
		return "UNSET"
	case StatusSuccess:
		return "SUCCESS"
	case StatusUnsupportedProtocolVersion:
		return "UNSUPPORTED_PROTOCOL_VERSION"
	case StatusOutOfResources:
		return "OUT_OF_RESOURCES"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	default:
		return "RESERVED"
	}
}

// ProtocolVersion is the single protocol version this engine implements
// and advertises in NewSession.
const ProtocolVersion uint32 = 1

// NewSession is the payload of a CTRL_NEW_SESSION envelope.
type NewSession struct {
	ProtocolVersion uint32
}

func (p NewSession) Encode() []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, p.ProtocolVersion)
	return buf
}

func DecodeNewSession(buf []byte) (NewSession, error) {
	if len(buf) < 4 {
		return NewSession{}, ErrPayloadTooShort
	}
	return NewSession{ProtocolVersion: binary.BigEndian.Uint32(buf[0:4])}, nil
}

// NewSessionStatus is the payload of a CTRL_NEW_SESSION_STATUS envelope.
type NewSessionStatus struct {
	Status SessionStatus
}

func (p NewSessionStatus) Encode() []byte {
	buf := make([]byte, 4)
	binary.BigEndian.PutUint32(buf, uint32(int32(p.Status)))
	return buf
}

func DecodeNewSessionStatus(buf []byte) (NewSessionStatus, error) {
	if len(buf) < 4 {
		return NewSessionStatus{}, ErrPayloadTooShort
	}
	return NewSessionStatus{Status: SessionStatus(int32(binary.BigEndian.Uint32(buf[0:4])))}, nil
}

// Heartbeat and HeartbeatResponse carry no payload.
type Heartbeat struct{}
type HeartbeatResponse struct{}

// ResumeRequest and ResumeStatus are enumerated (message types 10, 11) but
// carry no implemented semantics; resume/reconnection is out of scope
// (spec §9). Their presence here is limited to the message-type constants
// in header.go so an unexpected frame of this type is recognized rather
// than rejected as unknown.
