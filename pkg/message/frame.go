package message

import "fmt"

// Frame is a fully decoded FedPro envelope: a header plus its raw payload
// bytes. For CTRL_* message types the payload has already been validated by
// the caller against the fixed shapes in envelope.go; for HLA_CALL_*/
// HLA_CALLBACK_* types the payload is opaque and is handed to a
// payload.Codec by the caller.
type Frame struct {
	Header  Header
	Payload []byte
}

// Encode serializes the frame to its exact wire representation. The
// header's MessageSize is recomputed from len(Payload) so callers never
// need to keep it in sync by hand.
func (f Frame) Encode() []byte {
	f.Header.MessageSize = uint32(HeaderSize + len(f.Payload))
	buf := make([]byte, f.Header.MessageSize)
	f.Header.EncodeTo(buf)
	copy(buf[HeaderSize:], f.Payload)
	return buf
}

// DecodeFrame parses a complete frame (header plus payload) from buf. buf
// must be exactly the frame's declared message_size; a transport is
// responsible for reading that many bytes before calling this.
func DecodeFrame(buf []byte) (Frame, error) {
	h, err := DecodeHeader(buf)
	if err != nil {
		return Frame{}, err
	}
	if uint32(len(buf)) != h.MessageSize {
		return Frame{}, ErrShortFrame
	}
	payload := make([]byte, len(buf)-HeaderSize)
	copy(payload, buf[HeaderSize:])
	return Frame{Header: h, Payload: payload}, nil
}

// String renders a frame for structured log lines.
func (f Frame) String() string {
	return fmt.Sprintf("Frame{type=%s seq=%d session=%d lastRecv=%d payloadLen=%d}",
		f.Header.MessageType, f.Header.SequenceNum, f.Header.SessionID,
		f.Header.LastReceivedSeq, len(f.Payload))
}

// requestTypeTagSize is the width of the request-type/response-type tag
// prefix carried at the start of HLA_CALL_*/HLA_CALLBACK_* payloads, ahead
// of the schema-serialized body (spec §3).
const requestTypeTagSize = 4

// SplitTaggedPayload separates the leading 4-byte variant tag from the
// schema-serialized body of a CallRequest, CallResponse, CallbackRequest,
// or CallbackResponse payload.
func SplitTaggedPayload(payload []byte) (tag uint32, body []byte, err error) {
	if len(payload) < requestTypeTagSize {
		return 0, nil, ErrPayloadTooShort
	}
	tag = uint32(payload[0])<<24 | uint32(payload[1])<<16 | uint32(payload[2])<<8 | uint32(payload[3])
	return tag, payload[requestTypeTagSize:], nil
}

// JoinTaggedPayload prepends a 4-byte variant tag to a schema-serialized
// body, producing the payload of a CallRequest, CallResponse,
// CallbackRequest, or CallbackResponse envelope.
func JoinTaggedPayload(tag uint32, body []byte) []byte {
	buf := make([]byte, requestTypeTagSize+len(body))
	buf[0] = byte(tag >> 24)
	buf[1] = byte(tag >> 16)
	buf[2] = byte(tag >> 8)
	buf[3] = byte(tag)
	copy(buf[requestTypeTagSize:], body)
	return buf
}
