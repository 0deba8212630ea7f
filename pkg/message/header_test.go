package message

import "testing"

func TestHeaderEncodeDecodeRoundTrip(t *testing.T) {
	h := Header{
		MessageSize:     HeaderSize + 4,
		SequenceNum:     7,
		SessionID:       0x0102030405060708,
		LastReceivedSeq: 3,
		MessageType:     HLACallRequest,
	}
	buf := h.Encode()
	if len(buf) != HeaderSize {
		t.Fatalf("Encode() length = %d, want %d", len(buf), HeaderSize)
	}
	got, err := DecodeHeader(buf)
	if err != nil {
		t.Fatalf("DecodeHeader() error = %v", err)
	}
	if got != h {
		t.Fatalf("DecodeHeader() = %+v, want %+v", got, h)
	}
}

func TestDecodeHeaderShortFrame(t *testing.T) {
	if _, err := DecodeHeader(make([]byte, 10)); err != ErrShortFrame {
		t.Fatalf("DecodeHeader() error = %v, want ErrShortFrame", err)
	}
}

func TestDecodeHeaderRejectsSizeBelowHeader(t *testing.T) {
	buf := make([]byte, HeaderSize)
	// message_size field claims fewer bytes than the header itself occupies.
	buf[3] = 10
	if _, err := DecodeHeader(buf); err != ErrShortFrame {
		t.Fatalf("DecodeHeader() error = %v, want ErrShortFrame", err)
	}
}

func TestDecodeHeaderRejectsUnknownMessageType(t *testing.T) {
	h := Header{MessageSize: HeaderSize, MessageType: Type(42)}
	buf := h.Encode()
	_, err := DecodeHeader(buf)
	unknown, ok := err.(*UnknownTypeError)
	if !ok {
		t.Fatalf("DecodeHeader() error = %v, want *UnknownTypeError", err)
	}
	if unknown.Value != 42 {
		t.Fatalf("UnknownTypeError.Value = %d, want 42", unknown.Value)
	}
}

// TestHandshakeFrameBytes encodes the literal S1 handshake request from the
// scenario table: a 28-byte NewSession frame, sequence 0, session 0,
// last-received 0, type 1, protocol_version 1.
func TestHandshakeFrameBytes(t *testing.T) {
	want := []byte{
		0x00, 0x00, 0x00, 0x1C,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x01,
	}
	f := Frame{
		Header: Header{
			SequenceNum: 0,
			SessionID:   0,
			MessageType: CtrlNewSession,
		},
		Payload: NewSession{ProtocolVersion: ProtocolVersion}.Encode(),
	}
	got := f.Encode()
	if len(got) != len(want) {
		t.Fatalf("Encode() length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Encode()[%d] = %#x, want %#x", i, got[i], want[i])
		}
	}
}

func TestSplitJoinTaggedPayloadRoundTrip(t *testing.T) {
	body := []byte{0xAA, 0xBB, 0xCC}
	payload := JoinTaggedPayload(42, body)
	tag, gotBody, err := SplitTaggedPayload(payload)
	if err != nil {
		t.Fatalf("SplitTaggedPayload() error = %v", err)
	}
	if tag != 42 {
		t.Fatalf("tag = %d, want 42", tag)
	}
	if string(gotBody) != string(body) {
		t.Fatalf("body = %v, want %v", gotBody, body)
	}
}

func TestSplitTaggedPayloadShort(t *testing.T) {
	if _, _, err := SplitTaggedPayload([]byte{0x01, 0x02}); err != ErrPayloadTooShort {
		t.Fatalf("error = %v, want ErrPayloadTooShort", err)
	}
}
