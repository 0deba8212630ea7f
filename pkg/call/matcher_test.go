package call

import (
	"net"
	"testing"
	"time"

	"github.com/makfedpro/fedpro-go/pkg/callback"
	"github.com/makfedpro/fedpro-go/pkg/message"
	"github.com/makfedpro/fedpro-go/pkg/session"
	"github.com/makfedpro/fedpro-go/pkg/transport"
)

func newMatcherPair(t *testing.T) (*Matcher, *callback.Queue, net.Conn) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	addr := ln.Addr().(*net.TCPAddr)
	acceptCh := make(chan net.Conn, 1)
	go func() {
		conn, err := ln.Accept()
		if err == nil {
			acceptCh <- conn
		}
	}()

	tr := transport.New(transport.Config{})
	if err := tr.Connect(addr.IP.String(), uint16(addr.Port)); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	peer := <-acceptCh
	t.Cleanup(func() { peer.Close() })

	sess := session.New(session.Config{Transport: tr})
	q := callback.NewQueue()
	m := New(Config{
		Transport: tr,
		Session:   sess,
		Callbacks: q,
		DecodeException: func(body []byte) (string, string, error) {
			return string(body[:1]), string(body[1:]), nil
		},
	})
	return m, q, peer
}

func readRequest(t *testing.T, peer net.Conn) message.Frame {
	t.Helper()
	buf := make([]byte, message.HeaderSize+64)
	n, err := peer.Read(buf)
	if err != nil {
		t.Fatalf("peer read error = %v", err)
	}
	frame, err := message.DecodeFrame(buf[:n])
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	return frame
}

func TestCallMatchesResponse(t *testing.T) {
	m, _, peer := newMatcherPair(t)

	done := make(chan struct{})
	var resp Response
	var callErr error
	go func() {
		resp, callErr = m.Call(1, []byte("req"), 2, time.Second)
		close(done)
	}()

	req := readRequest(t, peer)
	if req.Header.MessageType != message.HLACallRequest {
		t.Fatalf("message type = %s, want HLA_CALL_REQUEST", req.Header.MessageType)
	}

	reply := message.Frame{
		Header: message.Header{SequenceNum: req.Header.SequenceNum, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(2, []byte("resp")),
	}
	if _, err := peer.Write(reply.Encode()); err != nil {
		t.Fatalf("peer write error = %v", err)
	}

	<-done
	if callErr != nil {
		t.Fatalf("Call() error = %v", callErr)
	}
	if resp.Tag != 2 || string(resp.Body) != "resp" {
		t.Fatalf("resp = %+v", resp)
	}
	if m.InFlight() {
		t.Fatalf("InFlight() = true after Call returned")
	}
}

func TestCallDiscardsUnrelatedResponseThenMatches(t *testing.T) {
	m, _, peer := newMatcherPair(t)

	done := make(chan struct{})
	var resp Response
	var callErr error
	go func() {
		resp, callErr = m.Call(1, []byte("req"), 2, time.Second)
		close(done)
	}()

	req := readRequest(t, peer)

	stale := message.Frame{
		Header:  message.Header{SequenceNum: req.Header.SequenceNum + 99, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(2, []byte("stale")),
	}
	if _, err := peer.Write(stale.Encode()); err != nil {
		t.Fatalf("peer write stale error = %v", err)
	}

	fresh := message.Frame{
		Header:  message.Header{SequenceNum: req.Header.SequenceNum, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(2, []byte("fresh")),
	}
	if _, err := peer.Write(fresh.Encode()); err != nil {
		t.Fatalf("peer write fresh error = %v", err)
	}

	<-done
	if callErr != nil {
		t.Fatalf("Call() error = %v", callErr)
	}
	if string(resp.Body) != "fresh" {
		t.Fatalf("resp.Body = %q, want %q", resp.Body, "fresh")
	}
}

func TestCallDecodesException(t *testing.T) {
	m, _, peer := newMatcherPair(t)

	done := make(chan struct{})
	var callErr error
	go func() {
		_, callErr = m.Call(1, []byte("req"), 2, time.Second)
		close(done)
	}()

	req := readRequest(t, peer)
	excReply := message.Frame{
		Header:  message.Header{SequenceNum: req.Header.SequenceNum, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(ExceptionDataTag, []byte("Xbad handle")),
	}
	if _, err := peer.Write(excReply.Encode()); err != nil {
		t.Fatalf("peer write error = %v", err)
	}

	<-done
	rtiErr, ok := callErr.(*RTIExceptionError)
	if !ok {
		t.Fatalf("callErr = %v (%T), want *RTIExceptionError", callErr, callErr)
	}
	if rtiErr.Name != "X" || rtiErr.Detail != "bad handle" {
		t.Fatalf("rtiErr = %+v", rtiErr)
	}
}

func TestCallTimesOut(t *testing.T) {
	m, _, _ := newMatcherPair(t)
	_, err := m.Call(1, []byte("req"), 2, 50*time.Millisecond)
	if err != ErrTimeout {
		t.Fatalf("Call() error = %v, want ErrTimeout", err)
	}
	if m.InFlight() {
		t.Fatalf("InFlight() = true after timeout")
	}
}

func TestCallEnqueuesInterleavedCallback(t *testing.T) {
	m, q, peer := newMatcherPair(t)

	done := make(chan struct{})
	var resp Response
	var callErr error
	go func() {
		resp, callErr = m.Call(1, []byte("req"), 2, time.Second)
		close(done)
	}()

	req := readRequest(t, peer)

	cb := message.Frame{
		Header:  message.Header{SequenceNum: 42, MessageType: message.HLACallbackRequest},
		Payload: message.JoinTaggedPayload(99, []byte("discoverObjectInstance")),
	}
	if _, err := peer.Write(cb.Encode()); err != nil {
		t.Fatalf("peer write callback error = %v", err)
	}

	reply := message.Frame{
		Header:  message.Header{SequenceNum: req.Header.SequenceNum, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(2, []byte("resp")),
	}
	if _, err := peer.Write(reply.Encode()); err != nil {
		t.Fatalf("peer write response error = %v", err)
	}

	<-done
	if callErr != nil {
		t.Fatalf("Call() error = %v", callErr)
	}
	if resp.Tag != 2 {
		t.Fatalf("resp.Tag = %d, want 2", resp.Tag)
	}
	if q.Len() != 1 {
		t.Fatalf("callback queue length = %d, want 1", q.Len())
	}
	queued, ok := q.Dequeue()
	if !ok || queued.Header.SequenceNum != 42 {
		t.Fatalf("queued frame = %+v, ok = %v", queued, ok)
	}
}

func TestCallRejectsWhenAlreadyInFlight(t *testing.T) {
	m, _, _ := newMatcherPair(t)
	m.pending = &pendingExpectation{responseTag: 2, seq: 1}

	_, err := m.Call(1, []byte("req"), 2, time.Second)
	if err != ErrCallAlreadyInFlight {
		t.Fatalf("Call() error = %v, want ErrCallAlreadyInFlight", err)
	}
}
