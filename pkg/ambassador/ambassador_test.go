package ambassador

import (
	"bytes"
	"net"
	"testing"
	"time"

	"github.com/makfedpro/fedpro-go/pkg/call"
	"github.com/makfedpro/fedpro-go/pkg/callback"
	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/message"
	"github.com/makfedpro/fedpro-go/pkg/payload"
	"github.com/makfedpro/fedpro-go/pkg/payload/tlvcodec"
	"github.com/makfedpro/fedpro-go/pkg/session"
	"github.com/makfedpro/fedpro-go/pkg/tlv"
	"github.com/makfedpro/fedpro-go/pkg/transport"
)

// reentrantAmbassador calls back into the enclosing RtiAmbassador from a
// callback method, to exercise the CallNotAllowedFromWithinCallback guard.
type reentrantAmbassador struct {
	ambo *RtiAmbassador
	err  error
}

func (a *reentrantAmbassador) ConnectionLost(string) error                             { return nil }
func (a *reentrantAmbassador) ReportFederationExecutions([]string) error               { return nil }
func (a *reentrantAmbassador) ReportFederationExecutionMembers(string, []string) error  { return nil }
func (a *reentrantAmbassador) ReportFederationExecutionDoesNotExist(string) error       { return nil }
func (a *reentrantAmbassador) FederateResigned(string) error                           { return nil }
func (a *reentrantAmbassador) ObjectInstanceNameReservationSucceeded(string) error      { return nil }
func (a *reentrantAmbassador) ObjectInstanceNameReservationFailed(string) error         { return nil }
func (a *reentrantAmbassador) RemoveObjectInstance(handle.ObjectInstanceHandle, []byte, handle.FederateHandle) error {
	return nil
}
func (a *reentrantAmbassador) ReceiveInteraction(handle.InteractionClassHandle, map[handle.ParameterHandle][]byte, []byte, uint8, handle.FederateHandle) error {
	return nil
}
func (a *reentrantAmbassador) ReflectAttributeValues(handle.ObjectInstanceHandle, map[handle.AttributeHandle][]byte, []byte, uint8, handle.FederateHandle) error {
	return nil
}

func (a *reentrantAmbassador) DiscoverObjectInstance(handle.ObjectInstanceHandle, handle.ObjectClassHandle, string, handle.FederateHandle) error {
	_, a.err = a.ambo.GetObjectClassHandle("HLAobjectRoot.Whatever")
	return nil
}

func newTestAmbassador(t *testing.T, ambo callback.FederateAmbassador) (*RtiAmbassador, *callback.Dispatcher, net.Conn) {
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
	queue := callback.NewQueue()
	codec := tlvcodec.New()
	matcher := call.New(call.Config{
		Transport:       tr,
		Session:         sess,
		Callbacks:       queue,
		DecodeException: codec.DecodeException,
	})
	dispatcher := callback.New(callback.Config{
		Transport:  tr,
		Session:    sess,
		Queue:      queue,
		Ambassador: ambo,
		Codec:      codec,
	})
	caches := handle.NewCaches()

	a := New(Config{
		Matcher:    matcher,
		Dispatcher: dispatcher,
		Caches:     caches,
		Codec:      codec,
	})
	return a, dispatcher, peer
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

func handleResultFixture(t *testing.T, h []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		t.Fatalf("StartStructure: %v", err)
	}
	if err := w.PutBytes(tlv.ContextTag(0), h); err != nil {
		t.Fatalf("PutBytes: %v", err)
	}
	if err := w.EndContainer(); err != nil {
		t.Fatalf("EndContainer: %v", err)
	}
	return buf.Bytes()
}

func exceptionFixture(t *testing.T, name, detail string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	if err := w.StartStructure(tlv.Anonymous()); err != nil {
		t.Fatalf("StartStructure: %v", err)
	}
	if err := w.PutString(tlv.ContextTag(0), name); err != nil {
		t.Fatalf("PutString: %v", err)
	}
	if err := w.PutString(tlv.ContextTag(1), detail); err != nil {
		t.Fatalf("PutString: %v", err)
	}
	if err := w.EndContainer(); err != nil {
		t.Fatalf("EndContainer: %v", err)
	}
	return buf.Bytes()
}

func TestGetObjectClassHandleCachesOnFirstLookup(t *testing.T) {
	a, _, peer := newTestAmbassador(t, &reentrantAmbassador{})

	done := make(chan struct{})
	var h handle.ObjectClassHandle
	var err error
	go func() {
		h, err = a.GetObjectClassHandle("HLAobjectRoot.Ball")
		close(done)
	}()

	req := readRequest(t, peer)
	tag, _, splitErr := message.SplitTaggedPayload(req.Payload)
	if splitErr != nil {
		t.Fatalf("SplitTaggedPayload: %v", splitErr)
	}
	if payload.Tag(tag) != payload.TagGetObjectClassHandle {
		t.Fatalf("request tag = %d, want TagGetObjectClassHandle", tag)
	}
	reply := message.Frame{
		Header:  message.Header{SequenceNum: req.Header.SequenceNum, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(tag, handleResultFixture(t, []byte{0x09})),
	}
	if _, werr := peer.Write(reply.Encode()); werr != nil {
		t.Fatalf("peer write error = %v", werr)
	}

	<-done
	if err != nil {
		t.Fatalf("GetObjectClassHandle() error = %v", err)
	}
	if string(h.Bytes()) != "\x09" {
		t.Fatalf("handle = %v, want 0x09", h.Bytes())
	}

	// A second lookup must be served from the cache: no peer interaction
	// happens here, so a blocking Call would hang this test if the cache
	// were bypassed.
	h2, err := a.GetObjectClassHandle("HLAobjectRoot.Ball")
	if err != nil {
		t.Fatalf("GetObjectClassHandle() (cached) error = %v", err)
	}
	if h2 != h {
		t.Fatalf("cached handle = %v, want %v", h2, h)
	}
}

func TestCallMapsRTIException(t *testing.T) {
	a, _, peer := newTestAmbassador(t, &reentrantAmbassador{})

	done := make(chan struct{})
	var callErr error
	go func() {
		_, callErr = a.GetObjectClassHandle("HLAobjectRoot.Unknown")
		close(done)
	}()

	req := readRequest(t, peer)
	reply := message.Frame{
		Header:  message.Header{SequenceNum: req.Header.SequenceNum, MessageType: message.HLACallResponse},
		Payload: message.JoinTaggedPayload(call.ExceptionDataTag, exceptionFixture(t, "NameNotFound", "no such object class")),
	}
	if _, err := peer.Write(reply.Encode()); err != nil {
		t.Fatalf("peer write error = %v", err)
	}

	<-done
	if callErr != ErrNameNotFound {
		t.Fatalf("callErr = %v, want ErrNameNotFound", callErr)
	}
}

func TestCallNotAllowedFromWithinCallback(t *testing.T) {
	recorder := &reentrantAmbassador{}
	a, dispatcher, peer := newTestAmbassador(t, recorder)
	recorder.ambo = a

	tag, body, err := tlvcodec.New().EncodeCallbackRequest(payload.DiscoverObjectInstanceCallback{
		Object: handle.NewObjectInstanceHandle([]byte{0x01}),
		Class:  handle.NewObjectClassHandle([]byte{0x02}),
		Name:   "Ball7",
	})
	if err != nil {
		t.Fatalf("EncodeCallbackRequest: %v", err)
	}
	frame := message.Frame{
		Header:  message.Header{SequenceNum: 1, MessageType: message.HLACallbackRequest},
		Payload: message.JoinTaggedPayload(tag, body),
	}
	if _, err := peer.Write(frame.Encode()); err != nil {
		t.Fatalf("peer write error = %v", err)
	}

	if err := dispatcher.EvokeCallback(150 * time.Millisecond); err != nil {
		t.Fatalf("EvokeCallback() error = %v", err)
	}
	if recorder.err != ErrCallNotAllowedFromWithinCallback {
		t.Fatalf("reentrant call error = %v, want ErrCallNotAllowedFromWithinCallback", recorder.err)
	}
}

func TestUpdateAttributeValuesRejectsEmptyMap(t *testing.T) {
	a, _, _ := newTestAmbassador(t, &reentrantAmbassador{})
	err := a.UpdateAttributeValues(handle.NewObjectInstanceHandle([]byte{0x01}), nil, nil)
	if err != ErrNoAttributesProvided {
		t.Fatalf("UpdateAttributeValues() error = %v, want ErrNoAttributesProvided", err)
	}
}
