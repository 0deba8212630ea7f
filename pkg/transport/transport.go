// Package transport owns the single outbound TCP byte stream a FedPro
// engine speaks to an RTI bridge over. It knows nothing about sessions,
// sequencing, or message types — it reads and writes whole frames,
// each one a length-prefixed buffer whose first 4 bytes (big-endian) are
// the frame's total size, matching message.Header.MessageSize.
package transport

import (
	"encoding/binary"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/pion/logging"

	"github.com/makfedpro/fedpro-go/pkg/message"
)

// MaxFrameSize bounds how much a single Receive will allocate for an
// attacker- or bug-controlled message_size before giving up.
const MaxFrameSize = 16 * 1024 * 1024

// Transport is a single, exclusively-owned connection to an RTI bridge.
// It is not safe for concurrent use; the engine that owns it accesses it
// from one goroutine at a time (spec §5).
type Transport struct {
	log logging.LeveledLogger

	mu       sync.Mutex
	conn     net.Conn
	lastErr  error
	dialFunc func(network, address string) (net.Conn, error)
}

// Config configures a Transport.
type Config struct {
	// LoggerFactory builds the transport's logger. If nil, logging is
	// disabled.
	LoggerFactory logging.LoggerFactory
}

// New creates an unconnected Transport.
func New(config Config) *Transport {
	t := &Transport{dialFunc: net.Dial}
	if config.LoggerFactory != nil {
		t.log = config.LoggerFactory.NewLogger("transport")
	}
	return t
}

// Connect dials host:port over TCP. Any previous connection is closed
// first.
func (t *Transport) Connect(host string, port uint16) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}

	addr := net.JoinHostPort(host, strconv.Itoa(int(port)))
	if t.log != nil {
		t.log.Infof("connecting to %s", addr)
	}

	conn, err := t.dialFunc("tcp", addr)
	if err != nil {
		t.lastErr = err
		return ErrTransportIoError{Cause: err}
	}
	t.conn = conn
	t.lastErr = nil
	return nil
}

// Send writes frame as a single all-or-nothing write. frame must already
// be a fully encoded header+payload (see message.Frame.Encode).
func (t *Transport) Send(frame []byte) error {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return ErrNotConnected
	}
	if _, err := conn.Write(frame); err != nil {
		t.recordErr(err)
		if isClosedErr(err) {
			return ErrTransportClosed
		}
		return ErrTransportIoError{Cause: err}
	}
	return nil
}

// Receive blocks until one complete frame has been read, the deadline
// elapses, or the connection fails. It first reads the 4-byte message_size
// field, then reads message_size-4 further bytes; partial reads before the
// deadline are retried transparently by the underlying net.Conn deadline
// mechanism.
func (t *Transport) Receive(deadline time.Time) (message.Frame, error) {
	t.mu.Lock()
	conn := t.conn
	t.mu.Unlock()

	if conn == nil {
		return message.Frame{}, ErrNotConnected
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return message.Frame{}, ErrTransportIoError{Cause: err}
	}

	var sizeBuf [4]byte
	if _, err := io.ReadFull(conn, sizeBuf[:]); err != nil {
		return message.Frame{}, t.classifyReadErr(err)
	}
	size := binary.BigEndian.Uint32(sizeBuf[:])
	if size < message.HeaderSize {
		return message.Frame{}, message.ErrShortFrame
	}
	if size > MaxFrameSize {
		return message.Frame{}, message.ErrFrameTooLarge
	}

	buf := make([]byte, size)
	copy(buf[:4], sizeBuf[:])
	if _, err := io.ReadFull(conn, buf[4:]); err != nil {
		return message.Frame{}, t.classifyReadErr(err)
	}

	frame, err := message.DecodeFrame(buf)
	if err != nil {
		return message.Frame{}, err
	}
	if t.log != nil {
		t.log.Debugf("received %s", frame)
	}
	return frame, nil
}

// Close closes the underlying connection. Idempotent.
func (t *Transport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.conn == nil {
		return nil
	}
	err := t.conn.Close()
	t.conn = nil
	return err
}

// LastError returns the most recent I/O error observed by Send or Receive,
// or nil. It is cleared on the next successful Connect.
func (t *Transport) LastError() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.lastErr
}

func (t *Transport) recordErr(err error) {
	t.mu.Lock()
	t.lastErr = err
	t.mu.Unlock()
}

func (t *Transport) classifyReadErr(err error) error {
	t.recordErr(err)
	if ne, ok := err.(net.Error); ok && ne.Timeout() {
		return ErrTransportTimeout
	}
	if err == io.EOF || isClosedErr(err) {
		return ErrTransportClosed
	}
	return ErrTransportIoError{Cause: err}
}

func isClosedErr(err error) bool {
	return err == io.ErrClosedPipe || err == net.ErrClosed
}

