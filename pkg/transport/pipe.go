package transport

import (
	"net"
	"sync"
	"time"

	"github.com/pion/transport/v3/test"
)

// Pipe is an in-memory, full-duplex connection pair backed by pion's
// test.Bridge. This module's own tests use it in place of a real loopback
// TCP connection wherever a test needs to inject a network fault a real
// socket won't reproduce on demand: a heartbeat silently going unanswered,
// a half-open connection that neither side has closed yet.
//
// Bridge delivery is not automatic; Pipe runs its own background ticker so
// callers can treat Conn0/Conn1 like ordinary connected sockets.
type Pipe struct {
	bridge *test.Bridge

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewPipe creates a Pipe with delivery running in the background. Close
// stops delivery and closes both endpoints.
func NewPipe() *Pipe {
	p := &Pipe{bridge: test.NewBridge(), stopCh: make(chan struct{})}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		ticker := time.NewTicker(time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-p.stopCh:
				return
			case <-ticker.C:
				p.bridge.Tick()
			}
		}
	}()
	return p
}

// Conn0 returns the connection for endpoint 0.
func (p *Pipe) Conn0() net.Conn { return p.bridge.GetConn0() }

// Conn1 returns the connection for endpoint 1.
func (p *Pipe) Conn1() net.Conn { return p.bridge.GetConn1() }

// Close stops background delivery and closes both endpoints.
func (p *Pipe) Close() error {
	close(p.stopCh)
	p.wg.Wait()

	err0 := p.bridge.GetConn0().Close()
	err1 := p.bridge.GetConn1().Close()
	if err0 != nil {
		return err0
	}
	return err1
}

// DroppingConn wraps a net.Conn and silently discards every Write while
// Dropping is set, simulating a black-holed link: the writer sees a
// successful write (as a real socket would, since TCP delivery is not
// synchronous with write()), but the peer never observes the bytes. This
// is how this module's tests reproduce spec §4.3's heartbeat_timeout
// scenario deterministically, instead of merely having a peer decline to
// reply.
type DroppingConn struct {
	net.Conn

	mu       sync.Mutex
	dropping bool
}

// SetDropping toggles whether subsequent writes are discarded.
func (c *DroppingConn) SetDropping(dropping bool) {
	c.mu.Lock()
	c.dropping = dropping
	c.mu.Unlock()
}

// Write discards b without forwarding it when dropping is set.
func (c *DroppingConn) Write(b []byte) (int, error) {
	c.mu.Lock()
	dropping := c.dropping
	c.mu.Unlock()
	if dropping {
		return len(b), nil
	}
	return c.Conn.Write(b)
}
