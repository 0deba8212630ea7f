package session

import "errors"

// Session errors (spec §7). All are fatal: the session is always followed
// by cleanup and a connectionLost callback to the ambassador.
var (
	ErrUnsupportedProtocolVersion = errors.New("session: unsupported protocol version")
	ErrOutOfResources             = errors.New("session: rti out of resources")
	ErrSessionInternalError       = errors.New("session: internal error")
	ErrSessionTerminated          = errors.New("session: terminated by peer")
	ErrHeartbeatLost              = errors.New("session: heartbeat lost")
)
