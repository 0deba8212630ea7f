package message

import (
	"errors"
	"fmt"
)

// Framing errors.
var (
	// ErrShortFrame is returned when a buffer is too small to hold a
	// complete header, or a header declares a message_size smaller than
	// HeaderSize.
	ErrShortFrame = errors.New("message: short frame")

	// ErrPayloadTooShort is returned when a control envelope's payload is
	// smaller than its fixed shape requires.
	ErrPayloadTooShort = errors.New("message: payload too short")

	// ErrFrameTooLarge is returned by callers enforcing a maximum frame
	// size before allocating a read buffer.
	ErrFrameTooLarge = errors.New("message: frame exceeds maximum size")
)

// UnknownTypeError is returned when a header's message_type is not one of
// the enumerated discriminator values. It is fatal to the session (spec
// §7): the connection must be torn down after this error is observed.
type UnknownTypeError struct {
	Value uint32
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("message: unknown message type %d", e.Value)
}
