package call

import (
	"errors"
	"fmt"
)

var (
	// ErrCallAlreadyInFlight is returned when Call is invoked while another
	// call is still awaiting its response (spec invariant 4).
	ErrCallAlreadyInFlight = errors.New("call: a call is already in flight")

	// ErrTimeout is returned when the read deadline elapses with no
	// matching response.
	ErrTimeout = errors.New("call: timed out waiting for response")
)

// RTIExceptionError wraps an RTI-side EXCEPTION_DATA response. The
// ambassador façade maps Name to a typed sentinel error (pkg/ambassador);
// the matcher itself stays agnostic of the HLA exception taxonomy.
type RTIExceptionError struct {
	Name   string
	Detail string
}

func (e *RTIExceptionError) Error() string {
	return fmt.Sprintf("call: rti exception %s: %s", e.Name, e.Detail)
}
