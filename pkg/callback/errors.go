package callback

import "errors"

// ErrUnknownCallbackVariant is returned when a decoded CallbackRequest
// does not match any of the FederateAmbassador methods the dispatcher
// knows how to invoke.
var ErrUnknownCallbackVariant = errors.New("callback: unknown callback variant")
