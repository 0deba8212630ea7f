package payload

import "errors"

var (
	// ErrUnknownVariant is returned by a Codec when asked to encode or
	// decode a request/response/callback value it does not recognize.
	ErrUnknownVariant = errors.New("payload: unknown variant")

	// ErrNoAttributesProvided is returned by a Codec when asked to encode
	// an UpdateAttributeValuesRequest with an empty AttributeValues map,
	// which the RTI bridge rejects outright (spec §4.6).
	ErrNoAttributesProvided = errors.New("payload: no attributes provided")
)
