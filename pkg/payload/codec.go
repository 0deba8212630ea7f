package payload

// Codec marshals and unmarshals the call/callback request and response
// variants to and from the schema-serialized bodies carried inside
// HLA_CALL_*/HLA_CALLBACK_* envelopes. The façade (pkg/ambassador) and the
// dispatcher (pkg/callback) depend only on this interface; pkg/payload/tlvcodec
// is this module's reference implementation.
//
// Request/response/callback values are passed as `any` because the set of
// concrete variants (ConnectRequest, JoinFederationExecutionRequest, ...)
// is open-ended in principle, matching the external discriminated-union
// schema spec.md describes; EncodeCallRequest and friends type-switch on
// the concrete value to pick a Tag and an encoding.
type Codec interface {
	// EncodeCallRequest serializes a CallRequest variant (e.g.
	// ConnectRequest) to its wire tag and body.
	EncodeCallRequest(req any) (tag uint32, body []byte, err error)

	// DecodeCallResponse deserializes a CallResponse body given its wire
	// tag, returning the matching concrete response type (e.g.
	// ConfigurationResult, HandleResult, EmptyResult).
	DecodeCallResponse(tag uint32, body []byte) (resp any, err error)

	// DecodeException deserializes the body of an EXCEPTION_DATA response.
	DecodeException(body []byte) (name, detail string, err error)

	// EncodeCallbackRequest serializes a CallbackRequest variant (e.g.
	// ReflectAttributeValuesCallback) to its wire tag and body. Used by
	// test doubles standing in for the RTI bridge.
	EncodeCallbackRequest(req any) (tag uint32, body []byte, err error)

	// DecodeCallbackRequest deserializes a CallbackRequest body given its
	// wire tag, returning the matching concrete callback type.
	DecodeCallbackRequest(tag uint32, body []byte) (req any, err error)
}
