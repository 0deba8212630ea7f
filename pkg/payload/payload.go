// Package payload defines the contract for the "payload codec" spec.md
// treats as an external collaborator: the discriminated-union schema of
// HLA call/callback requests and responses, tagged by field number, that
// is carried as the opaque body of HLA_CALL_*/HLA_CALLBACK_* envelopes.
//
// The core (pkg/ambassador, pkg/call, pkg/callback) depends only on the
// Codec interface in this package; pkg/payload/tlvcodec is the reference
// implementation used by this module's own tests and examples.
package payload

import "github.com/makfedpro/fedpro-go/pkg/handle"

// Tag is the numeric field-number discriminator reused as the
// "request-type tag" / "response-type tag" in the envelope payload prefix
// (spec §3, §6).
type Tag uint32

const (
	TagConnect Tag = iota + 1
	TagCreateFederationExecution
	TagDestroyFederationExecution
	TagListFederationExecutions
	TagJoinFederationExecution
	TagResignFederationExecution
	TagGetObjectClassHandle
	TagGetAttributeHandle
	TagGetInteractionClassHandle
	TagGetParameterHandle
	TagPublishObjectClassAttributes
	TagUnpublishObjectClassAttributes
	TagPublishInteractionClass
	TagUnpublishInteractionClass
	TagSubscribeObjectClassAttributes
	TagUnsubscribeObjectClassAttributes
	TagSubscribeInteractionClass
	TagUnsubscribeInteractionClass
	TagReserveObjectInstanceName
	TagRegisterObjectInstance
	TagDeleteObjectInstance
	TagSendInteraction
	TagUpdateAttributeValues

	TagConnectionLost
	TagReportFederationExecutions
	TagReportFederationExecutionMembers
	TagReportFederationExecutionDoesNotExist
	TagFederateResigned
	TagObjectInstanceNameReservationSucceeded
	TagObjectInstanceNameReservationFailed
	TagDiscoverObjectInstance
	TagRemoveObjectInstance
	TagReceiveInteraction
	TagReflectAttributeValues
)

// ExceptionDataTag is the dedicated response-variant tag signaling an
// RTI-side exception (spec §6). It intentionally does not collide with any
// Tag value above; pkg/call re-exports this as call.ExceptionDataTag so the
// matcher and every Codec agree on one definition.
const ExceptionDataTag uint32 = 0xFFFFFFFF

// ResignAction enumerates the federation-resignation cleanup policies
// (spec §4.6).
type ResignAction int32

const (
	NoAction ResignAction = iota
	UnconditionallyDivestAttributes
	DeleteObjects
	CancelPendingOwnershipAcquisitions
	DeleteObjectsThenDivest
	CancelThenDeleteThenDivest
)

// AdditionalSettingsResult reports how the RTI bridge handled the
// additional-settings string passed to Connect (spec.md's original_source
// supplement, see DESIGN.md).
type AdditionalSettingsResult int32

const (
	SettingsIgnored AdditionalSettingsResult = iota
	SettingsFailedToParse
	SettingsApplied
)

// --- Call requests -----------------------------------------------------

type ConnectRequest struct {
	RTIAddressHost     string
	RTIAddressPort     uint16
	ConfigurationName  string
	AdditionalSettings string
}

type CreateFederationExecutionRequest struct {
	FederationName string
	FOMModules     []string
}

type DestroyFederationExecutionRequest struct {
	FederationName string
}

type ListFederationExecutionsRequest struct{}

type JoinFederationExecutionRequest struct {
	FederateName   string
	FederateType   string
	FederationName string
	FOMModules     []string
}

type ResignFederationExecutionRequest struct {
	Action ResignAction
}

type GetObjectClassHandleRequest struct{ Name string }
type GetAttributeHandleRequest struct {
	Class handle.ObjectClassHandle
	Name  string
}
type GetInteractionClassHandleRequest struct{ Name string }
type GetParameterHandleRequest struct {
	InteractionClass handle.InteractionClassHandle
	Name             string
}

// Publish/unpublish and subscribe/unsubscribe pairs are given distinct
// Go types, even where their fields are identical, because a Codec
// dispatches encoding by the concrete type of the value it is handed; a
// plain type alias would make the two operations indistinguishable.

type PublishObjectClassAttributesRequest struct {
	Class      handle.ObjectClassHandle
	Attributes []handle.AttributeHandle
}
type UnpublishObjectClassAttributesRequest struct {
	Class      handle.ObjectClassHandle
	Attributes []handle.AttributeHandle
}

type PublishInteractionClassRequest struct{ InteractionClass handle.InteractionClassHandle }
type UnpublishInteractionClassRequest struct{ InteractionClass handle.InteractionClassHandle }

type SubscribeObjectClassAttributesRequest struct {
	Class      handle.ObjectClassHandle
	Attributes []handle.AttributeHandle
	Active     bool
}
type UnsubscribeObjectClassAttributesRequest struct {
	Class      handle.ObjectClassHandle
	Attributes []handle.AttributeHandle
}

type SubscribeInteractionClassRequest struct{ InteractionClass handle.InteractionClassHandle }
type UnsubscribeInteractionClassRequest struct{ InteractionClass handle.InteractionClassHandle }

type ReserveObjectInstanceNameRequest struct{ Name string }

type RegisterObjectInstanceRequest struct {
	Class handle.ObjectClassHandle
	Name  string
}

type DeleteObjectInstanceRequest struct {
	Object  handle.ObjectInstanceHandle
	UserTag []byte
}

type SendInteractionRequest struct {
	InteractionClass handle.InteractionClassHandle
	ParameterValues  map[handle.ParameterHandle][]byte
	UserTag          []byte
}

type UpdateAttributeValuesRequest struct {
	Object          handle.ObjectInstanceHandle
	AttributeValues map[handle.AttributeHandle][]byte
	UserTag         []byte
}

// --- Call responses -----------------------------------------------------

type ConfigurationResult struct {
	AddressUsed              string
	ConfigurationUsed        string
	AdditionalSettingsResult AdditionalSettingsResult
	Message                  string
}

type EmptyResult struct{}

type HandleResult struct{ Handle []byte }

// --- Callback requests ---------------------------------------------------

type ConnectionLostCallback struct{ Fault string }

type ReportFederationExecutionsCallback struct {
	FederationNames []string
}

type ReportFederationExecutionMembersCallback struct {
	FederationName string
	FederateNames  []string
}

type ReportFederationExecutionDoesNotExistCallback struct {
	FederationName string
}

type FederateResignedCallback struct{ Reason string }

type ObjectInstanceNameReservationSucceededCallback struct{ Name string }
type ObjectInstanceNameReservationFailedCallback struct{ Name string }

type DiscoverObjectInstanceCallback struct {
	Object            handle.ObjectInstanceHandle
	Class             handle.ObjectClassHandle
	Name              string
	ProducingFederate handle.FederateHandle
}

type RemoveObjectInstanceCallback struct {
	Object            handle.ObjectInstanceHandle
	UserTag           []byte
	ProducingFederate handle.FederateHandle
}

type ReceiveInteractionCallback struct {
	InteractionClass  handle.InteractionClassHandle
	ParameterValues   map[handle.ParameterHandle][]byte
	UserTag           []byte
	TransportType     uint8
	ProducingFederate handle.FederateHandle
}

type ReflectAttributeValuesCallback struct {
	Object            handle.ObjectInstanceHandle
	AttributeValues   map[handle.AttributeHandle][]byte
	UserTag           []byte
	TransportType     uint8
	ProducingFederate handle.FederateHandle
}

// --- Callback response ---------------------------------------------------

// CallbackAck is the body of every CallbackResponse: the dispatcher's
// success bit is carried in the envelope, not the body, so this is empty.
type CallbackAck struct{}
