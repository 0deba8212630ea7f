// Package tlvcodec is the reference implementation of payload.Codec built
// on pkg/tlv. It is grounded on the teacher's own TLV engine (adapted
// from Matter's data-model tag space to FedPro's call/callback variant
// tags, see DESIGN.md) and gives every ambassador façade method and
// callback variant a concrete wire encoding to exercise in tests.
package tlvcodec

import (
	"bytes"

	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/payload"
	"github.com/makfedpro/fedpro-go/pkg/tlv"
)

// Codec implements payload.Codec over pkg/tlv. It is stateless and safe
// for concurrent use (though the engine itself never calls it
// concurrently, spec §5).
type Codec struct{}

// New creates a TLV-backed Codec.
func New() *Codec { return &Codec{} }

// Context tags used for struct fields below. Each request/response/
// callback variant defines its own small tag space starting at 0; tags
// never need to be globally unique because each is only ever read back
// inside its own variant's structure.
const (
	f0 = iota
	f1
	f2
	f3
	f4
)

func ctx(n int) tlv.Tag { return tlv.ContextTag(uint8(n)) }

// EncodeCallRequest implements payload.Codec.
func (c *Codec) EncodeCallRequest(req any) (uint32, []byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	var tag payload.Tag

	switch r := req.(type) {
	case payload.ConnectRequest:
		tag = payload.TagConnect
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.RTIAddressHost))
		must(w.PutUint(ctx(f1), uint64(r.RTIAddressPort)))
		must(w.PutString(ctx(f2), r.ConfigurationName))
		must(w.PutString(ctx(f3), r.AdditionalSettings))
		must(w.EndContainer())

	case payload.CreateFederationExecutionRequest:
		tag = payload.TagCreateFederationExecution
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.FederationName))
		must(writeStringSlice(w, ctx(f1), r.FOMModules))
		must(w.EndContainer())

	case payload.DestroyFederationExecutionRequest:
		tag = payload.TagDestroyFederationExecution
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.FederationName))
		must(w.EndContainer())

	case payload.ListFederationExecutionsRequest:
		tag = payload.TagListFederationExecutions
		must(w.StartStructure(tlv.Anonymous()))
		must(w.EndContainer())

	case payload.JoinFederationExecutionRequest:
		tag = payload.TagJoinFederationExecution
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.FederateName))
		must(w.PutString(ctx(f1), r.FederateType))
		must(w.PutString(ctx(f2), r.FederationName))
		must(writeStringSlice(w, ctx(f3), r.FOMModules))
		must(w.EndContainer())

	case payload.ResignFederationExecutionRequest:
		tag = payload.TagResignFederationExecution
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutInt(ctx(f0), int64(r.Action)))
		must(w.EndContainer())

	case payload.GetObjectClassHandleRequest:
		tag = payload.TagGetObjectClassHandle
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Name))
		must(w.EndContainer())

	case payload.GetAttributeHandleRequest:
		tag = payload.TagGetAttributeHandle
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Class.Bytes()))
		must(w.PutString(ctx(f1), r.Name))
		must(w.EndContainer())

	case payload.GetInteractionClassHandleRequest:
		tag = payload.TagGetInteractionClassHandle
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Name))
		must(w.EndContainer())

	case payload.GetParameterHandleRequest:
		tag = payload.TagGetParameterHandle
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(w.PutString(ctx(f1), r.Name))
		must(w.EndContainer())

	case payload.PublishObjectClassAttributesRequest:
		tag = payload.TagPublishObjectClassAttributes
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Class.Bytes()))
		must(writeHandleSlice(w, ctx(f1), attributeHandlesToBytes(r.Attributes)))
		must(w.EndContainer())

	case payload.UnpublishObjectClassAttributesRequest:
		tag = payload.TagUnpublishObjectClassAttributes
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Class.Bytes()))
		must(writeHandleSlice(w, ctx(f1), attributeHandlesToBytes(r.Attributes)))
		must(w.EndContainer())

	case payload.PublishInteractionClassRequest:
		tag = payload.TagPublishInteractionClass
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(w.EndContainer())

	case payload.UnpublishInteractionClassRequest:
		tag = payload.TagUnpublishInteractionClass
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(w.EndContainer())

	case payload.SubscribeObjectClassAttributesRequest:
		tag = payload.TagSubscribeObjectClassAttributes
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Class.Bytes()))
		must(writeHandleSlice(w, ctx(f1), attributeHandlesToBytes(r.Attributes)))
		must(w.PutBool(ctx(f2), r.Active))
		must(w.EndContainer())

	case payload.UnsubscribeObjectClassAttributesRequest:
		tag = payload.TagUnsubscribeObjectClassAttributes
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Class.Bytes()))
		must(writeHandleSlice(w, ctx(f1), attributeHandlesToBytes(r.Attributes)))
		must(w.EndContainer())

	case payload.SubscribeInteractionClassRequest:
		tag = payload.TagSubscribeInteractionClass
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(w.EndContainer())

	case payload.UnsubscribeInteractionClassRequest:
		tag = payload.TagUnsubscribeInteractionClass
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(w.EndContainer())

	case payload.ReserveObjectInstanceNameRequest:
		tag = payload.TagReserveObjectInstanceName
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Name))
		must(w.EndContainer())

	case payload.RegisterObjectInstanceRequest:
		tag = payload.TagRegisterObjectInstance
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Class.Bytes()))
		must(w.PutString(ctx(f1), r.Name))
		must(w.EndContainer())

	case payload.DeleteObjectInstanceRequest:
		tag = payload.TagDeleteObjectInstance
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Object.Bytes()))
		must(w.PutBytes(ctx(f1), r.UserTag))
		must(w.EndContainer())

	case payload.SendInteractionRequest:
		tag = payload.TagSendInteraction
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(writeParameterMap(w, ctx(f1), r.ParameterValues))
		must(w.PutBytes(ctx(f2), r.UserTag))
		must(w.EndContainer())

	case payload.UpdateAttributeValuesRequest:
		tag = payload.TagUpdateAttributeValues
		if len(r.AttributeValues) == 0 {
			return 0, nil, payload.ErrNoAttributesProvided
		}
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Object.Bytes()))
		must(writeAttributeMap(w, ctx(f1), r.AttributeValues))
		must(w.PutBytes(ctx(f2), r.UserTag))
		must(w.EndContainer())

	default:
		return 0, nil, payload.ErrUnknownVariant
	}

	return uint32(tag), buf.Bytes(), nil
}

// DecodeCallResponse implements payload.Codec.
func (c *Codec) DecodeCallResponse(tag uint32, body []byte) (any, error) {
	r := tlv.NewReader(bytes.NewReader(body))
	switch payload.Tag(tag) {
	case payload.TagConnect:
		enter(r)
		result := payload.ConfigurationResult{}
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				result.AddressUsed = mustString(r)
			case f1:
				result.ConfigurationUsed = mustString(r)
			case f2:
				v, err := r.Int()
				if err != nil {
					return nil, err
				}
				result.AdditionalSettingsResult = payload.AdditionalSettingsResult(v)
			case f3:
				result.Message = mustString(r)
			}
		}
		return result, nil

	case payload.TagGetObjectClassHandle, payload.TagGetAttributeHandle,
		payload.TagGetInteractionClassHandle, payload.TagGetParameterHandle,
		payload.TagJoinFederationExecution, payload.TagRegisterObjectInstance:
		enter(r)
		result := payload.HandleResult{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				result.Handle = mustBytes(r)
			}
		}
		return result, nil

	default:
		// Every other call returns no data (spec §4.6's "() -> ()"
		// services): create_federation_execution, destroy_*, resign_*,
		// publish/unpublish/subscribe/unsubscribe, reserve, delete,
		// send_interaction, update_attribute_values, list_*.
		return payload.EmptyResult{}, nil
	}
}

// DecodeException implements payload.Codec.
func (c *Codec) DecodeException(body []byte) (string, string, error) {
	r := tlv.NewReader(bytes.NewReader(body))
	enter(r)
	var name, detail string
	for next(r) {
		switch r.Tag().TagNumber() {
		case f0:
			name = mustString(r)
		case f1:
			detail = mustString(r)
		}
	}
	return name, detail, nil
}

// EncodeCallbackRequest implements payload.Codec.
func (c *Codec) EncodeCallbackRequest(req any) (uint32, []byte, error) {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	var tag payload.Tag

	switch r := req.(type) {
	case payload.ConnectionLostCallback:
		tag = payload.TagConnectionLost
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Fault))
		must(w.EndContainer())

	case payload.ReportFederationExecutionsCallback:
		tag = payload.TagReportFederationExecutions
		must(w.StartStructure(tlv.Anonymous()))
		must(writeStringSlice(w, ctx(f0), r.FederationNames))
		must(w.EndContainer())

	case payload.ReportFederationExecutionMembersCallback:
		tag = payload.TagReportFederationExecutionMembers
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.FederationName))
		must(writeStringSlice(w, ctx(f1), r.FederateNames))
		must(w.EndContainer())

	case payload.ReportFederationExecutionDoesNotExistCallback:
		tag = payload.TagReportFederationExecutionDoesNotExist
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.FederationName))
		must(w.EndContainer())

	case payload.FederateResignedCallback:
		tag = payload.TagFederateResigned
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Reason))
		must(w.EndContainer())

	case payload.ObjectInstanceNameReservationSucceededCallback:
		tag = payload.TagObjectInstanceNameReservationSucceeded
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Name))
		must(w.EndContainer())

	case payload.ObjectInstanceNameReservationFailedCallback:
		tag = payload.TagObjectInstanceNameReservationFailed
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutString(ctx(f0), r.Name))
		must(w.EndContainer())

	case payload.DiscoverObjectInstanceCallback:
		tag = payload.TagDiscoverObjectInstance
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Object.Bytes()))
		must(w.PutBytes(ctx(f1), r.Class.Bytes()))
		must(w.PutString(ctx(f2), r.Name))
		must(w.PutBytes(ctx(f3), r.ProducingFederate.Bytes()))
		must(w.EndContainer())

	case payload.RemoveObjectInstanceCallback:
		tag = payload.TagRemoveObjectInstance
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Object.Bytes()))
		must(w.PutBytes(ctx(f1), r.UserTag))
		must(w.PutBytes(ctx(f2), r.ProducingFederate.Bytes()))
		must(w.EndContainer())

	case payload.ReceiveInteractionCallback:
		tag = payload.TagReceiveInteraction
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.InteractionClass.Bytes()))
		must(writeParameterMap(w, ctx(f1), r.ParameterValues))
		must(w.PutBytes(ctx(f2), r.UserTag))
		must(w.PutUint(ctx(f3), uint64(r.TransportType)))
		must(w.PutBytes(ctx(f4), r.ProducingFederate.Bytes()))
		must(w.EndContainer())

	case payload.ReflectAttributeValuesCallback:
		tag = payload.TagReflectAttributeValues
		must(w.StartStructure(tlv.Anonymous()))
		must(w.PutBytes(ctx(f0), r.Object.Bytes()))
		must(writeAttributeMap(w, ctx(f1), r.AttributeValues))
		must(w.PutBytes(ctx(f2), r.UserTag))
		must(w.PutUint(ctx(f3), uint64(r.TransportType)))
		must(w.PutBytes(ctx(f4), r.ProducingFederate.Bytes()))
		must(w.EndContainer())

	default:
		return 0, nil, payload.ErrUnknownVariant
	}

	return uint32(tag), buf.Bytes(), nil
}

// DecodeCallbackRequest implements payload.Codec.
func (c *Codec) DecodeCallbackRequest(tag uint32, body []byte) (any, error) {
	r := tlv.NewReader(bytes.NewReader(body))
	switch payload.Tag(tag) {
	case payload.TagConnectionLost:
		enter(r)
		out := payload.ConnectionLostCallback{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				out.Fault = mustString(r)
			}
		}
		return out, nil

	case payload.TagReportFederationExecutions:
		enter(r)
		out := payload.ReportFederationExecutionsCallback{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				out.FederationNames = mustStringSlice(r)
			}
		}
		return out, nil

	case payload.TagReportFederationExecutionMembers:
		enter(r)
		out := payload.ReportFederationExecutionMembersCallback{}
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				out.FederationName = mustString(r)
			case f1:
				out.FederateNames = mustStringSlice(r)
			}
		}
		return out, nil

	case payload.TagReportFederationExecutionDoesNotExist:
		enter(r)
		out := payload.ReportFederationExecutionDoesNotExistCallback{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				out.FederationName = mustString(r)
			}
		}
		return out, nil

	case payload.TagFederateResigned:
		enter(r)
		out := payload.FederateResignedCallback{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				out.Reason = mustString(r)
			}
		}
		return out, nil

	case payload.TagObjectInstanceNameReservationSucceeded:
		enter(r)
		out := payload.ObjectInstanceNameReservationSucceededCallback{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				out.Name = mustString(r)
			}
		}
		return out, nil

	case payload.TagObjectInstanceNameReservationFailed:
		enter(r)
		out := payload.ObjectInstanceNameReservationFailedCallback{}
		for next(r) {
			if r.Tag().TagNumber() == f0 {
				out.Name = mustString(r)
			}
		}
		return out, nil

	case payload.TagDiscoverObjectInstance:
		enter(r)
		out := payload.DiscoverObjectInstanceCallback{}
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				out.Object = handle.NewObjectInstanceHandle(mustBytes(r))
			case f1:
				out.Class = handle.NewObjectClassHandle(mustBytes(r))
			case f2:
				out.Name = mustString(r)
			case f3:
				out.ProducingFederate = handle.NewFederateHandle(mustBytes(r))
			}
		}
		return out, nil

	case payload.TagRemoveObjectInstance:
		enter(r)
		out := payload.RemoveObjectInstanceCallback{}
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				out.Object = handle.NewObjectInstanceHandle(mustBytes(r))
			case f1:
				out.UserTag = mustBytes(r)
			case f2:
				out.ProducingFederate = handle.NewFederateHandle(mustBytes(r))
			}
		}
		return out, nil

	case payload.TagReceiveInteraction:
		enter(r)
		out := payload.ReceiveInteractionCallback{}
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				out.InteractionClass = handle.NewInteractionClassHandle(mustBytes(r))
			case f1:
				out.ParameterValues = mustParameterMap(r)
			case f2:
				out.UserTag = mustBytes(r)
			case f3:
				v, _ := r.Uint()
				out.TransportType = uint8(v)
			case f4:
				out.ProducingFederate = handle.NewFederateHandle(mustBytes(r))
			}
		}
		return out, nil

	case payload.TagReflectAttributeValues:
		enter(r)
		out := payload.ReflectAttributeValuesCallback{}
		for next(r) {
			switch r.Tag().TagNumber() {
			case f0:
				out.Object = handle.NewObjectInstanceHandle(mustBytes(r))
			case f1:
				out.AttributeValues = mustAttributeMap(r)
			case f2:
				out.UserTag = mustBytes(r)
			case f3:
				v, _ := r.Uint()
				out.TransportType = uint8(v)
			case f4:
				out.ProducingFederate = handle.NewFederateHandle(mustBytes(r))
			}
		}
		return out, nil

	default:
		return nil, payload.ErrUnknownVariant
	}
}
