package tlvcodec

import (
	"bytes"
	"testing"

	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/payload"
	"github.com/makfedpro/fedpro-go/pkg/tlv"
)

func TestConnectRequestRoundTrip(t *testing.T) {
	c := New()
	req := payload.ConnectRequest{
		RTIAddressHost:     "rti.example.org",
		RTIAddressPort:     8989,
		ConfigurationName:  "default",
		AdditionalSettings: "crcHost=1.2.3.4",
	}

	tag, _, err := c.EncodeCallRequest(req)
	if err != nil {
		t.Fatalf("EncodeCallRequest: %v", err)
	}
	if tag != uint32(payload.TagConnect) {
		t.Fatalf("tag = %d, want %d", tag, payload.TagConnect)
	}

	resp, err := c.DecodeCallResponse(tag, connectResponseFixture(t))
	if err != nil {
		t.Fatalf("DecodeCallResponse: %v", err)
	}
	result, ok := resp.(payload.ConfigurationResult)
	if !ok {
		t.Fatalf("resp type = %T, want payload.ConfigurationResult", resp)
	}
	if result.AddressUsed != "rti.example.org:8989" {
		t.Fatalf("AddressUsed = %q", result.AddressUsed)
	}
	if result.AdditionalSettingsResult != payload.SettingsApplied {
		t.Fatalf("AdditionalSettingsResult = %v, want SettingsApplied", result.AdditionalSettingsResult)
	}
}

// connectResponseFixture builds a ConfigurationResult body the way an RTI
// bridge would reply to Connect, using the same field tags
// DecodeCallResponse reads.
func connectResponseFixture(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	_ = w.StartStructure(tlv.Anonymous())
	_ = w.PutString(ctx(f0), "rti.example.org:8989")
	_ = w.PutString(ctx(f1), "default")
	_ = w.PutInt(ctx(f2), int64(payload.SettingsApplied))
	_ = w.PutString(ctx(f3), "")
	_ = w.EndContainer()
	return buf.Bytes()
}

func TestPublishUnpublishAreDistinguishable(t *testing.T) {
	c := New()
	class := handle.NewObjectClassHandle([]byte{0x01})
	attrs := []handle.AttributeHandle{handle.NewAttributeHandle([]byte{0x07})}

	pubTag, _, err := c.EncodeCallRequest(payload.PublishObjectClassAttributesRequest{Class: class, Attributes: attrs})
	if err != nil {
		t.Fatalf("encode publish: %v", err)
	}
	unpubTag, _, err := c.EncodeCallRequest(payload.UnpublishObjectClassAttributesRequest{Class: class, Attributes: attrs})
	if err != nil {
		t.Fatalf("encode unpublish: %v", err)
	}
	if pubTag == unpubTag {
		t.Fatalf("publish and unpublish encoded to the same tag %d", pubTag)
	}
	if pubTag != uint32(payload.TagPublishObjectClassAttributes) {
		t.Fatalf("publish tag = %d, want %d", pubTag, payload.TagPublishObjectClassAttributes)
	}
	if unpubTag != uint32(payload.TagUnpublishObjectClassAttributes) {
		t.Fatalf("unpublish tag = %d, want %d", unpubTag, payload.TagUnpublishObjectClassAttributes)
	}
}

func TestGetAttributeHandleRequestTag(t *testing.T) {
	c := New()
	req := payload.GetAttributeHandleRequest{
		Class: handle.NewObjectClassHandle([]byte{0x01}),
		Name:  "Position",
	}
	tag, _, err := c.EncodeCallRequest(req)
	if err != nil {
		t.Fatalf("EncodeCallRequest: %v", err)
	}
	if tag != uint32(payload.TagGetAttributeHandle) {
		t.Fatalf("tag = %d, want %d", tag, payload.TagGetAttributeHandle)
	}
}

func TestUpdateAttributeValuesRejectsEmptyMap(t *testing.T) {
	c := New()
	req := payload.UpdateAttributeValuesRequest{
		Object:          handle.NewObjectInstanceHandle([]byte{0x01}),
		AttributeValues: nil,
	}
	if _, _, err := c.EncodeCallRequest(req); err != payload.ErrNoAttributesProvided {
		t.Fatalf("err = %v, want ErrNoAttributesProvided", err)
	}
}

// TestReflectAttributeValuesCallbackRoundTrip exercises the scenario where
// an inbound callback carries a single reflected attribute with object
// handle 0x01, attribute handle 0x07, value [00 00 00 05], an empty
// user tag, transport type 0x02 and producing federate 0x10.
func TestReflectAttributeValuesCallbackRoundTrip(t *testing.T) {
	c := New()
	object := handle.NewObjectInstanceHandle([]byte{0x01})
	attr := handle.NewAttributeHandle([]byte{0x07})
	value := []byte{0x00, 0x00, 0x00, 0x05}
	producer := handle.NewFederateHandle([]byte{0x10})

	in := payload.ReflectAttributeValuesCallback{
		Object:            object,
		AttributeValues:   map[handle.AttributeHandle][]byte{attr: value},
		UserTag:           nil,
		TransportType:     0x02,
		ProducingFederate: producer,
	}

	tag, body, err := c.EncodeCallbackRequest(in)
	if err != nil {
		t.Fatalf("EncodeCallbackRequest: %v", err)
	}
	if tag != uint32(payload.TagReflectAttributeValues) {
		t.Fatalf("tag = %d, want %d", tag, payload.TagReflectAttributeValues)
	}

	decoded, err := c.DecodeCallbackRequest(tag, body)
	if err != nil {
		t.Fatalf("DecodeCallbackRequest: %v", err)
	}
	out, ok := decoded.(payload.ReflectAttributeValuesCallback)
	if !ok {
		t.Fatalf("decoded type = %T, want payload.ReflectAttributeValuesCallback", decoded)
	}

	if out.Object != object {
		t.Fatalf("Object = %v, want %v", out.Object, object)
	}
	if out.ProducingFederate != producer {
		t.Fatalf("ProducingFederate = %v, want %v", out.ProducingFederate, producer)
	}
	if out.TransportType != 0x02 {
		t.Fatalf("TransportType = %d, want 2", out.TransportType)
	}
	got, ok := out.AttributeValues[attr]
	if !ok {
		t.Fatalf("AttributeValues missing handle %v: %v", attr, out.AttributeValues)
	}
	if string(got) != string(value) {
		t.Fatalf("AttributeValues[attr] = % x, want % x", got, value)
	}
}

func TestDecodeExceptionRoundTrip(t *testing.T) {
	// Exceptions are encoded by the RTI bridge, not this codec, but the
	// decode side must parse the {name, detail} shape the bridge sends.
	// We build that shape using the same field tags DecodeException reads.
	c := New()
	name, detail, err := c.DecodeException(encodeExceptionFixture("FederateNotExecutionMember", "federate has not joined"))
	if err != nil {
		t.Fatalf("DecodeException: %v", err)
	}
	if name != "FederateNotExecutionMember" {
		t.Fatalf("name = %q", name)
	}
	if detail != "federate has not joined" {
		t.Fatalf("detail = %q", detail)
	}
}

func encodeExceptionFixture(name, detail string) []byte {
	var buf bytes.Buffer
	w := tlv.NewWriter(&buf)
	_ = w.StartStructure(tlv.Anonymous())
	_ = w.PutString(ctx(f0), name)
	_ = w.PutString(ctx(f1), detail)
	_ = w.EndContainer()
	return buf.Bytes()
}
