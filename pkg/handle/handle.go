// Package handle implements the newtype handle values HLA assigns to
// federation entities (object classes, attributes, interactions,
// parameters, object instances, federates), and the bidirectional
// name<->handle caches the ambassador façade consults before issuing an
// RTI call (spec §4.7).
//
// Handles are immutable byte strings; the original source modeled them as
// mutable subclasses of the host language's byte-string primitive (spec
// §9). Here each is a distinct Go type over a fixed value type so equality
// and map keys work by content, not identity.
package handle

import "fmt"

// Handle is an opaque byte-string naming an RTI-side entity.
type Handle string

// Bytes returns the handle's raw bytes.
func (h Handle) Bytes() []byte { return []byte(h) }

// IsValid reports whether the handle carries any bytes. A zero-value
// Handle is never a handle a federate holds.
func (h Handle) IsValid() bool { return len(h) > 0 }

// New constructs a Handle from raw bytes.
func New(data []byte) Handle { return Handle(data) }

// FederateHandle identifies a joined federate.
type FederateHandle struct{ Handle }

// ObjectClassHandle identifies an object class in the FOM.
type ObjectClassHandle struct{ Handle }

// AttributeHandle identifies an attribute of an object class.
type AttributeHandle struct{ Handle }

// InteractionClassHandle identifies an interaction class in the FOM.
type InteractionClassHandle struct{ Handle }

// ParameterHandle identifies a parameter of an interaction class.
type ParameterHandle struct{ Handle }

// ObjectInstanceHandle identifies a registered object instance.
type ObjectInstanceHandle struct{ Handle }

func (h FederateHandle) String() string        { return fmt.Sprintf("FederateHandle(%x)", h.Bytes()) }
func (h ObjectClassHandle) String() string      { return fmt.Sprintf("ObjectClassHandle(%x)", h.Bytes()) }
func (h AttributeHandle) String() string        { return fmt.Sprintf("AttributeHandle(%x)", h.Bytes()) }
func (h InteractionClassHandle) String() string { return fmt.Sprintf("InteractionClassHandle(%x)", h.Bytes()) }
func (h ParameterHandle) String() string        { return fmt.Sprintf("ParameterHandle(%x)", h.Bytes()) }
func (h ObjectInstanceHandle) String() string   { return fmt.Sprintf("ObjectInstanceHandle(%x)", h.Bytes()) }

func NewFederateHandle(data []byte) FederateHandle                 { return FederateHandle{New(data)} }
func NewObjectClassHandle(data []byte) ObjectClassHandle           { return ObjectClassHandle{New(data)} }
func NewAttributeHandle(data []byte) AttributeHandle               { return AttributeHandle{New(data)} }
func NewInteractionClassHandle(data []byte) InteractionClassHandle { return InteractionClassHandle{New(data)} }
func NewParameterHandle(data []byte) ParameterHandle               { return ParameterHandle{New(data)} }
func NewObjectInstanceHandle(data []byte) ObjectInstanceHandle     { return ObjectInstanceHandle{New(data)} }
