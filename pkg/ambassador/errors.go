package ambassador

import (
	"errors"
	"fmt"
)

// RTI exception sentinels (spec §7). The façade maps the `name` field of
// an EXCEPTION_DATA response onto one of these; names outside this table
// surface as *UnmappedRTIError instead of panicking or guessing.
var (
	ErrFederationExecutionAlreadyExists = errors.New("ambassador: federation execution already exists")
	ErrFederateAlreadyExecutionMember   = errors.New("ambassador: federate already execution member")
	ErrNameNotFound                     = errors.New("ambassador: name not found")
	ErrAttributeNotDefined              = errors.New("ambassador: attribute not defined")
	ErrObjectClassNotDefined            = errors.New("ambassador: object class not defined")
	ErrInteractionClassNotDefined       = errors.New("ambassador: interaction class not defined")
	ErrObjectInstanceNotKnown           = errors.New("ambassador: object instance not known")
	ErrDeletePrivilegeNotHeld           = errors.New("ambassador: delete privilege not held")
	ErrInvalidResignAction              = errors.New("ambassador: invalid resign action")
	ErrCallNotAllowedFromWithinCallback = errors.New("ambassador: call not allowed from within callback")
	ErrSaveInProgress                   = errors.New("ambassador: save in progress")
	ErrRestoreInProgress                = errors.New("ambassador: restore in progress")
	ErrRTIInternalError                 = errors.New("ambassador: rti internal error")
	ErrFederateNotExecutionMember       = errors.New("ambassador: federate not execution member")

	// ErrNoAttributesProvided is returned by UpdateAttributeValues without
	// issuing a CallRequest when handed an empty attribute map (spec §4.6).
	ErrNoAttributesProvided = errors.New("ambassador: no attributes provided")
)

var rtiExceptionsByName = map[string]error{
	"FederationExecutionAlreadyExists":  ErrFederationExecutionAlreadyExists,
	"FederateAlreadyExecutionMember":    ErrFederateAlreadyExecutionMember,
	"NameNotFound":                      ErrNameNotFound,
	"AttributeNotDefined":               ErrAttributeNotDefined,
	"ObjectClassNotDefined":             ErrObjectClassNotDefined,
	"InteractionClassNotDefined":        ErrInteractionClassNotDefined,
	"ObjectInstanceNotKnown":            ErrObjectInstanceNotKnown,
	"DeletePrivilegeNotHeld":            ErrDeletePrivilegeNotHeld,
	"InvalidResignAction":               ErrInvalidResignAction,
	"CallNotAllowedFromWithinCallback":  ErrCallNotAllowedFromWithinCallback,
	"SaveInProgress":                    ErrSaveInProgress,
	"RestoreInProgress":                 ErrRestoreInProgress,
	"RTIinternalError":                  ErrRTIInternalError,
	"FederateNotExecutionMember":        ErrFederateNotExecutionMember,
}

// UnmappedRTIError is returned for an EXCEPTION_DATA name this module does
// not recognize, so callers still see the RTI's own diagnosis instead of a
// generic failure.
type UnmappedRTIError struct {
	Name   string
	Detail string
}

func (e *UnmappedRTIError) Error() string {
	return fmt.Sprintf("ambassador: unmapped rti exception %s: %s", e.Name, e.Detail)
}

// mapException translates an RTI exception name/detail pair into a typed
// sentinel, falling back to *UnmappedRTIError.
func mapException(name, detail string) error {
	if err, ok := rtiExceptionsByName[name]; ok {
		return err
	}
	return &UnmappedRTIError{Name: name, Detail: detail}
}
