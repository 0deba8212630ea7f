// Package ambassador implements the host-facing façade: RtiAmbassador
// turns one method call per HLA service into build → send & wait →
// decode & cache → error-map (spec §4.6), and FederateAmbassador callback
// delivery is re-exported from pkg/callback so callers only need to
// import this one package.
package ambassador

import (
	"time"

	"github.com/pion/logging"

	"github.com/makfedpro/fedpro-go/pkg/call"
	"github.com/makfedpro/fedpro-go/pkg/callback"
	"github.com/makfedpro/fedpro-go/pkg/handle"
	"github.com/makfedpro/fedpro-go/pkg/metrics"
	"github.com/makfedpro/fedpro-go/pkg/payload"
)

// FederateAmbassador is the callback-receiving side of a federate,
// re-exported so callers implement one interface from one package.
type FederateAmbassador = callback.FederateAmbassador

// Default per-call timeouts (spec §5).
const (
	TimeoutConnect     = 30 * time.Second
	TimeoutHandleQuery = 10 * time.Second
	TimeoutUpdate      = 5 * time.Second
)

// RtiConfiguration names the RTI bridge to connect to and how (spec
// §4.6's host-facing API).
type RtiConfiguration struct {
	RTIAddressHost     string
	RTIAddressPort     uint16
	ConfigurationName  string
	AdditionalSettings string
}

// RtiAmbassador is the client-side surface through which a federate issues
// HLA calls. It owns no transport/session lifecycle of its own — an
// Engine (pkg/engine) constructs one over an already-handshaken matcher.
type RtiAmbassador struct {
	matcher    *call.Matcher
	dispatcher *callback.Dispatcher
	caches     *handle.Caches
	codec      payload.Codec
	metrics    metrics.Collector
	log        logging.LeveledLogger
}

// Config configures an RtiAmbassador.
type Config struct {
	Matcher       *call.Matcher
	Dispatcher    *callback.Dispatcher
	Caches        *handle.Caches
	Codec         payload.Codec
	Metrics       metrics.Collector
	LoggerFactory logging.LoggerFactory
}

// New creates an RtiAmbassador.
func New(config Config) *RtiAmbassador {
	a := &RtiAmbassador{
		matcher:    config.Matcher,
		dispatcher: config.Dispatcher,
		caches:     config.Caches,
		codec:      config.Codec,
		metrics:    config.Metrics,
	}
	if config.LoggerFactory != nil {
		a.log = config.LoggerFactory.NewLogger("ambassador")
	}
	return a
}

// call is the shared build→send&wait→error-map sequence every façade
// method funnels through (spec §4.6 steps 1-2, 4). Step 3 (decode &
// cache) is specific to each method and handled by its caller.
func (a *RtiAmbassador) call(req any, timeout time.Duration) (payload.Tag, any, error) {
	if a.dispatcher != nil && a.dispatcher.Dispatching() {
		return 0, nil, ErrCallNotAllowedFromWithinCallback
	}

	tag, body, err := a.codec.EncodeCallRequest(req)
	if err != nil {
		return 0, nil, err
	}

	if a.metrics != nil {
		a.metrics.CallIssued(tag)
	}

	resp, err := a.matcher.Call(tag, body, tag, timeout)
	if err != nil {
		rtiErr, isException := err.(*call.RTIExceptionError)
		if a.metrics != nil {
			switch {
			case err == call.ErrTimeout:
				a.metrics.CallFailed(tag, "timeout")
			case isException:
				a.metrics.CallFailed(tag, "exception")
			default:
				a.metrics.CallFailed(tag, "transport")
			}
		}
		if isException {
			return 0, nil, mapException(rtiErr.Name, rtiErr.Detail)
		}
		return 0, nil, err
	}
	if a.metrics != nil {
		a.metrics.CallSucceeded(tag)
	}

	decoded, err := a.codec.DecodeCallResponse(resp.Tag, resp.Body)
	if err != nil {
		return 0, nil, err
	}
	return payload.Tag(tag), decoded, nil
}

// Connect establishes the RTI bridge's own "connect" handshake, distinct
// from the session-level NewSession handshake pkg/session performs.
func (a *RtiAmbassador) Connect(config RtiConfiguration) (payload.ConfigurationResult, error) {
	_, decoded, err := a.call(payload.ConnectRequest{
		RTIAddressHost:     config.RTIAddressHost,
		RTIAddressPort:     config.RTIAddressPort,
		ConfigurationName:  config.ConfigurationName,
		AdditionalSettings: config.AdditionalSettings,
	}, TimeoutConnect)
	if err != nil {
		return payload.ConfigurationResult{}, err
	}
	return decoded.(payload.ConfigurationResult), nil
}

func (a *RtiAmbassador) CreateFederationExecution(name string, fomModules []string) error {
	_, _, err := a.call(payload.CreateFederationExecutionRequest{FederationName: name, FOMModules: fomModules}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) DestroyFederationExecution(name string) error {
	_, _, err := a.call(payload.DestroyFederationExecutionRequest{FederationName: name}, TimeoutHandleQuery)
	return err
}

// ListFederationExecutions asks the RTI bridge to report known
// federations; the result itself arrives later as a
// reportFederationExecutions callback (spec §4.6), not as this call's
// return value.
func (a *RtiAmbassador) ListFederationExecutions() error {
	_, _, err := a.call(payload.ListFederationExecutionsRequest{}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) JoinFederationExecution(federateName, federateType, federationName string, fomModules []string) (handle.FederateHandle, error) {
	_, decoded, err := a.call(payload.JoinFederationExecutionRequest{
		FederateName:   federateName,
		FederateType:   federateType,
		FederationName: federationName,
		FOMModules:     fomModules,
	}, TimeoutHandleQuery)
	if err != nil {
		return handle.FederateHandle{}, err
	}
	return handle.NewFederateHandle(decoded.(payload.HandleResult).Handle), nil
}

func (a *RtiAmbassador) ResignFederationExecution(action payload.ResignAction) error {
	_, _, err := a.call(payload.ResignFederationExecutionRequest{Action: action}, TimeoutHandleQuery)
	return err
}

// GetObjectClassHandle resolves name to a handle, consulting the cache
// first so a repeat lookup costs no network round trip (spec §4.7).
func (a *RtiAmbassador) GetObjectClassHandle(name string) (handle.ObjectClassHandle, error) {
	if h, ok := a.caches.ObjectClassHandleOf(name); ok {
		return h, nil
	}
	_, decoded, err := a.call(payload.GetObjectClassHandleRequest{Name: name}, TimeoutHandleQuery)
	if err != nil {
		return handle.ObjectClassHandle{}, err
	}
	h := handle.NewObjectClassHandle(decoded.(payload.HandleResult).Handle)
	a.caches.PutObjectClass(name, h)
	return h, nil
}

func (a *RtiAmbassador) GetAttributeHandle(class handle.ObjectClassHandle, name string) (handle.AttributeHandle, error) {
	if h, ok := a.caches.AttributeHandleOf(class, name); ok {
		return h, nil
	}
	_, decoded, err := a.call(payload.GetAttributeHandleRequest{Class: class, Name: name}, TimeoutHandleQuery)
	if err != nil {
		return handle.AttributeHandle{}, err
	}
	h := handle.NewAttributeHandle(decoded.(payload.HandleResult).Handle)
	a.caches.PutAttribute(class, name, h)
	return h, nil
}

func (a *RtiAmbassador) GetInteractionClassHandle(name string) (handle.InteractionClassHandle, error) {
	if h, ok := a.caches.InteractionClassHandleOf(name); ok {
		return h, nil
	}
	_, decoded, err := a.call(payload.GetInteractionClassHandleRequest{Name: name}, TimeoutHandleQuery)
	if err != nil {
		return handle.InteractionClassHandle{}, err
	}
	h := handle.NewInteractionClassHandle(decoded.(payload.HandleResult).Handle)
	a.caches.PutInteractionClass(name, h)
	return h, nil
}

func (a *RtiAmbassador) GetParameterHandle(interactionClass handle.InteractionClassHandle, name string) (handle.ParameterHandle, error) {
	if h, ok := a.caches.ParameterHandleOf(interactionClass, name); ok {
		return h, nil
	}
	_, decoded, err := a.call(payload.GetParameterHandleRequest{InteractionClass: interactionClass, Name: name}, TimeoutHandleQuery)
	if err != nil {
		return handle.ParameterHandle{}, err
	}
	h := handle.NewParameterHandle(decoded.(payload.HandleResult).Handle)
	a.caches.PutParameter(interactionClass, name, h)
	return h, nil
}

func (a *RtiAmbassador) PublishObjectClassAttributes(class handle.ObjectClassHandle, attrs []handle.AttributeHandle) error {
	_, _, err := a.call(payload.PublishObjectClassAttributesRequest{Class: class, Attributes: attrs}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) UnpublishObjectClassAttributes(class handle.ObjectClassHandle, attrs []handle.AttributeHandle) error {
	_, _, err := a.call(payload.UnpublishObjectClassAttributesRequest{Class: class, Attributes: attrs}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) PublishInteractionClass(ic handle.InteractionClassHandle) error {
	_, _, err := a.call(payload.PublishInteractionClassRequest{InteractionClass: ic}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) UnpublishInteractionClass(ic handle.InteractionClassHandle) error {
	_, _, err := a.call(payload.UnpublishInteractionClassRequest{InteractionClass: ic}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) SubscribeObjectClassAttributes(class handle.ObjectClassHandle, attrs []handle.AttributeHandle, active bool) error {
	_, _, err := a.call(payload.SubscribeObjectClassAttributesRequest{Class: class, Attributes: attrs, Active: active}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) UnsubscribeObjectClassAttributes(class handle.ObjectClassHandle, attrs []handle.AttributeHandle) error {
	_, _, err := a.call(payload.UnsubscribeObjectClassAttributesRequest{Class: class, Attributes: attrs}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) SubscribeInteractionClass(ic handle.InteractionClassHandle) error {
	_, _, err := a.call(payload.SubscribeInteractionClassRequest{InteractionClass: ic}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) UnsubscribeInteractionClass(ic handle.InteractionClassHandle) error {
	_, _, err := a.call(payload.UnsubscribeInteractionClassRequest{InteractionClass: ic}, TimeoutHandleQuery)
	return err
}

// ReserveObjectInstanceName returns as soon as the synchronous ack
// arrives; the actual outcome follows later as an
// objectInstanceNameReservationSucceeded/Failed callback (spec §4.6).
func (a *RtiAmbassador) ReserveObjectInstanceName(name string) error {
	_, _, err := a.call(payload.ReserveObjectInstanceNameRequest{Name: name}, TimeoutHandleQuery)
	return err
}

// RegisterObjectInstance requires name to have already been reserved
// (this engine does not support registration without a reserved name,
// spec §4.6).
func (a *RtiAmbassador) RegisterObjectInstance(class handle.ObjectClassHandle, name string) (handle.ObjectInstanceHandle, error) {
	_, decoded, err := a.call(payload.RegisterObjectInstanceRequest{Class: class, Name: name}, TimeoutHandleQuery)
	if err != nil {
		return handle.ObjectInstanceHandle{}, err
	}
	h := handle.NewObjectInstanceHandle(decoded.(payload.HandleResult).Handle)
	a.caches.PutObjectInstance(name, h)
	return h, nil
}

func (a *RtiAmbassador) DeleteObjectInstance(object handle.ObjectInstanceHandle, userTag []byte) error {
	_, _, err := a.call(payload.DeleteObjectInstanceRequest{Object: object, UserTag: userTag}, TimeoutHandleQuery)
	return err
}

func (a *RtiAmbassador) SendInteraction(ic handle.InteractionClassHandle, parameterValues map[handle.ParameterHandle][]byte, userTag []byte) error {
	_, _, err := a.call(payload.SendInteractionRequest{InteractionClass: ic, ParameterValues: parameterValues, UserTag: userTag}, TimeoutUpdate)
	return err
}

func (a *RtiAmbassador) UpdateAttributeValues(object handle.ObjectInstanceHandle, attributeValues map[handle.AttributeHandle][]byte, userTag []byte) error {
	if len(attributeValues) == 0 {
		return ErrNoAttributesProvided
	}
	_, _, err := a.call(payload.UpdateAttributeValuesRequest{Object: object, AttributeValues: attributeValues, UserTag: userTag}, TimeoutUpdate)
	return err
}

// EvokeCallback drains queued callbacks into the FederateAmbassador
// implementation for up to maxDuration (spec §4.5).
func (a *RtiAmbassador) EvokeCallback(maxDuration time.Duration) error {
	return a.dispatcher.EvokeCallback(maxDuration)
}
