// Package domain defines the e-signature callback event envelope and the
// effects the workflow status machine produces from it.
package domain

import "fmt"

// EventType is the e-signature provider's event tag. The set is open on the
// wire; unrecognized values are handled by the default dispatch arm.
type EventType string

// Event types delivered to the callback endpoint.
const (
	EventSignatureRequestSent        EventType = "signature_request_sent"
	EventSignatureRequestSigned      EventType = "signature_request_signed"
	EventSignatureRequestAllSigned   EventType = "signature_request_all_signed"
	EventSignatureRequestRemind      EventType = "signature_request_remind"
	EventSignatureRequestDeclined    EventType = "signature_request_declined"
	EventSignatureRequestInvalid     EventType = "signature_request_invalid"
	EventFileError                   EventType = "file_error"
	EventUnknownError                EventType = "unknown_error"
	EventSignURLInvalid              EventType = "sign_url_invalid"
	EventTemplateError               EventType = "template_error"
	EventSignatureRequestEmailBounce EventType = "signature_request_email_bounce"
)

// IsFailure reports whether the event type indicates a failed or aborted
// signing flow. Failure events are logged at error level and produce no
// status transition.
func (t EventType) IsFailure() bool {
	switch t {
	case EventSignatureRequestDeclined,
		EventSignatureRequestInvalid,
		EventFileError,
		EventUnknownError,
		EventSignURLInvalid,
		EventTemplateError,
		EventSignatureRequestEmailBounce:
		return true
	default:
		return false
	}
}

// SignerRolePlanHolder identifies the signer whose signature date is recorded
// on the application.
const SignerRolePlanHolder = "plan-holder"

// Event carries the provider's event identification and authenticity fields.
type Event struct {
	EventType EventType `json:"event_type"`
	EventTime string    `json:"event_time"`
	EventHash string    `json:"event_hash"`
}

// Metadata is the caller-supplied metadata echoed back on every event for a
// signature request.
type Metadata struct {
	QuoteID string `json:"quoteId"`
}

// Signature is one signer's state within a signature request.
type Signature struct {
	SignerRole string `json:"signer_role"`
	SignedAt   *int64 `json:"signed_at"`
	StatusCode string `json:"status_code"`
}

// SignatureRequestSnapshot is the provider's view of the signature request at
// the moment the event was emitted.
type SignatureRequestSnapshot struct {
	SignatureRequestID string      `json:"signature_request_id"`
	Metadata           Metadata    `json:"metadata"`
	Signatures         []Signature `json:"signatures"`
}

// InboundEvent is the callback envelope. It is transient: constructed from
// the raw request body per delivery and discarded after handling.
type InboundEvent struct {
	Event            Event                     `json:"event"`
	SignatureRequest *SignatureRequestSnapshot `json:"signature_request"`
}

// QuoteID returns the quote id embedded in the signature request metadata, or
// empty when the envelope carries no signature request.
func (e *InboundEvent) QuoteID() string {
	if e.SignatureRequest == nil {
		return ""
	}
	return e.SignatureRequest.Metadata.QuoteID
}

// SignatureRequestID returns the provider's signature request id, or empty.
func (e *InboundEvent) SignatureRequestID() string {
	if e.SignatureRequest == nil {
		return ""
	}
	return e.SignatureRequest.SignatureRequestID
}

// GenericMessage is the first response message for every handled event.
func (e *InboundEvent) GenericMessage() string {
	return fmt.Sprintf(
		"Event type %q was sent to this callback. Associated application id: %s",
		e.Event.EventType,
		e.QuoteID(),
	)
}

// PlanHolderSignature returns the plan-holder's signature entry, or nil when
// no signer with that role is present.
func (e *InboundEvent) PlanHolderSignature() *Signature {
	if e.SignatureRequest == nil {
		return nil
	}
	for i := range e.SignatureRequest.Signatures {
		if e.SignatureRequest.Signatures[i].SignerRole == SignerRolePlanHolder {
			return &e.SignatureRequest.Signatures[i]
		}
	}
	return nil
}
