package domain

import (
	"github.com/google/uuid"

	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
)

// RuntimeConfig carries the deployment flags the status machine branches on.
// It is passed explicitly so the decision logic stays a pure function.
type RuntimeConfig struct {
	IsProduction   bool
	VerboseLogging bool
}

// EffectKind identifies the action a workflow effect performs.
type EffectKind int

// Effect kinds, in the order a single event may produce them.
const (
	// EffectSetAwaitingSignatures persists the signature request id and moves
	// the quote to AWAITING_SIGNATURES.
	EffectSetAwaitingSignatures EffectKind = iota
	// EffectSetSignatureDate persists the plan-holder's signature date.
	EffectSetSignatureDate
	// EffectSetAllSigned moves the quote to ALL_SIGNED.
	EffectSetAllSigned
	// EffectAddBenefitDocuments attaches the quote's benefit information to
	// the employer's documents.
	EffectAddBenefitDocuments
	// EffectSubmitToCarrier transmits the application to the external carrier.
	// Its failure is absorbed and aborts the remaining effects of the event.
	EffectSubmitToCarrier
	// EffectRecordSubmission appends a submission-history entry and links it
	// to the quote's current rate, as one transaction.
	EffectRecordSubmission
	// EffectSetSubmitted moves the quote to SUBMITTED.
	EffectSetSubmitted
	// EffectSetProcessed moves the quote to PROCESSED and assigns a freshly
	// generated transmission GUID, used when carrier submission was bypassed.
	EffectSetProcessed
	// EffectLogInfo and EffectLogError emit a log line and nothing else.
	EffectLogInfo
	EffectLogError
)

// Effect is one ordered side effect decided by the status machine. Only the
// fields relevant to the kind are set.
type Effect struct {
	Kind               EffectKind
	Status             quoteDomain.WorkflowStatus
	SignatureRequestID string
	SignatureDate      string
	EmployerID         uuid.UUID
	IsResubmission     bool
	Message            string
}

// Outcome classifies how an inbound event was handled, for metrics and the
// transport response.
type Outcome string

// Handling outcomes.
const (
	OutcomeProcessed Outcome = "processed"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeRejected  Outcome = "rejected"
)

// HandleResult is the outcome of handling one inbound event.
type HandleResult struct {
	Outcome  Outcome
	Messages []string
}
