// Package domain defines the quote (application) entity whose signature and
// submission workflow this service coordinates.
package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/errors"
)

// WorkflowStatus is the lifecycle status of a quote's enrollment application.
type WorkflowStatus string

// Workflow statuses in forward order. Event handling never moves a quote
// backward through this ordering.
const (
	StatusDraft              WorkflowStatus = "DRAFT"
	StatusAwaitingSignatures WorkflowStatus = "AWAITING_SIGNATURES"
	StatusAllSigned          WorkflowStatus = "ALL_SIGNED"
	StatusSubmitted          WorkflowStatus = "SUBMITTED"
	StatusProcessed          WorkflowStatus = "PROCESSED"
)

// Rank returns the position of the status in the forward workflow ordering.
// SUBMITTED and PROCESSED are terminal branches of the same step.
func (s WorkflowStatus) Rank() int {
	switch s {
	case StatusDraft:
		return 0
	case StatusAwaitingSignatures:
		return 1
	case StatusAllSigned:
		return 2
	case StatusSubmitted, StatusProcessed:
		return 3
	default:
		return 0
	}
}

// Quote represents an insurance enrollment application.
type Quote struct {
	ID                             uuid.UUID
	EmployerID                     *uuid.UUID
	Status                         WorkflowStatus
	SignatureRequestID             *string
	TransmissionGUID               *string
	MasterApplicationSignatureDate *string
	CorrespondentFirstName         *string
	CorrespondentLastName          *string
	CreatedAt                      time.Time
	UpdatedAt                      time.Time
}

// IsRequote reports whether the quote has already been through a submission
// cycle: a transmission GUID was assigned or the status already reached SUBMITTED.
func (q *Quote) IsRequote() bool {
	return q.TransmissionGUID != nil || q.Status == StatusSubmitted
}

// QuoteUpdate carries a partial update of quote fields. Nil fields are left
// untouched by the repository.
type QuoteUpdate struct {
	Status                         *WorkflowStatus
	SignatureRequestID             *string
	TransmissionGUID               *string
	MasterApplicationSignatureDate *string
}

// Domain-specific errors for quote operations.
var (
	// ErrQuoteNotFound indicates the requested quote does not exist.
	ErrQuoteNotFound = errors.Wrap(errors.ErrNotFound, "quote not found")

	// ErrSignatureRequestMissing indicates the quote has no open signing request.
	ErrSignatureRequestMissing = errors.Wrap(errors.ErrNotFound, "quote has no signature request")
)
