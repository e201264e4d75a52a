// Package usecase implements the signature-workflow status coordinator: event
// authentication, the pure transition decision, and the side-effect dispatch
// against the collaborating stores and clients.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/carrier"
	"github.com/enrollhq/signflow/internal/esign"
	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
	submissionDomain "github.com/enrollhq/signflow/internal/submission/domain"
)

// QuoteRepository defines the quote persistence operations the workflow uses.
type QuoteRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*quoteDomain.Quote, error)
	GetByEmployerID(ctx context.Context, employerID uuid.UUID) (*quoteDomain.Quote, error)
	Update(ctx context.Context, id uuid.UUID, update quoteDomain.QuoteUpdate) error
}

// SubmissionHistoryRepository defines submission-history persistence operations.
type SubmissionHistoryRepository interface {
	Insert(ctx context.Context, quoteID uuid.UUID, isResubmission bool) (*submissionDomain.HistoryEntry, error)
}

// RateRepository defines the rate-linkage operation.
type RateRepository interface {
	LinkSubmissionHistory(ctx context.Context, historyEntryID, quoteID uuid.UUID) error
}

// DocumentUseCase defines the employer-document operation triggered when all
// parties have signed.
type DocumentUseCase interface {
	AddBenefitInformationToEmployerDocuments(ctx context.Context, employerID, quoteID uuid.UUID) error
}

// CarrierSubmitter transmits a fully signed application to the carrier.
type CarrierSubmitter interface {
	Submit(ctx context.Context, quoteID uuid.UUID) (*carrier.SubmissionResult, error)
}

// ESignProvider defines the e-signature provider operations the service exposes.
type ESignProvider interface {
	SendWithTemplate(ctx context.Context, request *esign.SendRequest) (*esign.SignatureRequest, error)
	GetFileURL(ctx context.Context, signatureRequestID string) (*esign.FileURL, error)
}

// SignatureUseCase defines the signature-workflow business logic.
type SignatureUseCase interface {
	// HandleEvent authenticates and processes one provider callback event.
	// Business-logic failures are absorbed into the result's message list; the
	// returned outcome classifies how the event was handled.
	HandleEvent(ctx context.Context, event *signatureDomain.InboundEvent) *signatureDomain.HandleResult
	// SendSignatureRequest creates a template-based signing request and emails
	// the signers.
	SendSignatureRequest(ctx context.Context, request *esign.SendRequest) (*esign.SignatureRequest, error)
	// DownloadFile returns a short-lived URL for the employer's signed
	// application PDF.
	DownloadFile(ctx context.Context, employerID uuid.UUID) (*esign.FileURL, error)
}
