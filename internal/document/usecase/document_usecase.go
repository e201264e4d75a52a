// Package usecase implements employer document business logic.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	documentDomain "github.com/enrollhq/signflow/internal/document/domain"
	apperrors "github.com/enrollhq/signflow/internal/errors"
)

// UseCase defines document business logic operations.
type UseCase interface {
	// AddBenefitInformationToEmployerDocuments attaches the quote's benefit
	// information to the employer's document list.
	AddBenefitInformationToEmployerDocuments(ctx context.Context, employerID, quoteID uuid.UUID) error
}

// DocumentRepository defines document repository operations.
type DocumentRepository interface {
	Create(ctx context.Context, document *documentDomain.Document) error
}

// DocumentUseCase handles document-related business logic.
type DocumentUseCase struct {
	documentRepo DocumentRepository
	logger       *slog.Logger
}

// NewDocumentUseCase creates a new DocumentUseCase.
func NewDocumentUseCase(documentRepo DocumentRepository, logger *slog.Logger) *DocumentUseCase {
	return &DocumentUseCase{
		documentRepo: documentRepo,
		logger:       logger,
	}
}

// AddBenefitInformationToEmployerDocuments attaches the quote's benefit
// information to the employer's document list.
func (uc *DocumentUseCase) AddBenefitInformationToEmployerDocuments(
	ctx context.Context,
	employerID, quoteID uuid.UUID,
) error {
	document := &documentDomain.Document{
		ID:         uuid.Must(uuid.NewV7()),
		EmployerID: employerID,
		QuoteID:    &quoteID,
		Category:   documentDomain.CategoryBenefitInformation,
		CreatedAt:  time.Now().UTC(),
	}

	if err := uc.documentRepo.Create(ctx, document); err != nil {
		return apperrors.Wrap(err, "failed to add benefit information document")
	}

	uc.logger.Info("benefit information added to employer documents",
		slog.String("employer_id", employerID.String()),
		slog.String("quote_id", quoteID.String()),
	)

	return nil
}
