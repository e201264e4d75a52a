package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/enrollhq/signflow/internal/carrier"
	"github.com/enrollhq/signflow/internal/esign"
	submissionDomain "github.com/enrollhq/signflow/internal/submission/domain"
)

// MockSubmissionHistoryRepository is a mock implementation of
// SubmissionHistoryRepository for testing.
type MockSubmissionHistoryRepository struct {
	mock.Mock
}

// Insert mocks the Insert method of SubmissionHistoryRepository.
func (m *MockSubmissionHistoryRepository) Insert(
	ctx context.Context,
	quoteID uuid.UUID,
	isResubmission bool,
) (*submissionDomain.HistoryEntry, error) {
	args := m.Called(ctx, quoteID, isResubmission)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*submissionDomain.HistoryEntry), args.Error(1)
}

// MockRateRepository is a mock implementation of RateRepository for testing.
type MockRateRepository struct {
	mock.Mock
}

// LinkSubmissionHistory mocks the LinkSubmissionHistory method of RateRepository.
func (m *MockRateRepository) LinkSubmissionHistory(ctx context.Context, historyEntryID, quoteID uuid.UUID) error {
	args := m.Called(ctx, historyEntryID, quoteID)
	return args.Error(0)
}

// MockDocumentUseCase is a mock implementation of DocumentUseCase for testing.
type MockDocumentUseCase struct {
	mock.Mock
}

// AddBenefitInformationToEmployerDocuments mocks the corresponding method of
// DocumentUseCase.
func (m *MockDocumentUseCase) AddBenefitInformationToEmployerDocuments(
	ctx context.Context,
	employerID, quoteID uuid.UUID,
) error {
	args := m.Called(ctx, employerID, quoteID)
	return args.Error(0)
}

// MockCarrierSubmitter is a mock implementation of CarrierSubmitter for testing.
type MockCarrierSubmitter struct {
	mock.Mock
}

// Submit mocks the Submit method of CarrierSubmitter.
func (m *MockCarrierSubmitter) Submit(ctx context.Context, quoteID uuid.UUID) (*carrier.SubmissionResult, error) {
	args := m.Called(ctx, quoteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*carrier.SubmissionResult), args.Error(1)
}

// MockESignProvider is a mock implementation of ESignProvider for testing.
type MockESignProvider struct {
	mock.Mock
}

// SendWithTemplate mocks the SendWithTemplate method of ESignProvider.
func (m *MockESignProvider) SendWithTemplate(
	ctx context.Context,
	request *esign.SendRequest,
) (*esign.SignatureRequest, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*esign.SignatureRequest), args.Error(1)
}

// GetFileURL mocks the GetFileURL method of ESignProvider.
func (m *MockESignProvider) GetFileURL(ctx context.Context, signatureRequestID string) (*esign.FileURL, error) {
	args := m.Called(ctx, signatureRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*esign.FileURL), args.Error(1)
}
