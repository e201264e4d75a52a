package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/enrollhq/signflow/internal/esign"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

// MockSignatureUseCase is a mock implementation of SignatureUseCase for
// testing HTTP handlers.
type MockSignatureUseCase struct {
	mock.Mock
}

// HandleEvent mocks the HandleEvent method of SignatureUseCase.
func (m *MockSignatureUseCase) HandleEvent(
	ctx context.Context,
	event *signatureDomain.InboundEvent,
) *signatureDomain.HandleResult {
	args := m.Called(ctx, event)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*signatureDomain.HandleResult)
}

// SendSignatureRequest mocks the SendSignatureRequest method of SignatureUseCase.
func (m *MockSignatureUseCase) SendSignatureRequest(
	ctx context.Context,
	request *esign.SendRequest,
) (*esign.SignatureRequest, error) {
	args := m.Called(ctx, request)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*esign.SignatureRequest), args.Error(1)
}

// DownloadFile mocks the DownloadFile method of SignatureUseCase.
func (m *MockSignatureUseCase) DownloadFile(
	ctx context.Context,
	employerID uuid.UUID,
) (*esign.FileURL, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*esign.FileURL), args.Error(1)
}
