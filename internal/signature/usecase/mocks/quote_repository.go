// Package mocks provides mock implementations for testing the signature
// workflow use case and its HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
)

// MockQuoteRepository is a mock implementation of QuoteRepository for testing.
type MockQuoteRepository struct {
	mock.Mock
}

// GetByID mocks the GetByID method of QuoteRepository.
func (m *MockQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*quoteDomain.Quote, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quoteDomain.Quote), args.Error(1)
}

// GetByEmployerID mocks the GetByEmployerID method of QuoteRepository.
func (m *MockQuoteRepository) GetByEmployerID(ctx context.Context, employerID uuid.UUID) (*quoteDomain.Quote, error) {
	args := m.Called(ctx, employerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quoteDomain.Quote), args.Error(1)
}

// Update mocks the Update method of QuoteRepository.
func (m *MockQuoteRepository) Update(ctx context.Context, id uuid.UUID, update quoteDomain.QuoteUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}
