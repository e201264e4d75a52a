package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/enrollhq/signflow/internal/esign"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
	"github.com/enrollhq/signflow/internal/signature/usecase/mocks"
)

// mockBusinessMetrics records metric calls for assertions.
type mockBusinessMetrics struct {
	mock.Mock
}

func (m *mockBusinessMetrics) RecordOperation(ctx context.Context, domain, operation, status string) {
	m.Called(ctx, domain, operation, status)
}

func (m *mockBusinessMetrics) RecordDuration(
	ctx context.Context,
	domain, operation string,
	duration time.Duration,
	status string,
) {
	m.Called(ctx, domain, operation, duration, status)
}

func (m *mockBusinessMetrics) RecordWebhookEvent(ctx context.Context, eventType, outcome string) {
	m.Called(ctx, eventType, outcome)
}

func TestSignatureUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()

	t.Run("HandleEvent records the webhook outcome", func(t *testing.T) {
		next := &mocks.MockSignatureUseCase{}
		m := &mockBusinessMetrics{}
		decorated := NewSignatureUseCaseWithMetrics(next, m)

		event := &signatureDomain.InboundEvent{
			Event: signatureDomain.Event{EventType: signatureDomain.EventSignatureRequestSent},
		}
		expected := &signatureDomain.HandleResult{Outcome: signatureDomain.OutcomeProcessed}

		next.On("HandleEvent", ctx, event).Return(expected)
		m.On("RecordWebhookEvent", ctx, "signature_request_sent", "processed").Once()
		m.On("RecordDuration", ctx, "signature", "handle_event", mock.Anything, "processed").Once()

		result := decorated.HandleEvent(ctx, event)
		assert.Equal(t, expected, result)
		m.AssertExpectations(t)
	})

	t.Run("SendSignatureRequest records error status", func(t *testing.T) {
		next := &mocks.MockSignatureUseCase{}
		m := &mockBusinessMetrics{}
		decorated := NewSignatureUseCaseWithMetrics(next, m)

		request := &esign.SendRequest{TemplateID: "template-1"}
		next.On("SendSignatureRequest", ctx, request).Return(nil, assertAnError())
		m.On("RecordOperation", ctx, "signature", "send_request", "error").Once()
		m.On("RecordDuration", ctx, "signature", "send_request", mock.Anything, "error").Once()

		result, err := decorated.SendSignatureRequest(ctx, request)
		require.Error(t, err)
		assert.Nil(t, result)
		m.AssertExpectations(t)
	})

	t.Run("DownloadFile records success status", func(t *testing.T) {
		next := &mocks.MockSignatureUseCase{}
		m := &mockBusinessMetrics{}
		decorated := NewSignatureUseCaseWithMetrics(next, m)

		employerID := uuid.Must(uuid.NewV7())
		fileURL := &esign.FileURL{FileURL: "https://files.example.com/SR1.pdf"}
		next.On("DownloadFile", ctx, employerID).Return(fileURL, nil)
		m.On("RecordOperation", ctx, "signature", "download_file", "success").Once()
		m.On("RecordDuration", ctx, "signature", "download_file", mock.Anything, "success").Once()

		result, err := decorated.DownloadFile(ctx, employerID)
		require.NoError(t, err)
		assert.Equal(t, fileURL, result)
		m.AssertExpectations(t)
	})
}

func assertAnError() error {
	return &esign.ProviderError{StatusCode: 500, Message: "boom"}
}
