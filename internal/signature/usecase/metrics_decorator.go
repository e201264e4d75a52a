package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/esign"
	"github.com/enrollhq/signflow/internal/metrics"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

// signatureUseCaseWithMetrics decorates SignatureUseCase with metrics
// instrumentation.
type signatureUseCaseWithMetrics struct {
	next    SignatureUseCase
	metrics metrics.BusinessMetrics
}

// NewSignatureUseCaseWithMetrics wraps a SignatureUseCase with metrics recording.
func NewSignatureUseCaseWithMetrics(useCase SignatureUseCase, m metrics.BusinessMetrics) SignatureUseCase {
	return &signatureUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// HandleEvent records metrics for callback event handling.
func (s *signatureUseCaseWithMetrics) HandleEvent(
	ctx context.Context,
	event *signatureDomain.InboundEvent,
) *signatureDomain.HandleResult {
	start := time.Now()
	result := s.next.HandleEvent(ctx, event)

	s.metrics.RecordWebhookEvent(ctx, string(event.Event.EventType), string(result.Outcome))
	s.metrics.RecordDuration(ctx, "signature", "handle_event", time.Since(start), string(result.Outcome))

	return result
}

// SendSignatureRequest records metrics for signing-request creation.
func (s *signatureUseCaseWithMetrics) SendSignatureRequest(
	ctx context.Context,
	request *esign.SendRequest,
) (*esign.SignatureRequest, error) {
	start := time.Now()
	result, err := s.next.SendSignatureRequest(ctx, request)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "signature", "send_request", status)
	s.metrics.RecordDuration(ctx, "signature", "send_request", time.Since(start), status)

	return result, err
}

// DownloadFile records metrics for signed-file URL retrieval.
func (s *signatureUseCaseWithMetrics) DownloadFile(
	ctx context.Context,
	employerID uuid.UUID,
) (*esign.FileURL, error) {
	start := time.Now()
	fileURL, err := s.next.DownloadFile(ctx, employerID)

	status := "success"
	if err != nil {
		status = "error"
	}

	s.metrics.RecordOperation(ctx, "signature", "download_file", status)
	s.metrics.RecordDuration(ctx, "signature", "download_file", time.Since(start), status)

	return fileURL, err
}
