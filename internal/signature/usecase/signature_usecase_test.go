package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/enrollhq/signflow/internal/carrier"
	databaseMocks "github.com/enrollhq/signflow/internal/database/mocks"
	apperrors "github.com/enrollhq/signflow/internal/errors"
	"github.com/enrollhq/signflow/internal/esign"
	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
	"github.com/enrollhq/signflow/internal/signature/usecase/mocks"
	submissionDomain "github.com/enrollhq/signflow/internal/submission/domain"
)

const testAPIKey = "test-api-key"

type useCaseFixture struct {
	quoteRepo   *mocks.MockQuoteRepository
	historyRepo *mocks.MockSubmissionHistoryRepository
	rateRepo    *mocks.MockRateRepository
	documentUC  *mocks.MockDocumentUseCase
	carrier     *mocks.MockCarrierSubmitter
	provider    *mocks.MockESignProvider
	useCase     *SignatureWorkflowUseCase
}

func newUseCaseFixture(cfg signatureDomain.RuntimeConfig) *useCaseFixture {
	f := &useCaseFixture{
		quoteRepo:   &mocks.MockQuoteRepository{},
		historyRepo: &mocks.MockSubmissionHistoryRepository{},
		rateRepo:    &mocks.MockRateRepository{},
		documentUC:  &mocks.MockDocumentUseCase{},
		carrier:     &mocks.MockCarrierSubmitter{},
		provider:    &mocks.MockESignProvider{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	dispatcher := NewDispatcher(
		f.quoteRepo,
		f.historyRepo,
		f.rateRepo,
		f.documentUC,
		f.carrier,
		&databaseMocks.PassthroughTxManager{},
		logger,
	)
	f.useCase = NewSignatureWorkflowUseCase(
		NewAuthenticator(testAPIKey),
		dispatcher,
		f.quoteRepo,
		f.provider,
		cfg,
		logger,
	)
	return f
}

func signedEvent(eventType signatureDomain.EventType, quoteID string) *signatureDomain.InboundEvent {
	event := &signatureDomain.InboundEvent{
		Event: signatureDomain.Event{
			EventType: eventType,
			EventTime: "1700000000",
		},
		SignatureRequest: &signatureDomain.SignatureRequestSnapshot{
			SignatureRequestID: "SR1",
			Metadata:           signatureDomain.Metadata{QuoteID: quoteID},
		},
	}
	event.Event.EventHash = eventHash(testAPIKey, event.Event.EventTime, eventType)
	return event
}

func TestSignatureWorkflowUseCase_HandleEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects an unauthentic event in production", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{IsProduction: true})
		event := signedEvent(signatureDomain.EventSignatureRequestSent, uuid.Must(uuid.NewV7()).String())
		event.Event.EventHash = "0000"

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeRejected, result.Outcome)
		assert.Empty(t, result.Messages)
		f.quoteRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("accepts an unauthentic event outside production", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusDraft)
		event := signedEvent(signatureDomain.EventSignatureRequestSent, quote.ID.String())
		event.Event.EventHash = "0000"

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.Anything).Return(nil)

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
	})

	t.Run("missing quote yields not-found with messages", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quoteID := uuid.Must(uuid.NewV7())
		event := signedEvent(signatureDomain.EventSignatureRequestRemind, quoteID.String())

		f.quoteRepo.On("GetByID", ctx, quoteID).Return(nil, quoteDomain.ErrQuoteNotFound)

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeNotFound, result.Outcome)
		require.Len(t, result.Messages, 2)
		assert.Contains(t, result.Messages[0], "signature_request_remind")
		assert.Equal(t, "Could not find application with the quote id provided in metadata", result.Messages[1])
	})

	t.Run("unparseable quote id is treated as missing", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		event := signedEvent(signatureDomain.EventSignatureRequestSent, "not-a-uuid")

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeNotFound, result.Outcome)
		f.quoteRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("sent event persists signature request id and status", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusDraft)
		event := signedEvent(signatureDomain.EventSignatureRequestSent, quote.ID.String())

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			return u.Status != nil && *u.Status == quoteDomain.StatusAwaitingSignatures &&
				u.SignatureRequestID != nil && *u.SignatureRequestID == "SR1"
		})).Return(nil).Twice()

		// Replaying the same event is an idempotent overwrite.
		for range 2 {
			result := f.useCase.HandleEvent(ctx, event)
			assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
			require.Len(t, result.Messages, 2)
			assert.Contains(t, result.Messages[0], quote.ID.String())
			assert.Equal(t, fmt.Sprintf(
				"Email signature request sent. Quote id: %s. Signature request id: SR1",
				quote.ID,
			), result.Messages[1])
		}
		f.quoteRepo.AssertExpectations(t)
	})

	t.Run("signed event records the plan-holder signature date", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAwaitingSignatures)
		event := signedEvent(signatureDomain.EventSignatureRequestSigned, quote.ID.String())
		event.Event.EventHash = eventHash(testAPIKey, event.Event.EventTime, event.Event.EventType)
		event.SignatureRequest.Signatures = []signatureDomain.Signature{
			{SignerRole: signatureDomain.SignerRolePlanHolder, SignedAt: int64Ptr(1700000000)},
		}

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			return u.Status == nil &&
				u.MasterApplicationSignatureDate != nil &&
				*u.MasterApplicationSignatureDate == "11/14/2023"
		})).Return(nil)

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
		f.quoteRepo.AssertExpectations(t)
	})

	t.Run("all signed first-time submission succeeds", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAwaitingSignatures)
		event := signedEvent(signatureDomain.EventSignatureRequestAllSigned, quote.ID.String())
		entry := &submissionDomain.HistoryEntry{ID: uuid.Must(uuid.NewV7()), QuoteID: quote.ID}

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			return u.Status != nil && *u.Status == quoteDomain.StatusAllSigned
		})).Return(nil).Once()
		f.carrier.On("Submit", ctx, quote.ID).
			Return(&carrier.SubmissionResult{TransmissionGUID: "guid-1", Message: "ok"}, nil).Once()
		f.historyRepo.On("Insert", ctx, quote.ID, false).Return(entry, nil).Once()
		f.rateRepo.On("LinkSubmissionHistory", ctx, entry.ID, quote.ID).Return(nil).Once()
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			return u.Status != nil && *u.Status == quoteDomain.StatusSubmitted
		})).Return(nil).Once()

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
		assert.Contains(t, result.Messages, "signature_request_all_signed event successfully received, status of application has been updated to ALL_SIGNED")
		assert.Contains(t, result.Messages, "Application submission to carrier success! Transmission GUID: guid-1")
		f.quoteRepo.AssertExpectations(t)
		f.carrier.AssertExpectations(t)
		f.historyRepo.AssertExpectations(t)
		f.rateRepo.AssertExpectations(t)
	})

	t.Run("verbose logging appends the carrier message", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{VerboseLogging: true})
		quote := newTestQuote(quoteDomain.StatusAwaitingSignatures)
		event := signedEvent(signatureDomain.EventSignatureRequestAllSigned, quote.ID.String())
		entry := &submissionDomain.HistoryEntry{ID: uuid.Must(uuid.NewV7()), QuoteID: quote.ID}

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.Anything).Return(nil)
		f.carrier.On("Submit", ctx, quote.ID).
			Return(&carrier.SubmissionResult{TransmissionGUID: "guid-1", Message: "accepted"}, nil)
		f.historyRepo.On("Insert", ctx, quote.ID, false).Return(entry, nil)
		f.rateRepo.On("LinkSubmissionHistory", ctx, entry.ID, quote.ID).Return(nil)

		result := f.useCase.HandleEvent(ctx, event)
		assert.Contains(t, result.Messages, "Application submission to carrier success! Transmission GUID: guid-1 Message: accepted")
	})

	t.Run("carrier failure is absorbed and stops remaining effects", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAwaitingSignatures)
		event := signedEvent(signatureDomain.EventSignatureRequestAllSigned, quote.ID.String())
		submissionErr := &carrier.SubmissionError{StatusCode: 502, Message: "carrier down"}

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			return u.Status != nil && *u.Status == quoteDomain.StatusAllSigned
		})).Return(nil).Once()
		f.carrier.On("Submit", ctx, quote.ID).Return(nil, submissionErr).Once()

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
		assert.Contains(t, result.Messages, "Application submission failed.")
		assert.Contains(t, result.Messages, submissionErr.Error())

		// No history entry and no further status change after the failure.
		f.historyRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything)
		f.quoteRepo.AssertNumberOfCalls(t, "Update", 1)
	})

	t.Run("re-quote records a resubmission without the carrier", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAllSigned)
		quote.TransmissionGUID = strPtr("guid-0")
		event := signedEvent(signatureDomain.EventSignatureRequestAllSigned, quote.ID.String())
		entry := &submissionDomain.HistoryEntry{ID: uuid.Must(uuid.NewV7()), QuoteID: quote.ID, IsResubmission: true}

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.Anything).Return(nil)
		f.historyRepo.On("Insert", ctx, quote.ID, true).Return(entry, nil).Once()
		f.rateRepo.On("LinkSubmissionHistory", ctx, entry.ID, quote.ID).Return(nil).Once()

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
		f.carrier.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		f.historyRepo.AssertExpectations(t)
	})

	t.Run("test account bypass assigns a generated transmission guid", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{IsProduction: true})
		quote := newTestQuote(quoteDomain.StatusAwaitingSignatures)
		quote.CorrespondentFirstName = strPtr("prod")
		quote.CorrespondentLastName = strPtr("TEST")
		event := signedEvent(signatureDomain.EventSignatureRequestAllSigned, quote.ID.String())
		entry := &submissionDomain.HistoryEntry{ID: uuid.Must(uuid.NewV7()), QuoteID: quote.ID}

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			return u.Status != nil && *u.Status == quoteDomain.StatusAllSigned
		})).Return(nil).Once()
		f.historyRepo.On("Insert", ctx, quote.ID, false).Return(entry, nil).Once()
		f.rateRepo.On("LinkSubmissionHistory", ctx, entry.ID, quote.ID).Return(nil).Once()
		f.quoteRepo.On("Update", ctx, quote.ID, mock.MatchedBy(func(u quoteDomain.QuoteUpdate) bool {
			if u.Status == nil || *u.Status != quoteDomain.StatusProcessed || u.TransmissionGUID == nil {
				return false
			}
			_, err := uuid.Parse(*u.TransmissionGUID)
			return err == nil
		})).Return(nil).Once()

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
		f.carrier.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
		f.quoteRepo.AssertExpectations(t)
	})

	t.Run("employer document failure is absorbed", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAwaitingSignatures)
		employerID := uuid.Must(uuid.NewV7())
		quote.EmployerID = &employerID
		event := signedEvent(signatureDomain.EventSignatureRequestAllSigned, quote.ID.String())

		f.quoteRepo.On("GetByID", ctx, quote.ID).Return(quote, nil)
		f.quoteRepo.On("Update", ctx, quote.ID, mock.Anything).Return(nil).Once()
		f.documentUC.On("AddBenefitInformationToEmployerDocuments", ctx, employerID, quote.ID).
			Return(apperrors.New("documents store unavailable")).Once()

		result := f.useCase.HandleEvent(ctx, event)
		assert.Equal(t, signatureDomain.OutcomeProcessed, result.Outcome)
		assert.Contains(t, result.Messages, "documents store unavailable")
		f.carrier.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
	})
}

func TestSignatureWorkflowUseCase_SendSignatureRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the created signature request", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		request := &esign.SendRequest{TemplateID: "template-1"}
		created := &esign.SignatureRequest{SignatureRequestID: "SR1"}

		f.provider.On("SendWithTemplate", ctx, request).Return(created, nil)

		result, err := f.useCase.SendSignatureRequest(ctx, request)
		require.NoError(t, err)
		assert.Equal(t, created, result)
	})

	t.Run("provider failure maps to invalid input", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		request := &esign.SendRequest{TemplateID: "template-1"}

		f.provider.On("SendWithTemplate", ctx, request).
			Return(nil, &esign.ProviderError{StatusCode: 400, Message: "template not found"})

		result, err := f.useCase.SendSignatureRequest(ctx, request)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "Email signature request error.")
	})
}

func TestSignatureWorkflowUseCase_DownloadFile(t *testing.T) {
	ctx := context.Background()
	employerID := uuid.Must(uuid.NewV7())

	t.Run("returns the signed file url", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAllSigned)
		quote.SignatureRequestID = strPtr("SR1")
		fileURL := &esign.FileURL{FileURL: "https://files.example.com/SR1.pdf"}

		f.quoteRepo.On("GetByEmployerID", ctx, employerID).Return(quote, nil)
		f.provider.On("GetFileURL", ctx, "SR1").Return(fileURL, nil)

		result, err := f.useCase.DownloadFile(ctx, employerID)
		require.NoError(t, err)
		assert.Equal(t, fileURL, result)
	})

	t.Run("no quote for the employer", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		f.quoteRepo.On("GetByEmployerID", ctx, employerID).Return(nil, quoteDomain.ErrQuoteNotFound)

		result, err := f.useCase.DownloadFile(ctx, employerID)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		assert.Contains(t, err.Error(), "Quote for this employer not found")
	})

	t.Run("quote without a signature request", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusDraft)
		f.quoteRepo.On("GetByEmployerID", ctx, employerID).Return(quote, nil)

		result, err := f.useCase.DownloadFile(ctx, employerID)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotFound))
		assert.Contains(t, err.Error(), "Application for this employer not found")
	})

	t.Run("provider failure maps to invalid input", func(t *testing.T) {
		f := newUseCaseFixture(signatureDomain.RuntimeConfig{})
		quote := newTestQuote(quoteDomain.StatusAllSigned)
		quote.SignatureRequestID = strPtr("SR1")

		f.quoteRepo.On("GetByEmployerID", ctx, employerID).Return(quote, nil)
		f.provider.On("GetFileURL", ctx, "SR1").
			Return(nil, &esign.ProviderError{StatusCode: 410, Message: "expired"})

		result, err := f.useCase.DownloadFile(ctx, employerID)
		require.Error(t, err)
		assert.Nil(t, result)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
		assert.Contains(t, err.Error(), "Get file error.")
	})
}
