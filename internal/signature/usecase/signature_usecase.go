package usecase

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/enrollhq/signflow/internal/errors"
	"github.com/enrollhq/signflow/internal/esign"
	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

// quoteNotFoundMessage is returned when the event's metadata does not resolve
// to a stored application.
const quoteNotFoundMessage = "Could not find application with the quote id provided in metadata"

// SignatureWorkflowUseCase coordinates the signature workflow: callback event
// handling plus the outbound signing-request and file-download operations.
type SignatureWorkflowUseCase struct {
	authenticator *Authenticator
	dispatcher    *Dispatcher
	quoteRepo     QuoteRepository
	provider      ESignProvider
	cfg           signatureDomain.RuntimeConfig
	logger        *slog.Logger
}

// NewSignatureWorkflowUseCase creates a SignatureWorkflowUseCase.
func NewSignatureWorkflowUseCase(
	authenticator *Authenticator,
	dispatcher *Dispatcher,
	quoteRepo QuoteRepository,
	provider ESignProvider,
	cfg signatureDomain.RuntimeConfig,
	logger *slog.Logger,
) *SignatureWorkflowUseCase {
	return &SignatureWorkflowUseCase{
		authenticator: authenticator,
		dispatcher:    dispatcher,
		quoteRepo:     quoteRepo,
		provider:      provider,
		cfg:           cfg,
		logger:        logger,
	}
}

// HandleEvent authenticates and processes one provider callback event.
// Business-logic failures are absorbed into the message list so the provider
// never retries on them; only an authenticity failure in production rejects
// the event.
func (uc *SignatureWorkflowUseCase) HandleEvent(
	ctx context.Context,
	event *signatureDomain.InboundEvent,
) *signatureDomain.HandleResult {
	if !uc.authenticator.Validate(event.Event) {
		if uc.cfg.IsProduction {
			return &signatureDomain.HandleResult{Outcome: signatureDomain.OutcomeRejected}
		}
		uc.logger.Warn("event failed authenticity check, accepted outside production",
			slog.String("event_type", string(event.Event.EventType)),
		)
	}

	messages := []string{event.GenericMessage()}

	quote := uc.lookupQuote(ctx, event.QuoteID())
	if quote == nil {
		// Reminder events routinely arrive for signature requests whose quote
		// was wiped from a non-production database; only production treats
		// that as an error worth logging.
		if event.Event.EventType != signatureDomain.EventSignatureRequestRemind || uc.cfg.IsProduction {
			uc.logger.Error(quoteNotFoundMessage, slog.String("quote_id", event.QuoteID()))
		}
		return &signatureDomain.HandleResult{
			Outcome:  signatureDomain.OutcomeNotFound,
			Messages: append(messages, quoteNotFoundMessage),
		}
	}

	effects := Decide(quote, event, uc.cfg)
	messages = append(messages, uc.dispatcher.Apply(ctx, quote, effects, uc.cfg)...)

	return &signatureDomain.HandleResult{
		Outcome:  signatureDomain.OutcomeProcessed,
		Messages: messages,
	}
}

// lookupQuote resolves the metadata quote id to a stored quote, treating an
// unparseable id the same as a missing quote.
func (uc *SignatureWorkflowUseCase) lookupQuote(ctx context.Context, rawQuoteID string) *quoteDomain.Quote {
	quoteID, err := uuid.Parse(rawQuoteID)
	if err != nil {
		return nil
	}

	quote, err := uc.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			uc.logger.Error("quote lookup failed",
				slog.String("quote_id", rawQuoteID),
				slog.String("error", err.Error()),
			)
		}
		return nil
	}

	return quote
}

// SendSignatureRequest creates a template-based signing request and emails
// the signers.
func (uc *SignatureWorkflowUseCase) SendSignatureRequest(
	ctx context.Context,
	request *esign.SendRequest,
) (*esign.SignatureRequest, error) {
	result, err := uc.provider.SendWithTemplate(ctx, request)
	if err != nil {
		uc.logger.Error("email signature request error", slog.String("error", err.Error()))
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "Email signature request error. Error: %s", err.Error())
	}

	uc.logger.Info("email signature request created",
		slog.String("signature_request_id", result.SignatureRequestID),
	)

	return result, nil
}

// DownloadFile returns a short-lived URL for the employer's signed
// application PDF.
func (uc *SignatureWorkflowUseCase) DownloadFile(
	ctx context.Context,
	employerID uuid.UUID,
) (*esign.FileURL, error) {
	quote, err := uc.quoteRepo.GetByEmployerID(ctx, employerID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			uc.logger.Error("no quote associated with employer", slog.String("employer_id", employerID.String()))
			return nil, apperrors.Wrap(apperrors.ErrNotFound, "Quote for this employer not found")
		}
		return nil, err
	}

	if quote.SignatureRequestID == nil {
		uc.logger.Error("no application associated with employer", slog.String("employer_id", employerID.String()))
		return nil, apperrors.Wrap(quoteDomain.ErrSignatureRequestMissing, "Application for this employer not found")
	}

	fileURL, err := uc.provider.GetFileURL(ctx, *quote.SignatureRequestID)
	if err != nil {
		uc.logger.Error("get file error", slog.String("error", err.Error()))
		return nil, apperrors.Wrapf(apperrors.ErrInvalidInput, "Get file error. Error: %s", err.Error())
	}

	return fileURL, nil
}
