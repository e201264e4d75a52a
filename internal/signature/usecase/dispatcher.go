package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/database"
	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

// Dispatcher executes the effects decided by the status machine against the
// collaborating stores and clients, in order, and accumulates the
// human-readable messages returned to the provider. A failed effect aborts
// the remaining effects of the event; already-applied effects are not undone.
type Dispatcher struct {
	quoteRepo       QuoteRepository
	historyRepo     SubmissionHistoryRepository
	rateRepo        RateRepository
	documentUseCase DocumentUseCase
	carrier         CarrierSubmitter
	txManager       database.TxManager
	logger          *slog.Logger
}

// NewDispatcher creates a Dispatcher.
func NewDispatcher(
	quoteRepo QuoteRepository,
	historyRepo SubmissionHistoryRepository,
	rateRepo RateRepository,
	documentUseCase DocumentUseCase,
	carrierSubmitter CarrierSubmitter,
	txManager database.TxManager,
	logger *slog.Logger,
) *Dispatcher {
	return &Dispatcher{
		quoteRepo:       quoteRepo,
		historyRepo:     historyRepo,
		rateRepo:        rateRepo,
		documentUseCase: documentUseCase,
		carrier:         carrierSubmitter,
		txManager:       txManager,
		logger:          logger,
	}
}

// Apply executes the effects sequentially and returns the messages they
// produced. Failures are absorbed: they are logged, reflected in the message
// list, and stop the remaining effects, but never propagate to the caller.
func (d *Dispatcher) Apply(
	ctx context.Context,
	quote *quoteDomain.Quote,
	effects []signatureDomain.Effect,
	cfg signatureDomain.RuntimeConfig,
) []string {
	var messages []string

	for _, effect := range effects {
		extra, err := d.applyEffect(ctx, quote, effect, cfg)
		messages = append(messages, extra...)
		if err != nil {
			if effect.Kind == signatureDomain.EffectSubmitToCarrier {
				messages = append(messages, "Application submission failed.", err.Error())
			} else {
				messages = append(messages, err.Error())
			}
			d.logger.Error("e-signature event effect failed",
				slog.String("quote_id", quote.ID.String()),
				slog.String("error", err.Error()),
			)
			return messages
		}
	}

	return messages
}

func (d *Dispatcher) applyEffect(
	ctx context.Context,
	quote *quoteDomain.Quote,
	effect signatureDomain.Effect,
	cfg signatureDomain.RuntimeConfig,
) ([]string, error) {
	switch effect.Kind {
	case signatureDomain.EffectSetAwaitingSignatures:
		update := quoteDomain.QuoteUpdate{
			Status:             &effect.Status,
			SignatureRequestID: &effect.SignatureRequestID,
		}
		if err := d.quoteRepo.Update(ctx, quote.ID, update); err != nil {
			return nil, err
		}
		message := fmt.Sprintf(
			"Email signature request sent. Quote id: %s. Signature request id: %s",
			quote.ID, effect.SignatureRequestID,
		)
		d.logger.Info(message)
		return []string{message}, nil

	case signatureDomain.EffectSetSignatureDate:
		update := quoteDomain.QuoteUpdate{MasterApplicationSignatureDate: &effect.SignatureDate}
		if err := d.quoteRepo.Update(ctx, quote.ID, update); err != nil {
			return nil, err
		}
		d.logger.Info("Document signed by plan-holder")
		return nil, nil

	case signatureDomain.EffectSetAllSigned:
		update := quoteDomain.QuoteUpdate{Status: &effect.Status}
		if err := d.quoteRepo.Update(ctx, quote.ID, update); err != nil {
			return nil, err
		}
		d.logger.Info("All parties have signed the document")
		return []string{
			"signature_request_all_signed event successfully received, status of application has been updated to ALL_SIGNED",
		}, nil

	case signatureDomain.EffectAddBenefitDocuments:
		return nil, d.documentUseCase.AddBenefitInformationToEmployerDocuments(ctx, effect.EmployerID, quote.ID)

	case signatureDomain.EffectSubmitToCarrier:
		result, err := d.carrier.Submit(ctx, quote.ID)
		if err != nil {
			return nil, err
		}
		message := fmt.Sprintf(
			"Application submission to carrier success! Transmission GUID: %s",
			result.TransmissionGUID,
		)
		if cfg.VerboseLogging {
			message += fmt.Sprintf(" Message: %s", result.Message)
		}
		d.logger.Info(message)
		return []string{message}, nil

	case signatureDomain.EffectRecordSubmission:
		return nil, d.recordSubmission(ctx, quote.ID, effect.IsResubmission)

	case signatureDomain.EffectSetSubmitted:
		update := quoteDomain.QuoteUpdate{Status: &effect.Status}
		return nil, d.quoteRepo.Update(ctx, quote.ID, update)

	case signatureDomain.EffectSetProcessed:
		transmissionGUID := uuid.NewString()
		update := quoteDomain.QuoteUpdate{
			Status:           &effect.Status,
			TransmissionGUID: &transmissionGUID,
		}
		return nil, d.quoteRepo.Update(ctx, quote.ID, update)

	case signatureDomain.EffectLogInfo:
		d.logger.Info(effect.Message)
		return nil, nil

	case signatureDomain.EffectLogError:
		d.logger.Error(effect.Message)
		return nil, nil

	default:
		return nil, fmt.Errorf("unknown effect kind %d", effect.Kind)
	}
}

// recordSubmission writes the history entry and the rate linkage as one
// transaction so a submission cycle is never half-recorded.
func (d *Dispatcher) recordSubmission(ctx context.Context, quoteID uuid.UUID, isResubmission bool) error {
	return d.txManager.WithTx(ctx, func(ctx context.Context) error {
		entry, err := d.historyRepo.Insert(ctx, quoteID, isResubmission)
		if err != nil {
			return err
		}
		return d.rateRepo.LinkSubmissionHistory(ctx, entry.ID, quoteID)
	})
}
