package usecase

import (
	"regexp"
	"time"

	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
	signatureDomain "github.com/enrollhq/signflow/internal/signature/domain"
)

// signatureDateLayout is the calendar format stored on the application.
const signatureDateLayout = "01/02/2006"

// Test accounts are recognized by correspondent name patterns. The carrier
// submission is skipped for them in production so known test enrollments never
// reach the real carrier.
var (
	bypassFirstNamePattern = regexp.MustCompile(`(?i)prod`)
	bypassLastNamePattern  = regexp.MustCompile(`(?i)test`)
)

// Decide maps (quote, event) to the ordered side effects that advance the
// workflow. It is a pure function: all branching on deployment state goes
// through the explicit RuntimeConfig, and status transitions never move the
// quote backward through the workflow ordering.
func Decide(
	quote *quoteDomain.Quote,
	event *signatureDomain.InboundEvent,
	cfg signatureDomain.RuntimeConfig,
) []signatureDomain.Effect {
	switch event.Event.EventType {
	case signatureDomain.EventSignatureRequestSent:
		return []signatureDomain.Effect{{
			Kind:               signatureDomain.EffectSetAwaitingSignatures,
			Status:             advance(quote.Status, quoteDomain.StatusAwaitingSignatures),
			SignatureRequestID: event.SignatureRequestID(),
		}}

	case signatureDomain.EventSignatureRequestSigned:
		planHolder := event.PlanHolderSignature()
		if planHolder == nil {
			return []signatureDomain.Effect{{
				Kind:    signatureDomain.EffectLogError,
				Message: `Signer with role of "plan-holder" does not exist on the signatures array`,
			}}
		}
		if planHolder.SignedAt == nil {
			return nil
		}
		return []signatureDomain.Effect{{
			Kind:          signatureDomain.EffectSetSignatureDate,
			SignatureDate: time.Unix(*planHolder.SignedAt, 0).UTC().Format(signatureDateLayout),
		}}

	case signatureDomain.EventSignatureRequestAllSigned:
		return decideAllSigned(quote, cfg)

	default:
		if event.Event.EventType.IsFailure() {
			return []signatureDomain.Effect{{
				Kind:    signatureDomain.EffectLogError,
				Message: event.GenericMessage(),
			}}
		}
		return []signatureDomain.Effect{{
			Kind:    signatureDomain.EffectLogInfo,
			Message: event.GenericMessage(),
		}}
	}
}

// decideAllSigned produces the all-signed transition: mark the quote
// ALL_SIGNED, publish the benefit documents, then branch on re-quote versus
// first-time submission.
func decideAllSigned(quote *quoteDomain.Quote, cfg signatureDomain.RuntimeConfig) []signatureDomain.Effect {
	effects := []signatureDomain.Effect{{
		Kind:   signatureDomain.EffectSetAllSigned,
		Status: advance(quote.Status, quoteDomain.StatusAllSigned),
	}}

	if quote.EmployerID != nil {
		effects = append(effects, signatureDomain.Effect{
			Kind:       signatureDomain.EffectAddBenefitDocuments,
			EmployerID: *quote.EmployerID,
		})
	}

	if quote.IsRequote() {
		return append(effects,
			signatureDomain.Effect{Kind: signatureDomain.EffectRecordSubmission, IsResubmission: true},
			signatureDomain.Effect{Kind: signatureDomain.EffectSetSubmitted, Status: quoteDomain.StatusSubmitted},
		)
	}

	if isTestAccountBypass(quote, cfg) {
		return append(effects,
			signatureDomain.Effect{Kind: signatureDomain.EffectRecordSubmission, IsResubmission: false},
			signatureDomain.Effect{Kind: signatureDomain.EffectSetProcessed, Status: quoteDomain.StatusProcessed},
		)
	}

	return append(effects,
		signatureDomain.Effect{Kind: signatureDomain.EffectSubmitToCarrier},
		signatureDomain.Effect{Kind: signatureDomain.EffectRecordSubmission, IsResubmission: false},
		signatureDomain.Effect{Kind: signatureDomain.EffectSetSubmitted, Status: quoteDomain.StatusSubmitted},
	)
}

// isTestAccountBypass reports whether the quote belongs to a known test
// account in production. Only effective in production; the same names submit
// normally everywhere else.
func isTestAccountBypass(quote *quoteDomain.Quote, cfg signatureDomain.RuntimeConfig) bool {
	if !cfg.IsProduction {
		return false
	}
	return quote.CorrespondentFirstName != nil &&
		bypassFirstNamePattern.MatchString(*quote.CorrespondentFirstName) &&
		quote.CorrespondentLastName != nil &&
		bypassLastNamePattern.MatchString(*quote.CorrespondentLastName)
}

// advance returns next unless it would move the quote backward in the
// workflow ordering, in which case the current status is kept.
func advance(current, next quoteDomain.WorkflowStatus) quoteDomain.WorkflowStatus {
	if current.Rank() > next.Rank() {
		return current
	}
	return next
}
