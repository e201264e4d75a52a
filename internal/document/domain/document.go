// Package domain defines employer document records.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// CategoryBenefitInformation marks documents generated from a quote's benefit
// summary when all parties have signed.
const CategoryBenefitInformation = "benefit-information"

// Document represents a document attached to an employer's account.
type Document struct {
	ID         uuid.UUID
	EmployerID uuid.UUID
	QuoteID    *uuid.UUID
	Category   string
	CreatedAt  time.Time
}
