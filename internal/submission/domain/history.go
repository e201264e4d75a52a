// Package domain defines submission-history records for quote applications.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryEntry records a single submission attempt for a quote. Entries are
// append-only: one per submission cycle, never mutated after creation.
type HistoryEntry struct {
	ID             uuid.UUID
	QuoteID        uuid.UUID
	IsResubmission bool
	CreatedAt      time.Time
}
