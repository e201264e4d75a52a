// Package repository implements submission-history persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/database"
	apperrors "github.com/enrollhq/signflow/internal/errors"
	submissionDomain "github.com/enrollhq/signflow/internal/submission/domain"
)

// PostgreSQLHistoryRepository implements submission-history persistence for PostgreSQL.
type PostgreSQLHistoryRepository struct {
	db *sql.DB
}

// NewPostgreSQLHistoryRepository creates a new PostgreSQLHistoryRepository.
func NewPostgreSQLHistoryRepository(db *sql.DB) *PostgreSQLHistoryRepository {
	return &PostgreSQLHistoryRepository{db: db}
}

// Insert appends a new submission-history entry for the quote.
func (p *PostgreSQLHistoryRepository) Insert(
	ctx context.Context,
	quoteID uuid.UUID,
	isResubmission bool,
) (*submissionDomain.HistoryEntry, error) {
	querier := database.GetTx(ctx, p.db)

	entry := &submissionDomain.HistoryEntry{
		ID:             uuid.Must(uuid.NewV7()),
		QuoteID:        quoteID,
		IsResubmission: isResubmission,
		CreatedAt:      time.Now().UTC(),
	}

	query := `INSERT INTO quotes_submission_history (id, quote_id, is_resubmission, created_at)
			  VALUES ($1, $2, $3, $4)`

	_, err := querier.ExecContext(ctx, query, entry.ID, entry.QuoteID, entry.IsResubmission, entry.CreatedAt)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to insert submission history entry")
	}

	return entry, nil
}

// ListByQuoteID returns the submission history for a quote, oldest first.
func (p *PostgreSQLHistoryRepository) ListByQuoteID(
	ctx context.Context,
	quoteID uuid.UUID,
) ([]*submissionDomain.HistoryEntry, error) {
	querier := database.GetTx(ctx, p.db)

	query := `SELECT id, quote_id, is_resubmission, created_at
			  FROM quotes_submission_history
			  WHERE quote_id = $1
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, quoteID)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to list submission history")
	}
	defer rows.Close()

	var entries []*submissionDomain.HistoryEntry
	for rows.Next() {
		var entry submissionDomain.HistoryEntry
		if err := rows.Scan(&entry.ID, &entry.QuoteID, &entry.IsResubmission, &entry.CreatedAt); err != nil {
			return nil, apperrors.Wrap(err, "failed to scan submission history entry")
		}
		entries = append(entries, &entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.Wrap(err, "failed to read submission history rows")
	}

	return entries, nil
}
