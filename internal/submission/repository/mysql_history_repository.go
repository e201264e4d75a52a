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

// MySQLHistoryRepository implements submission-history persistence for MySQL.
type MySQLHistoryRepository struct {
	db *sql.DB
}

// NewMySQLHistoryRepository creates a new MySQLHistoryRepository.
func NewMySQLHistoryRepository(db *sql.DB) *MySQLHistoryRepository {
	return &MySQLHistoryRepository{db: db}
}

// Insert appends a new submission-history entry for the quote.
func (m *MySQLHistoryRepository) Insert(
	ctx context.Context,
	quoteID uuid.UUID,
	isResubmission bool,
) (*submissionDomain.HistoryEntry, error) {
	querier := database.GetTx(ctx, m.db)

	entry := &submissionDomain.HistoryEntry{
		ID:             uuid.Must(uuid.NewV7()),
		QuoteID:        quoteID,
		IsResubmission: isResubmission,
		CreatedAt:      time.Now().UTC(),
	}

	query := `INSERT INTO quotes_submission_history (id, quote_id, is_resubmission, created_at)
			  VALUES (?, ?, ?, ?)`

	_, err := querier.ExecContext(
		ctx,
		query,
		entry.ID.String(),
		entry.QuoteID.String(),
		entry.IsResubmission,
		entry.CreatedAt,
	)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to insert submission history entry")
	}

	return entry, nil
}

// ListByQuoteID returns the submission history for a quote, oldest first.
func (m *MySQLHistoryRepository) ListByQuoteID(
	ctx context.Context,
	quoteID uuid.UUID,
) ([]*submissionDomain.HistoryEntry, error) {
	querier := database.GetTx(ctx, m.db)

	query := `SELECT id, quote_id, is_resubmission, created_at
			  FROM quotes_submission_history
			  WHERE quote_id = ?
			  ORDER BY created_at ASC`

	rows, err := querier.QueryContext(ctx, query, quoteID.String())
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
