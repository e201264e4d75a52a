// Package repository implements rate-linkage persistence for PostgreSQL and MySQL.
// Rates carry the pricing snapshot for a quote; each submission cycle links the
// quote's current rate to the submission-history entry created for that cycle.
package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/database"
	apperrors "github.com/enrollhq/signflow/internal/errors"
)

// PostgreSQLRateRepository implements rate linkage for PostgreSQL.
type PostgreSQLRateRepository struct {
	db *sql.DB
}

// NewPostgreSQLRateRepository creates a new PostgreSQLRateRepository.
func NewPostgreSQLRateRepository(db *sql.DB) *PostgreSQLRateRepository {
	return &PostgreSQLRateRepository{db: db}
}

// LinkSubmissionHistory stamps the quote's current rate with the submission-history
// entry of the cycle being recorded.
func (p *PostgreSQLRateRepository) LinkSubmissionHistory(
	ctx context.Context,
	historyEntryID uuid.UUID,
	quoteID uuid.UUID,
) error {
	querier := database.GetTx(ctx, p.db)

	query := `UPDATE rates
			  SET submission_history_id = $1
			  WHERE quote_id = $2 AND submission_history_id IS NULL`

	_, err := querier.ExecContext(ctx, query, historyEntryID, quoteID)
	if err != nil {
		return apperrors.Wrap(err, "failed to link rate to submission history")
	}

	return nil
}
