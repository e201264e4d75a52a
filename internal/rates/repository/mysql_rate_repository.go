package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/database"
	apperrors "github.com/enrollhq/signflow/internal/errors"
)

// MySQLRateRepository implements rate linkage for MySQL.
type MySQLRateRepository struct {
	db *sql.DB
}

// NewMySQLRateRepository creates a new MySQLRateRepository.
func NewMySQLRateRepository(db *sql.DB) *MySQLRateRepository {
	return &MySQLRateRepository{db: db}
}

// LinkSubmissionHistory stamps the quote's current rate with the submission-history
// entry of the cycle being recorded.
func (m *MySQLRateRepository) LinkSubmissionHistory(
	ctx context.Context,
	historyEntryID uuid.UUID,
	quoteID uuid.UUID,
) error {
	querier := database.GetTx(ctx, m.db)

	query := `UPDATE rates
			  SET submission_history_id = ?
			  WHERE quote_id = ? AND submission_history_id IS NULL`

	_, err := querier.ExecContext(ctx, query, historyEntryID.String(), quoteID.String())
	if err != nil {
		return apperrors.Wrap(err, "failed to link rate to submission history")
	}

	return nil
}
