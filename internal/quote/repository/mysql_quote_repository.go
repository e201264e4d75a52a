package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/enrollhq/signflow/internal/database"
	apperrors "github.com/enrollhq/signflow/internal/errors"
	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
)

// MySQLQuoteRepository implements quote persistence for MySQL databases.
type MySQLQuoteRepository struct {
	db *sql.DB
}

// NewMySQLQuoteRepository creates a new MySQLQuoteRepository.
func NewMySQLQuoteRepository(db *sql.DB) *MySQLQuoteRepository {
	return &MySQLQuoteRepository{db: db}
}

// GetByID retrieves a quote by its identifier.
func (m *MySQLQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*quoteDomain.Quote, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE id = ?`, quoteColumns)

	quote, err := scanQuote(querier.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quoteDomain.ErrQuoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get quote by id")
	}

	return quote, nil
}

// GetByEmployerID retrieves the most recent quote for an employer.
func (m *MySQLQuoteRepository) GetByEmployerID(ctx context.Context, employerID uuid.UUID) (*quoteDomain.Quote, error) {
	querier := database.GetTx(ctx, m.db)

	query := fmt.Sprintf(
		`SELECT %s FROM quotes WHERE employer_id = ? ORDER BY created_at DESC LIMIT 1`,
		quoteColumns,
	)

	quote, err := scanQuote(querier.QueryRowContext(ctx, query, employerID.String()))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quoteDomain.ErrQuoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get quote by employer id")
	}

	return quote, nil
}

// Update applies a partial update to a quote. Nil fields are left untouched.
func (m *MySQLQuoteRepository) Update(ctx context.Context, id uuid.UUID, update quoteDomain.QuoteUpdate) error {
	querier := database.GetTx(ctx, m.db)

	columns, args := buildUpdateArgs(update)
	if len(columns) == 0 {
		return nil
	}

	clauses := make([]string, 0, len(columns)+1)
	clauses = append(clauses, "updated_at = ?")
	args = append([]any{time.Now().UTC()}, args...)
	for _, column := range columns {
		clauses = append(clauses, fmt.Sprintf("%s = ?", column))
	}
	args = append(args, id.String())

	query := fmt.Sprintf(`UPDATE quotes SET %s WHERE id = ?`, strings.Join(clauses, ", "))

	result, err := querier.ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.Wrap(err, "failed to update quote")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return apperrors.Wrap(err, "failed to check quote update result")
	}
	if rows == 0 {
		return quoteDomain.ErrQuoteNotFound
	}

	return nil
}
