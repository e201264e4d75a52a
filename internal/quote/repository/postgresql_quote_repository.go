// Package repository implements quote persistence for PostgreSQL and MySQL.
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

// PostgreSQLQuoteRepository implements quote persistence for PostgreSQL databases.
type PostgreSQLQuoteRepository struct {
	db *sql.DB
}

// NewPostgreSQLQuoteRepository creates a new PostgreSQLQuoteRepository.
func NewPostgreSQLQuoteRepository(db *sql.DB) *PostgreSQLQuoteRepository {
	return &PostgreSQLQuoteRepository{db: db}
}

const quoteColumns = `id, employer_id, status, signature_request_id, transmission_guid,
		master_application_signature_date, correspondent_first_name, correspondent_last_name,
		created_at, updated_at`

// GetByID retrieves a quote by its identifier.
func (p *PostgreSQLQuoteRepository) GetByID(ctx context.Context, id uuid.UUID) (*quoteDomain.Quote, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(`SELECT %s FROM quotes WHERE id = $1`, quoteColumns)

	quote, err := scanQuote(querier.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quoteDomain.ErrQuoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get quote by id")
	}

	return quote, nil
}

// GetByEmployerID retrieves the most recent quote for an employer.
func (p *PostgreSQLQuoteRepository) GetByEmployerID(ctx context.Context, employerID uuid.UUID) (*quoteDomain.Quote, error) {
	querier := database.GetTx(ctx, p.db)

	query := fmt.Sprintf(
		`SELECT %s FROM quotes WHERE employer_id = $1 ORDER BY created_at DESC LIMIT 1`,
		quoteColumns,
	)

	quote, err := scanQuote(querier.QueryRowContext(ctx, query, employerID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, quoteDomain.ErrQuoteNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get quote by employer id")
	}

	return quote, nil
}

// Update applies a partial update to a quote. Nil fields are left untouched.
func (p *PostgreSQLQuoteRepository) Update(ctx context.Context, id uuid.UUID, update quoteDomain.QuoteUpdate) error {
	querier := database.GetTx(ctx, p.db)

	setClauses, args := buildUpdateArgs(update)
	if len(setClauses) == 0 {
		return nil
	}

	// Placeholders are numbered after the fixed updated_at and id arguments.
	clauses := make([]string, 0, len(setClauses)+1)
	clauses = append(clauses, "updated_at = $1")
	args = append([]any{time.Now().UTC()}, args...)
	for i, column := range setClauses {
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, i+2))
	}
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE quotes SET %s WHERE id = $%d`,
		strings.Join(clauses, ", "),
		len(args),
	)

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

// buildUpdateArgs collects the non-nil columns of a partial update in a stable order.
func buildUpdateArgs(update quoteDomain.QuoteUpdate) ([]string, []any) {
	var columns []string
	var args []any

	if update.Status != nil {
		columns = append(columns, "status")
		args = append(args, string(*update.Status))
	}
	if update.SignatureRequestID != nil {
		columns = append(columns, "signature_request_id")
		args = append(args, *update.SignatureRequestID)
	}
	if update.TransmissionGUID != nil {
		columns = append(columns, "transmission_guid")
		args = append(args, *update.TransmissionGUID)
	}
	if update.MasterApplicationSignatureDate != nil {
		columns = append(columns, "master_application_signature_date")
		args = append(args, *update.MasterApplicationSignatureDate)
	}

	return columns, args
}

// rowScanner abstracts *sql.Row for shared scanning between drivers.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanQuote reads a quote row in quoteColumns order.
func scanQuote(row rowScanner) (*quoteDomain.Quote, error) {
	var quote quoteDomain.Quote
	var employerID uuid.NullUUID
	var signatureRequestID, transmissionGUID, signatureDate sql.NullString
	var correspondentFirstName, correspondentLastName sql.NullString
	var status string

	err := row.Scan(
		&quote.ID,
		&employerID,
		&status,
		&signatureRequestID,
		&transmissionGUID,
		&signatureDate,
		&correspondentFirstName,
		&correspondentLastName,
		&quote.CreatedAt,
		&quote.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	quote.Status = quoteDomain.WorkflowStatus(status)
	if employerID.Valid {
		quote.EmployerID = &employerID.UUID
	}
	if signatureRequestID.Valid {
		quote.SignatureRequestID = &signatureRequestID.String
	}
	if transmissionGUID.Valid {
		quote.TransmissionGUID = &transmissionGUID.String
	}
	if signatureDate.Valid {
		quote.MasterApplicationSignatureDate = &signatureDate.String
	}
	if correspondentFirstName.Valid {
		quote.CorrespondentFirstName = &correspondentFirstName.String
	}
	if correspondentLastName.Valid {
		quote.CorrespondentLastName = &correspondentLastName.String
	}

	return &quote, nil
}
