// Package repository implements employer document persistence for PostgreSQL and MySQL.
package repository

import (
	"context"
	"database/sql"

	"github.com/enrollhq/signflow/internal/database"
	documentDomain "github.com/enrollhq/signflow/internal/document/domain"
	apperrors "github.com/enrollhq/signflow/internal/errors"
)

// PostgreSQLDocumentRepository implements document persistence for PostgreSQL.
type PostgreSQLDocumentRepository struct {
	db *sql.DB
}

// NewPostgreSQLDocumentRepository creates a new PostgreSQLDocumentRepository.
func NewPostgreSQLDocumentRepository(db *sql.DB) *PostgreSQLDocumentRepository {
	return &PostgreSQLDocumentRepository{db: db}
}

// Create inserts a new document record.
func (p *PostgreSQLDocumentRepository) Create(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO documents (id, employer_id, quote_id, category, created_at)
			  VALUES ($1, $2, $3, $4, $5)`

	var quoteID any
	if document.QuoteID != nil {
		quoteID = *document.QuoteID
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		document.ID,
		document.EmployerID,
		quoteID,
		document.Category,
		document.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}

	return nil
}
