package repository

import (
	"context"
	"database/sql"

	"github.com/enrollhq/signflow/internal/database"
	documentDomain "github.com/enrollhq/signflow/internal/document/domain"
	apperrors "github.com/enrollhq/signflow/internal/errors"
)

// MySQLDocumentRepository implements document persistence for MySQL.
type MySQLDocumentRepository struct {
	db *sql.DB
}

// NewMySQLDocumentRepository creates a new MySQLDocumentRepository.
func NewMySQLDocumentRepository(db *sql.DB) *MySQLDocumentRepository {
	return &MySQLDocumentRepository{db: db}
}

// Create inserts a new document record.
func (m *MySQLDocumentRepository) Create(ctx context.Context, document *documentDomain.Document) error {
	querier := database.GetTx(ctx, m.db)

	query := `INSERT INTO documents (id, employer_id, quote_id, category, created_at)
			  VALUES (?, ?, ?, ?, ?)`

	var quoteID any
	if document.QuoteID != nil {
		quoteID = document.QuoteID.String()
	}

	_, err := querier.ExecContext(
		ctx,
		query,
		document.ID.String(),
		document.EmployerID.String(),
		quoteID,
		document.Category,
		document.CreatedAt,
	)
	if err != nil {
		return apperrors.Wrap(err, "failed to create document")
	}

	return nil
}
