package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	quoteDomain "github.com/enrollhq/signflow/internal/quote/domain"
)

var quoteRows = []string{
	"id", "employer_id", "status", "signature_request_id", "transmission_guid",
	"master_application_signature_date", "correspondent_first_name", "correspondent_last_name",
	"created_at", "updated_at",
}

func TestPostgreSQLQuoteRepository_GetByID(t *testing.T) {
	t.Run("returns quote", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		quoteID := uuid.Must(uuid.NewV7())
		employerID := uuid.Must(uuid.NewV7())
		now := time.Now().UTC()

		mock.ExpectQuery(`SELECT (.+) FROM quotes WHERE id = \$1`).
			WithArgs(quoteID).
			WillReturnRows(sqlmock.NewRows(quoteRows).AddRow(
				quoteID.String(), employerID.String(), "AWAITING_SIGNATURES", "SR1",
				nil, nil, "Jane", "Doe", now, now,
			))

		repo := NewPostgreSQLQuoteRepository(db)
		quote, err := repo.GetByID(context.Background(), quoteID)

		require.NoError(t, err)
		assert.Equal(t, quoteID, quote.ID)
		require.NotNil(t, quote.EmployerID)
		assert.Equal(t, employerID, *quote.EmployerID)
		assert.Equal(t, quoteDomain.StatusAwaitingSignatures, quote.Status)
		require.NotNil(t, quote.SignatureRequestID)
		assert.Equal(t, "SR1", *quote.SignatureRequestID)
		assert.Nil(t, quote.TransmissionGUID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing row to domain error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		quoteID := uuid.Must(uuid.NewV7())

		mock.ExpectQuery(`SELECT (.+) FROM quotes WHERE id = \$1`).
			WithArgs(quoteID).
			WillReturnRows(sqlmock.NewRows(quoteRows))

		repo := NewPostgreSQLQuoteRepository(db)
		quote, err := repo.GetByID(context.Background(), quoteID)

		assert.Nil(t, quote)
		assert.ErrorIs(t, err, quoteDomain.ErrQuoteNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgreSQLQuoteRepository_GetByEmployerID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	quoteID := uuid.Must(uuid.NewV7())
	employerID := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM quotes WHERE employer_id = \$1 ORDER BY created_at DESC LIMIT 1`).
		WithArgs(employerID).
		WillReturnRows(sqlmock.NewRows(quoteRows).AddRow(
			quoteID.String(), employerID.String(), "ALL_SIGNED", nil,
			nil, nil, nil, nil, now, now,
		))

	repo := NewPostgreSQLQuoteRepository(db)
	quote, err := repo.GetByEmployerID(context.Background(), employerID)

	require.NoError(t, err)
	assert.Equal(t, quoteID, quote.ID)
	assert.Nil(t, quote.SignatureRequestID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLQuoteRepository_Update(t *testing.T) {
	t.Run("updates status and signature request id", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		quoteID := uuid.Must(uuid.NewV7())
		status := quoteDomain.StatusAwaitingSignatures
		signatureRequestID := "SR1"

		mock.ExpectExec(`UPDATE quotes SET updated_at = \$1, status = \$2, signature_request_id = \$3 WHERE id = \$4`).
			WithArgs(sqlmock.AnyArg(), "AWAITING_SIGNATURES", "SR1", quoteID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := NewPostgreSQLQuoteRepository(db)
		err = repo.Update(context.Background(), quoteID, quoteDomain.QuoteUpdate{
			Status:             &status,
			SignatureRequestID: &signatureRequestID,
		})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no-op when nothing to update", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		repo := NewPostgreSQLQuoteRepository(db)
		err = repo.Update(context.Background(), uuid.Must(uuid.NewV7()), quoteDomain.QuoteUpdate{})

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing quote maps to domain error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		quoteID := uuid.Must(uuid.NewV7())
		status := quoteDomain.StatusSubmitted

		mock.ExpectExec(`UPDATE quotes SET updated_at = \$1, status = \$2 WHERE id = \$3`).
			WithArgs(sqlmock.AnyArg(), "SUBMITTED", quoteID).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := NewPostgreSQLQuoteRepository(db)
		err = repo.Update(context.Background(), quoteID, quoteDomain.QuoteUpdate{Status: &status})

		assert.ErrorIs(t, err, quoteDomain.ErrQuoteNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
