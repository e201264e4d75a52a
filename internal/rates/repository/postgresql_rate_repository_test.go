package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLRateRepository_LinkSubmissionHistory(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	historyID := uuid.Must(uuid.NewV7())
	quoteID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(`UPDATE rates`).
		WithArgs(historyID, quoteID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLRateRepository(db)
	err = repo.LinkSubmissionHistory(context.Background(), historyID, quoteID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
