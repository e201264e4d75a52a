package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgreSQLHistoryRepository_Insert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	quoteID := uuid.Must(uuid.NewV7())

	mock.ExpectExec(`INSERT INTO quotes_submission_history`).
		WithArgs(sqlmock.AnyArg(), quoteID, true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := NewPostgreSQLHistoryRepository(db)
	entry, err := repo.Insert(context.Background(), quoteID, true)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, entry.ID)
	assert.Equal(t, quoteID, entry.QuoteID)
	assert.True(t, entry.IsResubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgreSQLHistoryRepository_ListByQuoteID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	quoteID := uuid.Must(uuid.NewV7())
	first := uuid.Must(uuid.NewV7())
	second := uuid.Must(uuid.NewV7())
	now := time.Now().UTC()

	mock.ExpectQuery(`SELECT (.+) FROM quotes_submission_history`).
		WithArgs(quoteID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "quote_id", "is_resubmission", "created_at"}).
			AddRow(first.String(), quoteID.String(), false, now.Add(-time.Hour)).
			AddRow(second.String(), quoteID.String(), true, now))

	repo := NewPostgreSQLHistoryRepository(db)
	entries, err := repo.ListByQuoteID(context.Background(), quoteID)

	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, first, entries[0].ID)
	assert.False(t, entries[0].IsResubmission)
	assert.True(t, entries[1].IsResubmission)
	assert.NoError(t, mock.ExpectationsWereMet())
}
