package audit

import (
	"context"
	"errors"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_EnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS gap_rejection")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, EnsureSchema(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func Test_PostgresRecorder(t *testing.T) {
	t.Run("rejection is inserted", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		req, validationErr := newRejectedRequest()
		rejection := NewRejection(req, validationErr)

		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO gap_rejection")).
			WithArgs(
				rejection.Id.String(),
				sqlmock.AnyArg(),
				"MISMATCH",
				"POST",
				"/foo/bar?baz=quux",
				"mbland",
				"10.0.0.1:12345",
				"",
				"sha1 bogus=",
			).
			WillReturnResult(sqlmock.NewResult(1, 1))

		err = NewPostgresRecorder(db).Record(context.Background(), rejection)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
	t.Run("insert failure is returned", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		insertErr := errors.New("relation does not exist")
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO gap_rejection")).WillReturnError(insertErr)

		req, validationErr := newRejectedRequest()
		err = NewPostgresRecorder(db).Record(context.Background(), NewRejection(req, validationErr))
		assert.ErrorIs(t, err, insertErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
