package database

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithTxCommitsAndRollsBack(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.ExecContext(ctx, `CREATE TABLE notes(id INTEGER PRIMARY KEY, body TEXT)`)
	require.NoError(t, err)

	count := func() int {
		var n int
		require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&n))
		return n
	}

	boom := errors.New("boom")
	err = WithTx(db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO notes(body) VALUES ('a')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 0, count(), "failed fn must leave no rows behind")

	err = WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO notes(body) VALUES ('b')`)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, 1, count())
}
