package database

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func openMigrated(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, RunMigrations(path))
	db, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestDSNCarriesPragmas(t *testing.T) {
	dsn := DSN("/tmp/h.db")
	require.True(t, strings.HasPrefix(dsn, "file:/tmp/h.db?"))

	q, err := url.ParseQuery(strings.SplitN(dsn, "?", 2)[1])
	require.NoError(t, err)
	require.Equal(t, "on", q.Get("_foreign_keys"))
	require.Equal(t, "5000", q.Get("_busy_timeout"))
	require.Equal(t, "WAL", q.Get("_journal_mode"))
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	require.ErrorIs(t, err, ErrNoPath)
}

func TestOpenEnforcesForeignKeysAndWAL(t *testing.T) {
	db := openMigrated(t)

	var mode string
	require.NoError(t, db.QueryRow(`PRAGMA journal_mode`).Scan(&mode))
	require.Equal(t, "wal", strings.ToLower(mode))

	_, err := db.Exec(`INSERT INTO visits(id, presentation_id, deck_id, deck_index) VALUES('v1', 'missing', 'd', 0)`)
	require.Error(t, err, "visit without a presentation must be rejected")
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db := openMigrated(t)
	ctx := context.Background()
	boom := errors.New("boom")

	err := WithTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO presentations(id, path) VALUES('p1', '/a.md')`); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM presentations`).Scan(&n))
	require.Equal(t, 0, n)

	require.NoError(t, WithTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO presentations(id, path) VALUES('p1', '/a.md')`)
		return err
	}))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM presentations`).Scan(&n))
	require.Equal(t, 1, n)
}
