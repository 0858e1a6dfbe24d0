package dbx

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

func TestOpen_SQLiteInMemory(t *testing.T) {
	db, err := Open(context.Background(), "sqlite", "file:dbx_open?mode=memory&cache=shared", time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS t (id INTEGER PRIMARY KEY, v TEXT);`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "nope", "whatever", time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db open error")
}

func TestOpen_PingFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "auth.db")
	_, err := Open(context.Background(), "sqlite", path, time.Second)
	require.Error(t, err)
	require.Contains(t, err.Error(), "db ping error")
}
