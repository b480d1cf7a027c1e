package browser

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// openTestSQLite creates (or opens) a writable SQLite file for building fixtures.
func openTestSQLite(t *testing.T, path string) *sql.DB {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	dsn, err := sqliteURI(path, "rwc")
	require.NoError(t, err)
	db, err := sql.Open("sqlite3", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// writeHistoryStore builds a minimal Chromium History database at path.
// Each row is url, title, visit_count, last_visit_time; nil leaves a NULL.
// Columns are looser than Chromium's so tests can store NULLs and text.
func writeHistoryStore(t *testing.T, path string, rows [][]any) {
	t.Helper()
	db := openTestSQLite(t, path)
	_, err := db.Exec(`CREATE TABLE urls (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url LONGVARCHAR,
		title LONGVARCHAR,
		visit_count INTEGER DEFAULT 0,
		typed_count INTEGER DEFAULT 0 NOT NULL,
		last_visit_time INTEGER,
		hidden INTEGER DEFAULT 0 NOT NULL
	)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO urls (url, title, visit_count, last_visit_time) VALUES (?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
}

// writeCookiesStore builds a minimal Chromium Cookies database at path.
// Each row is host_key, name, value, creation_utc, expires_utc.
func writeCookiesStore(t *testing.T, path string, rows [][]any) {
	t.Helper()
	db := openTestSQLite(t, path)
	_, err := db.Exec(`CREATE TABLE cookies (
		creation_utc INTEGER,
		host_key TEXT NOT NULL,
		name TEXT NOT NULL,
		value TEXT NOT NULL,
		path TEXT NOT NULL DEFAULT '/',
		expires_utc INTEGER,
		encrypted_value BLOB DEFAULT ''
	)`)
	require.NoError(t, err)
	for _, r := range rows {
		_, err := db.Exec(`INSERT INTO cookies (host_key, name, value, creation_utc, expires_utc) VALUES (?, ?, ?, ?, ?)`, r...)
		require.NoError(t, err)
	}
	require.NoError(t, db.Close())
}
