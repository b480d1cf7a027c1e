package cli

import (
	"bytes"
	"database/sql"
	"io"
	"os"
	"path/filepath"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/runnerr0/histaudit/internal/config"
)

// captureOutput captures stdout during fn execution and returns it as a string.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fn()

	w.Close()
	os.Stdout = old

	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	return buf.String()
}

// newTestEnv returns an env whose export dir lives under a temp dir.
func newTestEnv(t *testing.T, json bool) *env {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Export.Dir = filepath.Join(t.TempDir(), "reports")
	return &env{cfg: cfg, logger: zap.NewNop(), json: json}
}

// execStore creates a SQLite file at path and runs stmts against it.
func execStore(t *testing.T, path string, stmts ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	db, err := sql.Open("sqlite3", "file:"+filepath.ToSlash(path)+"?mode=rwc")
	require.NoError(t, err)
	defer db.Close()
	for _, s := range stmts {
		_, err := db.Exec(s)
		require.NoError(t, err)
	}
}

const (
	urlsTable    = `CREATE TABLE urls (id INTEGER PRIMARY KEY, url LONGVARCHAR, title LONGVARCHAR, visit_count INTEGER, last_visit_time INTEGER)`
	cookiesTable = `CREATE TABLE cookies (host_key TEXT, name TEXT, value TEXT, creation_utc INTEGER, expires_utc INTEGER)`
)

// writeProfile lays out a profile directory with a History store holding
// rows and, when withCookies is set, a Network/Cookies store.
func writeProfile(t *testing.T, dir string, withCookies bool, rows ...string) {
	t.Helper()
	stmts := []string{urlsTable}
	for _, r := range rows {
		stmts = append(stmts, `INSERT INTO urls (url, title, visit_count, last_visit_time) VALUES `+r)
	}
	execStore(t, filepath.Join(dir, "History"), stmts...)
	if withCookies {
		execStore(t, filepath.Join(dir, "Network", "Cookies"), cookiesTable,
			`INSERT INTO cookies VALUES ('.go.dev', 'pref', 'x', 13300000000000000, 0)`)
	}
}

// riskyRows score 10 (HIGH): two piracy hits on a suspicious TLD.
var riskyRows = []string{
	`('https://go.dev/doc', 'Docs', 4, 13300000000000000)`,
	`('http://crack.top/keygen', 'k1', 1, 13300000100000000)`,
	`('https://go.dev/blog', 'Blog', 2, 13300000200000000)`,
	`('http://crack.top/keygen', 'k2', 1, 0)`,
	`('https://www.go.dev/', 'Home', 9, 13300000300000000)`,
}
