package browser

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

const (
	historyQuery = `SELECT url, title, visit_count, last_visit_time FROM urls`
	cookiesQuery = `SELECT host_key, name, value, creation_utc, expires_utc FROM cookies`
)

// Extractor reads history and cookie rows out of Chromium SQLite stores.
// It only ever opens stores read-only, so it can be pointed at the live
// files or at a snapshot copy.
type Extractor struct {
	logger *zap.Logger
}

// NewExtractor returns an Extractor. A nil logger disables logging.
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger.Named("extract")}
}

// History reads every row of the urls table. Rows without a URL are dropped.
// Any failure to open or query the store is returned as a *StoreError and no
// records are returned with it.
func (x *Extractor) History(ctx context.Context, storePath string) ([]HistoryRecord, error) {
	db, err := openStore(ctx, storePath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, historyQuery)
	if err != nil {
		return nil, &StoreError{Path: storePath, Table: "urls", Err: err}
	}
	defer rows.Close()

	records := []HistoryRecord{}
	var dropped, unknownTimes int
	for rows.Next() {
		var (
			u, title   sql.NullString
			visitCount sql.NullInt64
			lastVisit  any
		)
		if err := rows.Scan(&u, &title, &visitCount, &lastVisit); err != nil {
			return nil, &StoreError{Path: storePath, Table: "urls", Err: fmt.Errorf("scan row: %w", err)}
		}
		if !u.Valid || u.String == "" {
			dropped++
			continue
		}

		rec := HistoryRecord{
			URL:           u.String,
			Title:         title.String,
			LastVisitTime: ParseChromeTime(lastVisit),
		}
		if visitCount.Valid && visitCount.Int64 > 0 {
			rec.VisitCount = visitCount.Int64
		}
		if rec.LastVisitTime == nil {
			unknownTimes++
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Path: storePath, Table: "urls", Err: err}
	}

	x.logger.Debug("history extracted",
		zap.String("path", storePath),
		zap.Int("records", len(records)),
		zap.Int("dropped_without_url", dropped),
		zap.Int("unknown_visit_times", unknownTimes),
	)
	return records, nil
}

// Cookies reads every row of the cookies table. Cookie values are returned
// as stored; encrypted_value is not read.
func (x *Extractor) Cookies(ctx context.Context, storePath string) ([]CookieRecord, error) {
	db, err := openStore(ctx, storePath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, cookiesQuery)
	if err != nil {
		return nil, &StoreError{Path: storePath, Table: "cookies", Err: err}
	}
	defer rows.Close()

	records := []CookieRecord{}
	for rows.Next() {
		var (
			hostKey, name, value sql.NullString
			created, expires     any
		)
		if err := rows.Scan(&hostKey, &name, &value, &created, &expires); err != nil {
			return nil, &StoreError{Path: storePath, Table: "cookies", Err: fmt.Errorf("scan row: %w", err)}
		}
		records = append(records, CookieRecord{
			HostKey:      hostKey.String,
			Name:         name.String,
			Value:        value.String,
			CreationTime: ParseChromeTime(created),
			ExpiresTime:  ParseChromeTime(expires),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Path: storePath, Table: "cookies", Err: err}
	}

	x.logger.Debug("cookies extracted",
		zap.String("path", storePath),
		zap.Int("records", len(records)),
	)
	return records, nil
}

// openStore opens an existing SQLite file read-only. A missing path is an
// error rather than an empty database being created in its place.
func openStore(ctx context.Context, storePath string) (*sql.DB, error) {
	fi, err := os.Stat(storePath)
	if err != nil {
		return nil, &StoreError{Path: storePath, Err: err}
	}
	if fi.IsDir() {
		return nil, &StoreError{Path: storePath, Err: fmt.Errorf("is a directory")}
	}

	dsn, err := sqliteURI(storePath, "ro")
	if err != nil {
		return nil, &StoreError{Path: storePath, Err: err}
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, &StoreError{Path: storePath, Err: fmt.Errorf("open database: %w", err)}
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, &StoreError{Path: storePath, Err: fmt.Errorf("open database: %w", err)}
	}
	return db, nil
}

// sqliteURI builds a SQLite URI for storePath opened with the given mode.
// The path is escaped so that '#', '?' and '%' in directory names stay part
// of the path instead of starting a fragment, a query or an escape.
func sqliteURI(storePath, mode string) (string, error) {
	abs, err := filepath.Abs(storePath)
	if err != nil {
		return "", fmt.Errorf("resolve path: %w", err)
	}
	p := filepath.ToSlash(abs)
	// Windows drive paths need a leading slash: file:///C:/...
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	u := url.URL{Scheme: "file", Path: p, RawQuery: "mode=" + mode}
	return u.String(), nil
}
