package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/runnerr0/histaudit/internal/browser"
)

// Export file names inside the export directory.
const (
	HistoryCSVName = "browser_history_report.csv"
	CookiesCSVName = "browser_cookies_report.csv"
)

var (
	historyHeader = []string{"url", "title", "visit_count", "last_visit_time"}
	cookiesHeader = []string{"host_key", "name", "value", "creation_utc", "expires_utc"}
)

// ExportResult records where the exported tables were written.
type ExportResult struct {
	Dir         string `json:"dir"`
	HistoryPath string `json:"history_path"`
	CookiesPath string `json:"cookies_path"`
}

// ExportCSV writes both tables into dir, creating it if needed. An empty
// cookie table still produces a file with just the header row.
func ExportCSV(dir string, history []browser.HistoryRecord, cookies []browser.CookieRecord) (ExportResult, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("create export directory: %w", err)
	}

	res := ExportResult{
		Dir:         dir,
		HistoryPath: filepath.Join(dir, HistoryCSVName),
		CookiesPath: filepath.Join(dir, CookiesCSVName),
	}

	historyRows := make([][]string, len(history))
	for i, h := range history {
		historyRows[i] = []string{h.URL, h.Title, strconv.FormatInt(h.VisitCount, 10), csvTime(h.LastVisitTime)}
	}
	if err := writeCSV(res.HistoryPath, historyHeader, historyRows); err != nil {
		return ExportResult{}, fmt.Errorf("export history: %w", err)
	}

	cookieRows := make([][]string, len(cookies))
	for i, c := range cookies {
		cookieRows[i] = []string{c.HostKey, c.Name, c.Value, csvTime(c.CreationTime), csvTime(c.ExpiresTime)}
	}
	if err := writeCSV(res.CookiesPath, cookiesHeader, cookieRows); err != nil {
		return ExportResult{}, fmt.Errorf("export cookies: %w", err)
	}

	return res, nil
}

// ReadHistoryCSV loads a history export back into records.
func ReadHistoryCSV(path string) ([]browser.HistoryRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history export: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(historyHeader)

	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	records := []browser.HistoryRecord{}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read history export: %w", err)
		}

		count, err := strconv.ParseInt(row[2], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse visit_count %q: %w", row[2], err)
		}
		rec := browser.HistoryRecord{URL: row[0], Title: row[1], VisitCount: count}
		if row[3] != "" {
			t, err := time.Parse(time.RFC3339Nano, row[3])
			if err != nil {
				return nil, fmt.Errorf("parse last_visit_time %q: %w", row[3], err)
			}
			rec.LastVisitTime = &t
		}
		records = append(records, rec)
	}
	return records, nil
}

func csvTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	if err := w.WriteAll(rows); err != nil {
		return err
	}
	return f.Sync()
}
