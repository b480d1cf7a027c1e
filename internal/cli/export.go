package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/runnerr0/histaudit/internal/audit"
	"github.com/runnerr0/histaudit/internal/report"
)

// exportJSON is the JSON output structure for the export command.
type exportJSON struct {
	Dir              string `json:"dir"`
	HistoryCSV       string `json:"history_csv"`
	CookiesCSV       string `json:"cookies_csv"`
	HistoryRecords   int    `json:"history_records"`
	CookieRecords    int    `json:"cookie_records"`
	CookiesAvailable bool   `json:"cookies_available"`
}

// Execute implements the go-flags Commander interface for ExportCommand.
func (c *ExportCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.close()

	return c.executeWith(context.Background(), os.Stdout, e)
}

// executeWith extracts both tables and writes them as CSV. Export always
// runs here, whatever export.enabled says.
func (c *ExportCommand) executeWith(ctx context.Context, w io.Writer, e *env) error {
	profile, err := resolveProfile(e.cfg, storeFlags{
		profileDir:  c.Profile,
		historyPath: c.History,
		cookiesPath: c.Cookies,
	})
	if err != nil {
		return err
	}

	in, err := auditInput(e.cfg, profile)
	if err != nil {
		return err
	}
	res, err := audit.NewRunner(e.logger).Run(ctx, in)
	if err != nil {
		return historyError(profile, err)
	}

	exp, err := exportTables(e.cfg, c.ExportDir, res)
	if err != nil {
		return err
	}
	e.logger.Info("reports exported",
		zap.String("dir", exp.Dir),
		zap.Int("history_records", len(res.History)),
		zap.Int("cookie_records", len(res.Cookies)),
	)

	if e.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(exportJSON{
			Dir:              exp.Dir,
			HistoryCSV:       exp.HistoryPath,
			CookiesCSV:       exp.CookiesPath,
			HistoryRecords:   len(res.History),
			CookieRecords:    len(res.Cookies),
			CookiesAvailable: res.CookiesAvailable(),
		})
	}

	p := report.NewPresenter(w, e.cfg.Report.FlaggedLimit)
	printStoreStatus(p, profile, res)
	p.Status("Reports saved to: %s", exp.Dir)
	return nil
}
