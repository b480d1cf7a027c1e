package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/runnerr0/histaudit/internal/audit"
	"github.com/runnerr0/histaudit/internal/browser"
	"github.com/runnerr0/histaudit/internal/config"
	"github.com/runnerr0/histaudit/internal/report"
)

// Execute implements the go-flags Commander interface for AnalyzeCommand.
func (c *AnalyzeCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.close()

	return c.executeWith(context.Background(), os.Stdout, e)
}

// executeWith runs the analysis against the given env, writing to w (for testing).
func (c *AnalyzeCommand) executeWith(ctx context.Context, w io.Writer, e *env) error {
	top, err := nonNegative("top", c.Top, e.cfg.Report.Top)
	if err != nil {
		return err
	}
	recent, err := nonNegative("recent", c.Recent, e.cfg.Report.Recent)
	if err != nil {
		return err
	}

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

	// Human output carries status lines; JSON output must stay a single document.
	out := w
	if e.json {
		out = io.Discard
	}
	p := report.NewPresenter(out, e.cfg.Report.FlaggedLimit)
	printStoreStatus(p, profile, res)

	topDomains := report.TopDomains(res.History, top)
	recentVisits := report.RecentVisits(res.History, recent)

	p.TopDomains(topDomains, top)
	p.RecentVisits(recentVisits)
	p.SafetyReport(res.Assessment)

	var exported *report.ExportResult
	if e.cfg.Export.Enabled && !c.NoExport {
		exp, err := exportTables(e.cfg, c.ExportDir, res)
		if err != nil {
			return err
		}
		exported = &exp
		p.Status("\nReports saved to: %s", exp.Dir)
		e.logger.Info("reports exported", zap.String("dir", exp.Dir))
	}

	if e.cfg.Report.Charts && !c.NoCharts {
		charts := []report.Chart{
			report.DomainBarChart{Counts: report.TopDomains(res.History, report.ChartDomains)},
			report.TierChart{Tier: res.Assessment.Tier},
		}
		for _, chart := range charts {
			if !report.Renderable(chart) {
				e.logger.Debug("chart skipped: no data", zap.String("chart", chart.Title()))
				continue
			}
			if err := chart.Render(out); err != nil {
				return fmt.Errorf("render %q: %w", chart.Title(), err)
			}
		}
	}

	if e.json {
		summary := report.NewSummary(profile.Dir, res.History, res.Cookies, res.CookiesAvailable(),
			topDomains, recentVisits, res.Assessment)
		summary.Export = exported
		return report.NewPresenter(w, e.cfg.Report.FlaggedLimit).JSON(summary)
	}
	return nil
}

// printStoreStatus reports which profile was read and which stores were copied.
func printStoreStatus(p *report.Presenter, profile browser.Profile, res *audit.Result) {
	p.Status("Profile found: %s", profile.Dir)
	if res.HistorySnapshot != "" {
		p.Status("History copied: %s", res.HistorySnapshot)
	} else {
		p.Status("History copied")
	}
	switch {
	case errors.Is(res.CookiesErr, os.ErrNotExist):
		p.Status("Cookies DB not found")
	case !res.CookiesAvailable():
		p.Status("Cookies DB unreadable: %v", res.CookiesErr)
	case res.CookiesSnapshot != "":
		p.Status("Cookies copied: %s", res.CookiesSnapshot)
	default:
		p.Status("Cookies copied")
	}
}

// exportTables writes both CSVs to the flag directory, or the configured one.
func exportTables(cfg *config.Config, flagDir string, res *audit.Result) (report.ExportResult, error) {
	dir := flagDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	dir, err := config.ExpandPath(dir)
	if err != nil {
		return report.ExportResult{}, err
	}
	return report.ExportCSV(dir, res.History, res.Cookies)
}
