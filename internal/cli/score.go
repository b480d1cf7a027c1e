package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/runnerr0/histaudit/internal/audit"
	"github.com/runnerr0/histaudit/internal/report"
	"github.com/runnerr0/histaudit/internal/risk"
)

// scoreJSON is the JSON output structure for the score command.
type scoreJSON struct {
	Profile      string                `json:"profile"`
	Records      int                   `json:"history_records"`
	Score        int                   `json:"score"`
	Tier         risk.Tier             `json:"tier"`
	FlaggedSites []string              `json:"flagged_sites"`
	CategoryHits map[risk.Category]int `json:"category_hits"`
}

// Execute implements the go-flags Commander interface for ScoreCommand.
func (c *ScoreCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.close()

	return c.executeWith(context.Background(), os.Stdout, e)
}

// executeWith scores the history store and writes the safety report to w.
func (c *ScoreCommand) executeWith(ctx context.Context, w io.Writer, e *env) error {
	profile, err := resolveProfile(e.cfg, storeFlags{profileDir: c.Profile, historyPath: c.History})
	if err != nil {
		return err
	}

	in, err := auditInput(e.cfg, profile)
	if err != nil {
		return err
	}
	in.SkipCookies = true

	res, err := audit.NewRunner(e.logger).Run(ctx, in)
	if err != nil {
		return historyError(profile, err)
	}

	if e.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(scoreJSON{
			Profile:      profile.Dir,
			Records:      len(res.History),
			Score:        res.Assessment.Score,
			Tier:         res.Assessment.Tier,
			FlaggedSites: res.Assessment.FlaggedSites,
			CategoryHits: res.Assessment.CategoryHits,
		})
	}

	report.NewPresenter(w, e.cfg.Report.FlaggedLimit).SafetyReport(res.Assessment)
	return nil
}
