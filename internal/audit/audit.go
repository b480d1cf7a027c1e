// Package audit runs the extraction and scoring pipeline over one profile.
package audit

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/runnerr0/histaudit/internal/browser"
	"github.com/runnerr0/histaudit/internal/risk"
)

// Input names the stores to read. CookiesPath may be empty when the profile
// has no cookie store. SkipCookies leaves the cookie table empty without
// reporting it as unavailable.
type Input struct {
	HistoryPath   string
	CookiesPath   string
	SkipCookies   bool
	SnapshotDir   string
	KeepSnapshots bool
}

// Result holds the extracted tables and the assessment derived from them.
type Result struct {
	History    []browser.HistoryRecord
	Cookies    []browser.CookieRecord
	Assessment risk.Assessment

	// CookiesErr is set when the cookie table could not be read; Cookies is
	// then empty.
	CookiesErr error

	// Paths of the kept snapshot copies; empty when the copies were removed.
	HistorySnapshot string
	CookiesSnapshot string
}

// CookiesAvailable reports whether the cookie table was read.
func (r *Result) CookiesAvailable() bool {
	return r.CookiesErr == nil
}

// Runner wires the extractor to the evaluator.
type Runner struct {
	extractor *browser.Extractor
	evaluator *risk.Evaluator
	logger    *zap.Logger
}

// NewRunner returns a Runner using the default rule set. A nil logger
// disables logging.
func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{
		extractor: browser.NewExtractor(logger),
		evaluator: risk.NewEvaluator(),
		logger:    logger.Named("audit"),
	}
}

// Run extracts history and cookies concurrently, then scores the history.
// A history failure aborts the run; a cookie failure only leaves the cookie
// table empty and is reported through Result.CookiesErr.
func (r *Runner) Run(ctx context.Context, in Input) (*Result, error) {
	res := &Result{Cookies: []browser.CookieRecord{}}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		records, snapPath, err := r.extractHistory(gctx, in)
		if err != nil {
			return err
		}
		res.History = records
		res.HistorySnapshot = snapPath
		return nil
	})

	if !in.SkipCookies {
		g.Go(func() error {
			records, snapPath, err := r.extractCookies(gctx, in)
			if err != nil {
				r.logger.Warn("cookie store unavailable", zap.String("path", in.CookiesPath), zap.Error(err))
				res.CookiesErr = err
				return nil
			}
			res.Cookies = records
			res.CookiesSnapshot = snapPath
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}

	res.Assessment = r.evaluator.Evaluate(res.History)
	r.logger.Debug("risk evaluated",
		zap.Int("records", len(res.History)),
		zap.Int("score", res.Assessment.Score),
		zap.Stringer("tier", res.Assessment.Tier),
		zap.Int("flagged", len(res.Assessment.FlaggedSites)),
	)
	return res, nil
}

func (r *Runner) extractHistory(ctx context.Context, in Input) ([]browser.HistoryRecord, string, error) {
	snap, err := browser.TakeSnapshot(in.HistoryPath, in.SnapshotDir)
	if err != nil {
		return nil, "", err
	}
	if !in.KeepSnapshots {
		defer snap.Close()
	}
	records, err := r.extractor.History(ctx, snap.Path)
	if err != nil {
		return nil, "", err
	}
	if !in.KeepSnapshots {
		return records, "", nil
	}
	return records, snap.Path, nil
}

func (r *Runner) extractCookies(ctx context.Context, in Input) ([]browser.CookieRecord, string, error) {
	if in.CookiesPath == "" {
		return nil, "", &browser.StoreError{Path: "Cookies", Err: os.ErrNotExist}
	}
	snap, err := browser.TakeSnapshot(in.CookiesPath, in.SnapshotDir)
	if err != nil {
		return nil, "", err
	}
	if !in.KeepSnapshots {
		defer snap.Close()
	}
	records, err := r.extractor.Cookies(ctx, snap.Path)
	if err != nil {
		return nil, "", err
	}
	if !in.KeepSnapshots {
		return records, "", nil
	}
	return records, snap.Path, nil
}
