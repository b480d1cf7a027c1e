package risk

import (
	"strings"

	"github.com/runnerr0/histaudit/internal/browser"
)

// Assessment is the outcome of one evaluation run.
type Assessment struct {
	Score        int
	Tier         Tier
	FlaggedSites []string         // original URL text, deduplicated, in first-flag order
	CategoryHits map[Category]int // records that triggered each category
}

// Evaluator scores history records against a fixed rule set.
type Evaluator struct {
	rules []Rule
}

// NewEvaluator returns an Evaluator over rules, or over DefaultRules when
// none are given.
func NewEvaluator(rules ...Rule) *Evaluator {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	return &Evaluator{rules: rules}
}

// Evaluate scores every record. Each rule a record matches adds its weight,
// and duplicate rows each count, so the score grows with every matching row
// while FlaggedSites lists each URL once.
func (e *Evaluator) Evaluate(records []browser.HistoryRecord) Assessment {
	a := Assessment{
		FlaggedSites: []string{},
		CategoryHits: map[Category]int{},
	}
	seen := make(map[string]struct{})

	for _, rec := range records {
		lower := strings.ToLower(rec.URL)
		flagged := false
		for _, r := range e.rules {
			if !r.Match(lower) {
				continue
			}
			a.Score += r.Weight
			a.CategoryHits[r.Category]++
			flagged = true
		}
		if !flagged {
			continue
		}
		if _, ok := seen[rec.URL]; ok {
			continue
		}
		seen[rec.URL] = struct{}{}
		a.FlaggedSites = append(a.FlaggedSites, rec.URL)
	}

	a.Tier = TierFor(a.Score)
	return a
}
