package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/runnerr0/histaudit/internal/risk"
)

// ChartDomains is how many domains the bar chart shows by default.
const ChartDomains = 8

const barWidth = 40

// Chart is a text rendering of report data. Charts that need data say so;
// callers skip them when HasData is false instead of rendering an empty plot.
type Chart interface {
	Title() string
	RequiresData() bool
	HasData() bool
	Render(w io.Writer) error
}

// Renderable reports whether c should be drawn.
func Renderable(c Chart) bool {
	return !c.RequiresData() || c.HasData()
}

// DomainBarChart draws a horizontal bar per domain.
type DomainBarChart struct {
	Counts []DomainCount
}

func (c DomainBarChart) Title() string {
	return fmt.Sprintf("Top %d Most Visited Domains", len(c.Counts))
}

func (c DomainBarChart) RequiresData() bool { return true }

func (c DomainBarChart) HasData() bool { return len(c.Counts) > 0 }

func (c DomainBarChart) Render(w io.Writer) error {
	if !c.HasData() {
		return fmt.Errorf("domain chart: no data")
	}

	maxCount, labelWidth := 0, 0
	for _, d := range c.Counts {
		if d.Count > maxCount {
			maxCount = d.Count
		}
		if len(d.Domain) > labelWidth {
			labelWidth = len(d.Domain)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", c.Title())
	for _, d := range c.Counts {
		n := d.Count * barWidth / maxCount
		if n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%-*s | %s %d\n", labelWidth, d.Domain, strings.Repeat("█", n), d.Count)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// TierChart shows the run's single safety tier as a share of all tiers.
type TierChart struct {
	Tier risk.Tier
}

func (c TierChart) Title() string { return "Browsing Safety Status" }

func (c TierChart) RequiresData() bool { return false }

func (c TierChart) HasData() bool { return true }

func (c TierChart) Render(w io.Writer) error {
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", c.Title())
	for _, t := range risk.Tiers() {
		pct, n := 0.0, 0
		if t == c.Tier {
			pct, n = 100.0, barWidth
		}
		fmt.Fprintf(&b, "%-13s | %-*s %5.1f%%\n", t.Label(), barWidth, strings.Repeat("█", n), pct)
	}
	_, err := io.WriteString(w, b.String())
	return err
}
