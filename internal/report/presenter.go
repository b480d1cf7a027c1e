package report

import (
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/runnerr0/histaudit/internal/browser"
	"github.com/runnerr0/histaudit/internal/risk"
)

// TimeLayout is the console rendering of visit times.
const TimeLayout = "2006-01-02 15:04:05"

// DefaultFlaggedLimit caps how many flagged sites the safety block lists.
const DefaultFlaggedLimit = 10

var bareDomainRe = regexp.MustCompile(`^(?:https?://)?(?:www\.)?([^/]+)`)

// DomainCount pairs a bare domain with the number of history records for it.
type DomainCount struct {
	Domain string `json:"domain"`
	Count  int    `json:"count"`
}

// BareDomain strips an http(s) scheme and a leading "www." and returns
// everything up to the first slash, or "unknown" when nothing remains.
func BareDomain(rawURL string) string {
	m := bareDomainRe.FindStringSubmatch(rawURL)
	if m == nil || m[1] == "" {
		return "unknown"
	}
	return m[1]
}

// TopDomains returns the n domains with the most records. Equal counts keep
// the order in which the domains were first encountered.
func TopDomains(records []browser.HistoryRecord, n int) []DomainCount {
	if n <= 0 {
		return []DomainCount{}
	}

	index := make(map[string]int)
	var counts []DomainCount
	for _, rec := range records {
		d := BareDomain(rec.URL)
		if i, ok := index[d]; ok {
			counts[i].Count++
			continue
		}
		index[d] = len(counts)
		counts = append(counts, DomainCount{Domain: d, Count: 1})
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	if counts == nil {
		counts = []DomainCount{}
	}
	return counts
}

// RecentVisits returns the n most recently visited records. Records without
// a visit time sort after every dated record and keep their input order.
func RecentVisits(records []browser.HistoryRecord, n int) []browser.HistoryRecord {
	if n <= 0 {
		return []browser.HistoryRecord{}
	}
	sorted := make([]browser.HistoryRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i].LastVisitTime, sorted[j].LastVisitTime
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// FormatTime renders a timestamp for the console, or "unknown".
func FormatTime(t *time.Time) string {
	if t == nil {
		return "unknown"
	}
	return t.UTC().Format(TimeLayout)
}

// Presenter writes the human-readable report sections.
type Presenter struct {
	w            io.Writer
	flaggedLimit int
}

// NewPresenter returns a Presenter writing to w. A non-positive
// flaggedLimit falls back to DefaultFlaggedLimit.
func NewPresenter(w io.Writer, flaggedLimit int) *Presenter {
	if flaggedLimit <= 0 {
		flaggedLimit = DefaultFlaggedLimit
	}
	return &Presenter{w: w, flaggedLimit: flaggedLimit}
}

// Status prints a single status line such as "Profile found: ...".
func (p *Presenter) Status(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// TopDomains prints a numbered top-domain list.
func (p *Presenter) TopDomains(domains []DomainCount, n int) {
	fmt.Fprintf(p.w, "\nTop %d visited domains:\n", n)
	if len(domains) == 0 {
		fmt.Fprintln(p.w, "  (no history records)")
		return
	}
	for i, d := range domains {
		fmt.Fprintf(p.w, "%d. %s \u2014 %s visits\n", i+1, d.Domain, humanize.Comma(int64(d.Count)))
	}
}

// RecentVisits prints the recent visit list.
func (p *Presenter) RecentVisits(visits []browser.HistoryRecord) {
	fmt.Fprintln(p.w, "\nRecent visits:")
	if len(visits) == 0 {
		fmt.Fprintln(p.w, "  (no history records)")
		return
	}
	for _, v := range visits {
		fmt.Fprintf(p.w, "- %s | %s (visits: %s)\n", FormatTime(v.LastVisitTime), v.URL, humanize.Comma(v.VisitCount))
	}
}

// SafetyReport prints the bordered USER SAFETY REPORT block.
func (p *Presenter) SafetyReport(a risk.Assessment) {
	fmt.Fprintln(p.w, "\n========= USER SAFETY REPORT =========")
	fmt.Fprintf(p.w, "Browsing Risk Score: %s\n", humanize.Comma(int64(a.Score)))
	fmt.Fprintf(p.w, "Overall Safety Status: %s\n", strings.ToUpper(a.Tier.Label()))

	if len(a.FlaggedSites) == 0 {
		fmt.Fprintln(p.w, "No risky sites detected")
	} else {
		fmt.Fprintln(p.w, "\nPotentially Risky Sites Visited:")
		sites := a.FlaggedSites
		if len(sites) > p.flaggedLimit {
			sites = sites[:p.flaggedLimit]
		}
		for _, s := range sites {
			fmt.Fprintf(p.w, " - %s\n", s)
		}
		if more := len(a.FlaggedSites) - len(sites); more > 0 {
			fmt.Fprintf(p.w, "   ... and %d more\n", more)
		}
	}

	fmt.Fprintln(p.w, "======================================")
}

// Summary is everything a full run produced, in the shape used for JSON.
type Summary struct {
	Profile          string        `json:"profile"`
	HistoryRecords   int           `json:"history_records"`
	CookieRecords    int           `json:"cookie_records"`
	CookiesAvailable bool          `json:"cookies_available"`
	TopDomains       []DomainCount `json:"top_domains"`
	RecentVisits     []visitJSON   `json:"recent_visits"`
	Safety           safetyJSON    `json:"safety"`
	Export           *ExportResult `json:"export,omitempty"`
}

type visitJSON struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	VisitCount    int64  `json:"visit_count"`
	LastVisitTime string `json:"last_visit_time,omitempty"`
}

type safetyJSON struct {
	Score        int                   `json:"score"`
	Tier         risk.Tier             `json:"tier"`
	FlaggedSites []string              `json:"flagged_sites"`
	CategoryHits map[risk.Category]int `json:"category_hits"`
}

// NewSummary assembles a Summary from pipeline outputs.
func NewSummary(profile string, history []browser.HistoryRecord, cookies []browser.CookieRecord, cookiesAvailable bool, top []DomainCount, recent []browser.HistoryRecord, a risk.Assessment) Summary {
	s := Summary{
		Profile:          profile,
		HistoryRecords:   len(history),
		CookieRecords:    len(cookies),
		CookiesAvailable: cookiesAvailable,
		TopDomains:       top,
		RecentVisits:     make([]visitJSON, len(recent)),
		Safety: safetyJSON{
			Score:        a.Score,
			Tier:         a.Tier,
			FlaggedSites: a.FlaggedSites,
			CategoryHits: a.CategoryHits,
		},
	}
	for i, r := range recent {
		v := visitJSON{URL: r.URL, Title: r.Title, VisitCount: r.VisitCount}
		if r.LastVisitTime != nil {
			v.LastVisitTime = r.LastVisitTime.UTC().Format(time.RFC3339)
		}
		s.RecentVisits[i] = v
	}
	return s
}

// JSON writes the summary as indented JSON.
func (p *Presenter) JSON(s Summary) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
