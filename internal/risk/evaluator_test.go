package risk

import (
	"testing"

	"github.com/runnerr0/histaudit/internal/browser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recs(urls ...string) []browser.HistoryRecord {
	out := make([]browser.HistoryRecord, len(urls))
	for i, u := range urls {
		out[i] = browser.HistoryRecord{URL: u}
	}
	return out
}

func TestEvaluate_Empty(t *testing.T) {
	for _, in := range [][]browser.HistoryRecord{nil, {}} {
		a := NewEvaluator().Evaluate(in)
		assert.Equal(t, 0, a.Score)
		assert.Equal(t, TierSafe, a.Tier)
		assert.Empty(t, a.FlaggedSites)
		assert.NotNil(t, a.FlaggedSites)
	}
}

func TestEvaluate_CleanHistory(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("https://go.dev/doc/", "https://example.com/"))
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, TierSafe, a.Tier)
	assert.Empty(t, a.FlaggedSites)
}

func TestEvaluate_MultipleWordsInOneCategoryCountOnce(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://secure-login.xyz/reset"))

	// Host TLD (+2) plus one phishing match for login/secure/reset (+5).
	assert.Equal(t, 7, a.Score)
	assert.Equal(t, TierHigh, a.Tier)
	assert.Equal(t, []string{"http://secure-login.xyz/reset"}, a.FlaggedSites)
	assert.Equal(t, 1, a.CategoryHits[CategoryPhishing])
	assert.Equal(t, 1, a.CategoryHits[CategorySuspiciousTLD])
}

func TestEvaluate_URLSuffixAndPhishingAccumulate(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://example.com/reset?next=verify.xyz"))
	assert.Equal(t, 7, a.Score)
	assert.Equal(t, TierHigh, a.Tier)
	assert.Len(t, a.FlaggedSites, 1)
}

func TestEvaluate_DuplicateRowsAccumulate(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://crack.top/keygen", "http://crack.top/keygen"))

	// Each row: TLD (+2) + piracy (+3) = 5.
	assert.Equal(t, 10, a.Score)
	assert.Equal(t, TierHigh, a.Tier)
	assert.Equal(t, []string{"http://crack.top/keygen"}, a.FlaggedSites)
	assert.Equal(t, 2, a.CategoryHits[CategoryPiracy])
	assert.Equal(t, 2, a.CategoryHits[CategorySuspiciousTLD])
}

func TestEvaluate_SingleRowBelowHighTier(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://crack.top/keygen"))
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, TierModerate, a.Tier)
}

func TestEvaluate_AllCategories(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://bank-torrent-xxx.shop"))
	assert.Equal(t, 2+5+3+3, a.Score)
	assert.Equal(t, map[Category]int{
		CategorySuspiciousTLD: 1,
		CategoryPhishing:      1,
		CategoryPiracy:        1,
		CategoryAdult:         1,
	}, a.CategoryHits)
}

func TestEvaluate_CaseInsensitiveKeepsOriginalURL(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("HTTPS://Example.COM/Torrent/Latest.TOP"))
	assert.Equal(t, 5, a.Score)
	assert.Equal(t, []string{"HTTPS://Example.COM/Torrent/Latest.TOP"}, a.FlaggedSites)
}

func TestEvaluate_MatchesInPathAndQuery(t *testing.T) {
	a := NewEvaluator().Evaluate(recs(
		"https://news.example.com/story?ref=login",
		"https://docs.example.com/workshop",
	))
	// "login" in the query (+5), "workshop" ends in "shop" (+2).
	assert.Equal(t, 7, a.Score)
	assert.Len(t, a.FlaggedSites, 2)
}

func TestEvaluate_SuffixInsidePathDoesNotMatch(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://example.com/files.xyz/"))
	assert.Equal(t, 0, a.Score)
}

func TestEvaluate_HostSuffixWithPath(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://example.xyz/", "https://example.cyou:8443/home"))
	assert.Equal(t, 4, a.Score)
	assert.Equal(t, 2, a.CategoryHits[CategorySuspiciousTLD])
}

func TestEvaluate_FlaggedSitesFirstSeenOrder(t *testing.T) {
	a := NewEvaluator().Evaluate(recs(
		"http://b.example/porn",
		"https://go.dev/",
		"http://a.example/login",
		"http://b.example/porn",
	))
	assert.Equal(t, []string{"http://b.example/porn", "http://a.example/login"}, a.FlaggedSites)
}

func TestEvaluate_NonMatchingRecordChangesNothing(t *testing.T) {
	base := recs("http://crack.top/keygen", "http://a.example/verify")
	e := NewEvaluator()
	before := e.Evaluate(base)
	after := e.Evaluate(append(base, browser.HistoryRecord{URL: "https://go.dev/"}))

	assert.Equal(t, before.Score, after.Score)
	assert.Equal(t, before.FlaggedSites, after.FlaggedSites)
	assert.Equal(t, before.Tier, after.Tier)
}

func TestEvaluate_ScoreMonotonic(t *testing.T) {
	urls := []string{
		"http://a.xyz", "https://go.dev/", "http://b.example/login",
		"http://c.example/serial", "http://c.example/serial", "http://adult.example",
	}
	e := NewEvaluator()
	prev := 0
	for i := range urls {
		a := e.Evaluate(recs(urls[:i+1]...))
		require.GreaterOrEqual(t, a.Score, prev)
		prev = a.Score
	}
}

func TestEvaluate_ModerateTier(t *testing.T) {
	a := NewEvaluator().Evaluate(recs("http://example.click"))
	assert.Equal(t, 2, a.Score)
	assert.Equal(t, TierModerate, a.Tier)
}

func TestEvaluate_CustomRules(t *testing.T) {
	e := NewEvaluator(Rule{Category: "casino", Match: ContainsAny("casino"), Weight: 4})
	a := e.Evaluate(recs("http://casino.example/login", "http://example.xyz"))
	assert.Equal(t, 4, a.Score)
	assert.Equal(t, []string{"http://casino.example/login"}, a.FlaggedSites)
}

func TestMatchers(t *testing.T) {
	assert.True(t, HasSuffix("top")("http://a.top"))
	assert.True(t, HasSuffix("top")("http://a.top/page"))
	assert.True(t, HasSuffix("top")("http://a.com/desktop"))
	assert.False(t, HasSuffix("top")("http://a.com/top/page"))
	assert.True(t, HasSuffix("top")("no scheme ends in top"))
	assert.False(t, HasSuffix()("anything"))
	assert.True(t, ContainsAny("bank")("http://mybank.example"))
	assert.False(t, ContainsAny("bank")("http://example.com"))
	assert.False(t, ContainsAny()("anything"))
}

func TestDefaultRulesShape(t *testing.T) {
	rules := DefaultRules()
	require.Len(t, rules, 4)

	weights := map[Category]int{}
	for _, r := range rules {
		weights[r.Category] = r.Weight
	}
	assert.Equal(t, map[Category]int{
		CategorySuspiciousTLD: 2,
		CategoryPhishing:      5,
		CategoryPiracy:        3,
		CategoryAdult:         3,
	}, weights)
}
