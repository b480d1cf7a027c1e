package risk

import "fmt"

// Tier is the coarse classification derived from a score.
type Tier int

const (
	TierSafe Tier = iota
	TierModerate
	TierHigh
)

// moderateCeiling is the highest score still classified as moderate.
const moderateCeiling = 5

// TierFor classifies a score: 0 is safe, 1 through 5 moderate, above 5 high.
func TierFor(score int) Tier {
	switch {
	case score <= 0:
		return TierSafe
	case score <= moderateCeiling:
		return TierModerate
	default:
		return TierHigh
	}
}

func (t Tier) String() string {
	switch t {
	case TierSafe:
		return "SAFE"
	case TierModerate:
		return "MODERATE"
	case TierHigh:
		return "HIGH"
	default:
		return "UNKNOWN"
	}
}

// Label is the human-facing name used in reports and charts.
func (t Tier) Label() string {
	switch t {
	case TierSafe:
		return "Safe"
	case TierModerate:
		return "Moderate Risk"
	case TierHigh:
		return "High Risk"
	default:
		return "Unknown"
	}
}

// Tiers lists every tier in ascending order of risk.
func Tiers() []Tier {
	return []Tier{TierSafe, TierModerate, TierHigh}
}

// MarshalText renders the tier as its String form, so JSON output carries
// "SAFE" rather than an integer.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Tier) UnmarshalText(text []byte) error {
	for _, c := range Tiers() {
		if c.String() == string(text) {
			*t = c
			return nil
		}
	}
	return fmt.Errorf("unknown tier %q", text)
}
