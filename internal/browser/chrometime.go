package browser

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// Chromium stores times as microseconds since 1601-01-01 UTC.
const unixEpochDiffMicros = int64(11644473600000000)

// Valid raw values map onto calendar years 0001 through 9999.
var (
	minChromeMicros = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC).UnixMicro() + unixEpochDiffMicros
	maxChromeMicros = time.Date(9999, 12, 31, 23, 59, 59, 999999000, time.UTC).UnixMicro() + unixEpochDiffMicros
)

// ChromeTime converts a browser-native timestamp into UTC calendar time.
// Zero means "never set" and values outside the calendar range cannot be
// represented; both yield nil.
func ChromeTime(raw int64) *time.Time {
	if raw == 0 || raw < minChromeMicros || raw > maxChromeMicros {
		return nil
	}
	t := time.UnixMicro(raw - unixEpochDiffMicros).UTC()
	return &t
}

// ParseChromeTime converts a loosely typed column value (as returned by the
// SQLite driver) into calendar time. Anything that is not an integral number
// yields nil.
func ParseChromeTime(v any) *time.Time {
	raw, ok := chromeMicros(v)
	if !ok {
		return nil
	}
	return ChromeTime(raw)
}

func chromeMicros(v any) (int64, bool) {
	switch x := v.(type) {
	case nil:
		return 0, false
	case int64:
		return x, true
	case int:
		return int64(x), true
	case int32:
		return int64(x), true
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x != math.Trunc(x) {
			return 0, false
		}
		if x < math.MinInt64 || x >= math.MaxInt64 {
			return 0, false
		}
		return int64(x), true
	case []byte:
		return parseInt64(string(x))
	case string:
		return parseInt64(x)
	default:
		return 0, false
	}
}

func parseInt64(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
