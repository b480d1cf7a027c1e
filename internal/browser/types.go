package browser

import "time"

// HistoryRecord is one row of the browser's urls table. URL is never empty.
type HistoryRecord struct {
	URL           string
	Title         string
	VisitCount    int64
	LastVisitTime *time.Time // nil when the browser never recorded a visit time
}

// CookieRecord is one row of the browser's cookies table.
type CookieRecord struct {
	HostKey      string
	Name         string
	Value        string
	CreationTime *time.Time
	ExpiresTime  *time.Time
}

// Profile describes a discovered browser profile and its store paths.
type Profile struct {
	UserDataDir string
	Dir         string
	Name        string
	HistoryPath string
	CookiesPath string // empty when the profile has no cookie store
}
