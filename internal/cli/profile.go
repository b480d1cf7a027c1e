package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
)

// profileJSON is the JSON output structure for the profile command.
type profileJSON struct {
	UserDataDir  string `json:"user_data_dir"`
	Profile      string `json:"profile"`
	Dir          string `json:"dir"`
	HistoryPath  string `json:"history_path"`
	HistoryBytes int64  `json:"history_bytes"`
	CookiesPath  string `json:"cookies_path,omitempty"`
	CookiesBytes int64  `json:"cookies_bytes,omitempty"`
}

// Execute implements the go-flags Commander interface for ProfileCommand.
func (c *ProfileCommand) Execute(args []string) error {
	e, err := loadEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.close()

	return c.executeWith(os.Stdout, e)
}

// executeWith reports the discovered profile to w.
func (c *ProfileCommand) executeWith(w io.Writer, e *env) error {
	p, err := resolveProfile(e.cfg, storeFlags{})
	if err != nil {
		return err
	}

	out := profileJSON{
		UserDataDir:  p.UserDataDir,
		Profile:      p.Name,
		Dir:          p.Dir,
		HistoryPath:  p.HistoryPath,
		HistoryBytes: fileSize(p.HistoryPath),
		CookiesPath:  p.CookiesPath,
	}
	if p.CookiesPath != "" {
		out.CookiesBytes = fileSize(p.CookiesPath)
	}

	if e.json {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintln(w, "Browser Profile")
	fmt.Fprintln(w, "===============")
	fmt.Fprintf(w, "User data:     %s\n", out.UserDataDir)
	fmt.Fprintf(w, "Profile:       %s\n", out.Profile)
	fmt.Fprintf(w, "History:       %s (%s)\n", out.HistoryPath, humanize.Bytes(uint64(out.HistoryBytes)))
	if out.CookiesPath != "" {
		fmt.Fprintf(w, "Cookies:       %s (%s)\n", out.CookiesPath, humanize.Bytes(uint64(out.CookiesBytes)))
	} else {
		fmt.Fprintln(w, "Cookies:       not found")
	}
	return nil
}

// fileSize returns the size of path in bytes, or 0 when it cannot be read.
func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}
