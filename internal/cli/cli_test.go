package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	goflags "github.com/jessevdk/go-flags"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVersionFlag(t *testing.T) {
	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("0.1.0-test", []string{"--version"})
	})

	assert.NoError(t, err)
	assert.Contains(t, output, "histaudit 0.1.0-test")
}

func TestVersionOutputFormat(t *testing.T) {
	output := captureOutput(t, func() {
		_ = RunWithArgs("1.2.3", []string{"--version"})
	})

	assert.Equal(t, "histaudit 1.2.3", strings.TrimSpace(output))
}

func TestSubcommandsRecognized(t *testing.T) {
	for _, args := range [][]string{
		{"analyze"},
		{"analyze", "--no-export", "--no-charts", "--profile", "/tmp/p"},
		{"score", "--history", "/tmp/History"},
		{"export", "--export-dir", "/tmp/out"},
		{"profile"},
	} {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			parser, _, _ := buildParser("test")
			// Parse only; commands are executed with their env in other tests.
			parser.CommandHandler = func(_ goflags.Commander, _ []string) error { return nil }
			_, err := parser.ParseArgs(args)
			assert.NoError(t, err)
		})
	}
}

func TestUnknownSubcommandRejected(t *testing.T) {
	parser, _, _ := buildParser("test")
	parser.CommandHandler = func(_ goflags.Commander, _ []string) error { return nil }
	_, err := parser.ParseArgs([]string{"serve"})
	assert.Error(t, err)
}

func TestAnalyzeFlagsDefaults(t *testing.T) {
	p, _, c := buildParser("test")
	p.CommandHandler = func(_ goflags.Commander, _ []string) error { return nil }
	_, err := p.ParseArgs([]string{"analyze"})
	require.NoError(t, err)

	assert.Nil(t, c.Analyze.Top)
	assert.Nil(t, c.Analyze.Recent)
	assert.False(t, c.Analyze.NoExport)
	assert.False(t, c.Analyze.NoCharts)
}

func TestAnalyzeFlagsExplicit(t *testing.T) {
	p, _, c := buildParser("test")
	p.CommandHandler = func(_ goflags.Commander, _ []string) error { return nil }
	_, err := p.ParseArgs([]string{"analyze", "--top", "3", "--recent=0", "--no-charts"})
	require.NoError(t, err)

	require.NotNil(t, c.Analyze.Top)
	require.NotNil(t, c.Analyze.Recent)
	assert.Equal(t, 3, *c.Analyze.Top)
	assert.Equal(t, 0, *c.Analyze.Recent)
	assert.True(t, c.Analyze.NoCharts)
}

func TestGlobalFlags(t *testing.T) {
	parser, globals, _ := buildParser("test")
	parser.CommandHandler = func(_ goflags.Commander, _ []string) error { return nil }
	_, err := parser.ParseArgs([]string{"--json", "--verbose", "--config", "/tmp/test.yaml", "profile"})
	require.NoError(t, err)
	assert.True(t, globals.JSON)
	assert.True(t, globals.Verbose)
	assert.Equal(t, "/tmp/test.yaml", globals.Config)
}

func TestRunWithArgs_AnalyzeEndToEnd(t *testing.T) {
	dir := t.TempDir()
	profileDir := filepath.Join(dir, "Default")
	writeProfile(t, profileDir, true, riskyRows...)

	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(
		"export:\n  dir: "+filepath.Join(dir, "reports")+"\nreport:\n  charts: false\nlogging:\n  level: error\n"), 0644))

	var err error
	output := captureOutput(t, func() {
		err = RunWithArgs("test", []string{"--config", cfgPath, "analyze", "--profile", profileDir, "--top", "2"})
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Profile found: "+profileDir)
	assert.Contains(t, output, "Top 2 visited domains:")
	assert.Contains(t, output, "Overall Safety Status: HIGH RISK")
	assert.Contains(t, output, "Reports saved to: "+filepath.Join(dir, "reports"))
	assert.NotContains(t, output, "Browsing Safety Status")
	assert.FileExists(t, filepath.Join(dir, "reports", "browser_history_report.csv"))
}

func TestRunWithArgs_NegativeTopRejected(t *testing.T) {
	dir := t.TempDir()
	writeProfile(t, filepath.Join(dir, "Default"), false)
	cfgPath := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: error\n"), 0644))

	err := RunWithArgs("test", []string{"--config", cfgPath, "analyze",
		"--history", filepath.Join(dir, "Default", "History"), "--top=-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--top must not be negative")
}

func TestRunWithArgs_BadConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("logging:\n  level: loud\n"), 0644))

	err := RunWithArgs("test", []string{"--config", cfgPath, "profile"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
}
