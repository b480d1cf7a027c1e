package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Browser: BrowserConfig{
			UserDataDir: "",
			Profile:     "",
		},
		Report: ReportConfig{
			Top:          8,
			Recent:       10,
			FlaggedLimit: 10,
			Charts:       true,
		},
		Export: ExportConfig{
			Enabled: true,
			Dir:     "reports",
		},
		Snapshot: SnapshotConfig{
			Dir:  "",
			Keep: false,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}
