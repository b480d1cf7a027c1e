package cli

// GlobalFlags holds flags available to all subcommands.
type GlobalFlags struct {
	Config  string `long:"config" description:"Path to config file" default:""`
	JSON    bool   `long:"json" description:"Output in JSON format"`
	Verbose bool   `long:"verbose" description:"Enable verbose output"`
	Version bool   `long:"version" description:"Show version and exit"`
}

// AnalyzeCommand extracts history and cookies, scores them and prints the report.
type AnalyzeCommand struct {
	Top       *int   `long:"top" description:"Number of top domains to list (default from config)"`
	Recent    *int   `long:"recent" description:"Number of recent visits to list (default from config)"`
	Profile   string `long:"profile" description:"Profile directory to analyse"`
	History   string `long:"history" description:"Path to a History store (overrides profile discovery)"`
	Cookies   string `long:"cookies" description:"Path to a Cookies store"`
	ExportDir string `long:"export-dir" description:"Directory for CSV reports"`
	NoExport  bool   `long:"no-export" description:"Skip writing CSV reports"`
	NoCharts  bool   `long:"no-charts" description:"Skip text charts"`

	globals *GlobalFlags
	version string
}

// ScoreCommand prints the safety report only.
type ScoreCommand struct {
	Profile string `long:"profile" description:"Profile directory to analyse"`
	History string `long:"history" description:"Path to a History store (overrides profile discovery)"`

	globals *GlobalFlags
	version string
}

// ExportCommand writes the CSV reports without printing the analysis.
type ExportCommand struct {
	Profile   string `long:"profile" description:"Profile directory to analyse"`
	History   string `long:"history" description:"Path to a History store (overrides profile discovery)"`
	Cookies   string `long:"cookies" description:"Path to a Cookies store"`
	ExportDir string `long:"export-dir" description:"Directory for CSV reports"`

	globals *GlobalFlags
	version string
}

// ProfileCommand shows which profile and stores would be analysed.
type ProfileCommand struct {
	globals *GlobalFlags
	version string
}
