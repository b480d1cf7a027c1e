package cli

import (
	"fmt"
	"os"

	goflags "github.com/jessevdk/go-flags"
)

// commands holds references to all subcommand structs for inspection/testing.
type commands struct {
	Analyze *AnalyzeCommand
	Score   *ScoreCommand
	Export  *ExportCommand
	Profile *ProfileCommand
}

// buildParser constructs the go-flags parser with all subcommands registered.
func buildParser(version string) (*goflags.Parser, *GlobalFlags, *commands) {
	var globals GlobalFlags

	parser := goflags.NewParser(&globals, goflags.Default)
	parser.Name = "histaudit"
	parser.LongDescription = "Local browser history and cookie audit with a heuristic browsing risk score."

	cmds := &commands{
		Analyze: &AnalyzeCommand{globals: &globals, version: version},
		Score:   &ScoreCommand{globals: &globals, version: version},
		Export:  &ExportCommand{globals: &globals, version: version},
		Profile: &ProfileCommand{globals: &globals, version: version},
	}

	parser.AddCommand("analyze", "Run the full audit", "Extract history and cookies, print top domains, recent visits and the safety report, then export CSVs and draw charts.", cmds.Analyze)
	parser.AddCommand("score", "Print the safety report", "Score the browsing history and print only the safety report.", cmds.Score)
	parser.AddCommand("export", "Write CSV reports", "Extract history and cookies and write them as CSV files.", cmds.Export)
	parser.AddCommand("profile", "Show the discovered profile", "Show the user data directory, the chosen profile and its store files.", cmds.Profile)

	return parser, &globals, cmds
}

// Run is the main entry point for the histaudit CLI using os.Args.
func Run(version string) error {
	return RunWithArgs(version, nil)
}

// RunWithArgs parses the given args (or os.Args if nil) and executes the matched subcommand.
func RunWithArgs(version string, args []string) error {
	// Handle --version before parser (go-flags requires a subcommand, but
	// --version is valid without one).
	checkArgs := args
	if checkArgs == nil {
		checkArgs = os.Args[1:]
	}
	for _, arg := range checkArgs {
		if arg == "--version" {
			fmt.Printf("histaudit %s\n", version)
			return nil
		}
		if arg == "--" {
			break
		}
	}

	parser, _, _ := buildParser(version)

	var err error
	if args != nil {
		_, err = parser.ParseArgs(args)
	} else {
		_, err = parser.Parse()
	}

	if err != nil {
		if flagsErr, ok := err.(*goflags.Error); ok {
			if flagsErr.Type == goflags.ErrHelp {
				return nil
			}
		}
		return err
	}

	return nil
}
