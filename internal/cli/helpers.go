package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/runnerr0/histaudit/internal/audit"
	"github.com/runnerr0/histaudit/internal/browser"
	"github.com/runnerr0/histaudit/internal/config"
	"github.com/runnerr0/histaudit/internal/logging"
)

// env is what every command needs besides its own flags.
type env struct {
	cfg    *config.Config
	logger *zap.Logger
	json   bool
}

// loadEnv reads the config (creating the default file on first use) and
// builds the logger.
func loadEnv(globals *GlobalFlags) (*env, error) {
	var (
		cfg *config.Config
		err error
	)
	if globals != nil && globals.Config != "" {
		path, perr := config.ExpandPath(globals.Config)
		if perr != nil {
			return nil, perr
		}
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrCreate()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	verbose := globals != nil && globals.Verbose
	logger, err := logging.New(cfg.Logging, verbose)
	if err != nil {
		return nil, err
	}

	return &env{cfg: cfg, logger: logger, json: globals != nil && globals.JSON}, nil
}

func (e *env) close() {
	_ = e.logger.Sync()
}

// profileNotFoundError is returned when no profile could be located.
type profileNotFoundError struct {
	Dir string
}

func (e *profileNotFoundError) Error() string {
	return "Chrome profile not found at " + e.Dir
}

func (e *profileNotFoundError) Unwrap() error {
	return browser.ErrProfileNotFound
}

// storeFlags are the per-command overrides for locating the stores.
type storeFlags struct {
	profileDir  string
	historyPath string
	cookiesPath string
}

// resolveProfile picks the stores to read. An explicit history path wins,
// then an explicit profile directory, then the configured profile, then
// discovery under the user data directory.
func resolveProfile(cfg *config.Config, sf storeFlags) (browser.Profile, error) {
	if sf.historyPath != "" {
		history, err := config.ExpandPath(sf.historyPath)
		if err != nil {
			return browser.Profile{}, err
		}
		dir := filepath.Dir(history)
		p := browser.Profile{
			Dir:         dir,
			Name:        filepath.Base(dir),
			HistoryPath: history,
		}
		if sf.cookiesPath != "" {
			if p.CookiesPath, err = config.ExpandPath(sf.cookiesPath); err != nil {
				return browser.Profile{}, err
			}
		}
		return p, nil
	}

	userDataDir := cfg.Browser.UserDataDir
	if userDataDir == "" {
		userDataDir = browser.DefaultUserDataDir()
	}
	userDataDir, err := config.ExpandPath(userDataDir)
	if err != nil {
		return browser.Profile{}, err
	}

	var (
		p      browser.Profile
		lookIn string
	)
	switch {
	case sf.profileDir != "":
		if lookIn, err = config.ExpandPath(sf.profileDir); err != nil {
			return browser.Profile{}, err
		}
		p, err = browser.ProfileFromDir(lookIn)
	case cfg.Browser.Profile != "":
		lookIn = filepath.Join(userDataDir, cfg.Browser.Profile)
		p, err = browser.ProfileFromDir(lookIn)
	default:
		lookIn = userDataDir
		p, err = browser.FindProfile(userDataDir)
	}
	if err != nil {
		if errors.Is(err, browser.ErrProfileNotFound) {
			return browser.Profile{}, &profileNotFoundError{Dir: lookIn}
		}
		return browser.Profile{}, err
	}

	if sf.cookiesPath != "" {
		if p.CookiesPath, err = config.ExpandPath(sf.cookiesPath); err != nil {
			return browser.Profile{}, err
		}
	}
	return p, nil
}

// auditInput maps a profile and the snapshot settings to a pipeline input.
func auditInput(cfg *config.Config, p browser.Profile) (audit.Input, error) {
	snapDir, err := config.ExpandPath(cfg.Snapshot.Dir)
	if err != nil {
		return audit.Input{}, err
	}
	return audit.Input{
		HistoryPath:   p.HistoryPath,
		CookiesPath:   p.CookiesPath,
		SnapshotDir:   snapDir,
		KeepSnapshots: cfg.Snapshot.Keep && snapDir != "",
	}, nil
}

// historyError separates a missing history store from one that exists but
// cannot be read.
func historyError(p browser.Profile, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("history store not found: %s: %w", p.HistoryPath, err)
	}
	return fmt.Errorf("read history store %s: %w", p.HistoryPath, err)
}

// nonNegative returns the flag value when set, else the configured default.
func nonNegative(name string, flag *int, fallback int) (int, error) {
	n := fallback
	if flag != nil {
		n = *flag
	}
	if n < 0 {
		return 0, fmt.Errorf("--%s must not be negative (got %d)", name, n)
	}
	return n, nil
}
