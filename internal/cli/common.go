package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/thgossler/menv/internal/backup"
	"github.com/thgossler/menv/internal/config"
	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/fsutil"
	"github.com/thgossler/menv/internal/launchctl"
	"github.com/thgossler/menv/internal/logging"
	"github.com/thgossler/menv/internal/resolve"
	"github.com/thgossler/menv/internal/stores"
)

// newEngine creates an engine wired to the current user's real stores.
func newEngine() (*engine.Engine, error) {
	paths, err := config.DefaultPaths()
	if err != nil {
		return nil, fmt.Errorf("failed to get config paths: %w", err)
	}

	settings, err := config.Load(paths.Config)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	log := logging.New(verbose, noColor)
	fs := fsutil.NewRealFS()

	var backups *backup.Manager
	if settings.Backups {
		backups = backup.NewManager(fs)
	}

	set := &stores.Set{
		Session:    stores.NewSessionStore(launchctl.New()),
		LoginAgent: stores.NewLaunchAgentStore(fs, backups, paths.LaunchAgents, settings.AgentLabel),
		Profiles:   stores.NewProfileStore(fs, backups, paths.Home, settings.ProfileTarget, log),
		Legacy:     stores.NewLegacyStore(fs, backups, paths.LegacyPlist),
		Process:    stores.NewProcessStore(os.Environ()),
	}
	resolver := resolve.New(set.Managed(), set.Process, log)

	return engine.New(set, resolver, settings, nil, log), nil
}

// outputJSON outputs a value as JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// displayPath renders a file path with the home directory abbreviated to ~.
func displayPath(path string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return fsutil.ContractHome(path, home)
}
