// Package config manages menv configuration and filesystem paths.
//
// Configuration lives in ~/.menv/config.yaml and tunes where profile writes
// land, which variable names are treated as PATH-like lists, and the label
// of the login agent. Every setting has a default, so the file is optional.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Paths contains the filesystem paths used by menv.
type Paths struct {
	// Home is the user's home directory.
	Home string

	// Root is the base directory for menv data (default: ~/.menv)
	Root string

	// Config is the path to the config file. Overridable with MENV_CONFIG.
	Config string

	// LaunchAgents is the per-user launchd agent directory.
	LaunchAgents string

	// LegacyPlist is the pre-launchd environment property list honored by
	// old macOS releases.
	LegacyPlist string
}

// DefaultPaths returns the default paths for menv.
func DefaultPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user home directory: %w", err)
	}
	return PathsForHome(home), nil
}

// PathsForHome derives all paths from an explicit home directory. Tests use
// it to point menv at a scratch tree.
func PathsForHome(home string) *Paths {
	root := filepath.Join(home, ".menv")
	cfg := os.Getenv("MENV_CONFIG")
	if cfg == "" {
		cfg = filepath.Join(root, "config.yaml")
	}
	return &Paths{
		Home:         home,
		Root:         root,
		Config:       cfg,
		LaunchAgents: filepath.Join(home, "Library", "LaunchAgents"),
		LegacyPlist:  filepath.Join(home, ".MacOSX", "environment.plist"),
	}
}

// ProfileCandidates returns the shell profile files probed for variable
// declarations, most specific first. The order decides which declaration
// wins when several files declare the same name.
func ProfileCandidates(home string) []string {
	return []string{
		filepath.Join(home, ".zshenv"),
		filepath.Join(home, ".zprofile"),
		filepath.Join(home, ".zshrc"),
		filepath.Join(home, ".bash_profile"),
		filepath.Join(home, ".bashrc"),
		filepath.Join(home, ".profile"),
	}
}

// FishConfig returns the fish shell config file, probed separately because
// it uses a different declaration grammar.
func FishConfig(home string) string {
	return filepath.Join(home, ".config", "fish", "config.fish")
}

// Settings are the tunable knobs read from config.yaml.
type Settings struct {
	// ProfileTarget is the file new profile declarations are written to.
	// A leading ~ refers to the home directory.
	ProfileTarget string

	// PathVariables lists extra names treated as colon-delimited lists in
	// addition to PATH and *PATH-suffixed names.
	PathVariables []string

	// AgentLabel is the launchd label of the login agent that republishes
	// session variables after a reboot.
	AgentLabel string

	// Backups controls whether files are snapshotted before rewrites.
	Backups bool
}

// Default returns the built-in settings.
func Default() *Settings {
	return &Settings{
		ProfileTarget: "~/.profile",
		AgentLabel:    "com.menv.environment",
		Backups:       true,
	}
}

// Load reads settings from a config.yaml at path. If the file does not
// exist it returns Default() with no error. Missing keys retain their
// default values.
func Load(path string) (*Settings, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}

	// Unmarshal into a plain map so we can apply only the keys that are present.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if v, ok := raw["profile_write_target"].(string); ok && v != "" {
		cfg.ProfileTarget = v
	}
	if v, ok := raw["agent_label"].(string); ok && v != "" {
		cfg.AgentLabel = v
	}
	if v, ok := raw["backups"].(bool); ok {
		cfg.Backups = v
	}
	if list, ok := raw["path_variables"].([]any); ok {
		for _, item := range list {
			if name, ok := item.(string); ok && name != "" {
				cfg.PathVariables = append(cfg.PathVariables, name)
			}
		}
	}

	return cfg, nil
}
