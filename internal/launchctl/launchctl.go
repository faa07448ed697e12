// Package launchctl wraps the launchd control tool for user-session
// environment operations: getenv, setenv, unsetenv, and the export listing.
package launchctl

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a launchctl subcommand and returns its stdout. Tests
// substitute a fake; production code uses the exec-backed runner.
type Runner interface {
	Run(ctx context.Context, args ...string) (string, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "launchctl", args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("launchctl %s: %s: %w", args[0], msg, err)
		}
		return "", fmt.Errorf("launchctl %s: %w", args[0], err)
	}
	return stdout.String(), nil
}

// Client issues environment commands against the user's launchd session.
type Client struct {
	runner Runner
}

// New returns a client backed by the launchctl binary.
func New() *Client {
	return &Client{runner: execRunner{}}
}

// NewWithRunner returns a client over a custom runner.
func NewWithRunner(r Runner) *Client {
	return &Client{runner: r}
}

// Getenv reads one variable from the session environment. launchd prints an
// empty result for unset names, so a variable set to the empty string is
// indistinguishable from an absent one; it is reported as absent.
func (c *Client) Getenv(ctx context.Context, name string) (string, bool, error) {
	out, err := c.runner.Run(ctx, "getenv", name)
	if err != nil {
		return "", false, err
	}
	value := strings.TrimSuffix(out, "\n")
	if value == "" {
		return "", false, nil
	}
	return value, true, nil
}

// Setenv publishes a variable to the session environment. Applications
// launched afterwards inherit it; already-running processes do not.
func (c *Client) Setenv(ctx context.Context, name, value string) error {
	_, err := c.runner.Run(ctx, "setenv", name, value)
	return err
}

// Unsetenv removes a variable from the session environment.
func (c *Client) Unsetenv(ctx context.Context, name string) error {
	_, err := c.runner.Run(ctx, "unsetenv", name)
	return err
}

// Export lists the whole session environment. The export subcommand prints
// Bourne-style lines of the form
//
//	NAME=VALUE; export NAME;
//
// which are parsed back into a name-to-value map. Lines that do not match
// the shape are skipped.
func (c *Client) Export(ctx context.Context) (map[string]string, error) {
	out, err := c.runner.Run(ctx, "export")
	if err != nil {
		return nil, err
	}

	env := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		name, value, ok := parseExportLine(line)
		if !ok {
			continue
		}
		env[name] = value
	}
	return env, nil
}

// parseExportLine unpacks one `NAME=VALUE; export NAME;` line. The trailing
// export clause is located from the right so values containing the literal
// text "; export " cannot derail the split, and the two name occurrences
// must agree.
func parseExportLine(line string) (string, string, bool) {
	line = strings.TrimSuffix(strings.TrimSpace(line), ";")
	idx := strings.LastIndex(line, "; export ")
	if idx < 0 {
		return "", "", false
	}
	assignment := line[:idx]
	exported := line[idx+len("; export "):]

	eq := strings.IndexByte(assignment, '=')
	if eq <= 0 {
		return "", "", false
	}
	name := assignment[:eq]
	if name != exported {
		return "", "", false
	}

	value := assignment[eq+1:]
	if len(value) >= 2 && value[0] == '"' && value[len(value)-1] == '"' {
		value = value[1 : len(value)-1]
	}
	return name, value, true
}
