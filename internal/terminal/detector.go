// Package terminal provides helpers for detecting terminal capabilities and
// determining whether diagnostic output should be colored or kept plain for
// CI and pipe consumers.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables.
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"GITLAB_CI",
	"JENKINS_URL",
	"BUILDKITE",
	"CIRCLECI",
	"TRAVIS",
}

// Detector reports terminal properties of the current process.
type Detector struct {
	lookupEnv func(string) (string, bool)
	isTerm    func(fd int) bool
}

// NewDetector creates a detector backed by the real environment and tty.
func NewDetector() *Detector {
	return &Detector{
		lookupEnv: os.LookupEnv,
		isTerm:    term.IsTerminal,
	}
}

// IsTerminal returns true if stdout is attached to a terminal.
func (d *Detector) IsTerminal() bool {
	return d.isTerm(int(os.Stdout.Fd()))
}

// IsStdinTerminal returns true if stdin is attached to a terminal. The CLI
// uses this to warn when it is about to block reading a document from an
// interactive session.
func (d *Detector) IsStdinTerminal() bool {
	return d.isTerm(int(os.Stdin.Fd()))
}

// IsCIEnvironment returns true if a known CI environment variable is set.
func (d *Detector) IsCIEnvironment() bool {
	for _, name := range ciEnvVars {
		if v, ok := d.lookupEnv(name); ok && v != "" && v != "false" {
			return true
		}
	}
	return false
}

// UseColor decides whether diagnostic output should be colored: only when
// stdout is a terminal, NO_COLOR is unset, and the process is not in CI.
func (d *Detector) UseColor() bool {
	if v, ok := d.lookupEnv("NO_COLOR"); ok && v != "" {
		return false
	}
	return d.IsTerminal() && !d.IsCIEnvironment()
}
