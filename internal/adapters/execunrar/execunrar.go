// Package execunrar provides an unrar client adapter using exec.Command.
package execunrar

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/8ware/unrarctl/internal/ports"
)

// ExecUnrar implements ports.Unrar using exec.Command.
type ExecUnrar struct {
	// unrarPath is the path to the unrar binary. Defaults to "unrar".
	unrarPath string
}

// Option is a functional option for configuring ExecUnrar.
type Option func(*ExecUnrar)

// WithUnrarPath sets a custom path to the unrar binary.
func WithUnrarPath(path string) Option {
	return func(u *ExecUnrar) {
		u.unrarPath = path
	}
}

// New creates a new ExecUnrar adapter.
func New(opts ...Option) *ExecUnrar {
	u := &ExecUnrar{
		unrarPath: "unrar",
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// List runs "unrar vb" over the archive, producing one member path per line.
// The -idc switch suppresses the copyright banner so the output is bare paths.
func (u *ExecUnrar) List(file, password string) (string, int, error) {
	args := []string{"vb", passwordSwitch(password), "-idc", file}
	return u.run(args)
}

// Extract runs "unrar x" (full paths) or "unrar e" (flattened) over the
// archive. A non-empty dest is appended with a trailing separator so unrar
// treats it as a directory rather than a member filter.
func (u *ExecUnrar) Extract(file, password, dest string, overwrite, flatten bool) (string, int, error) {
	command := "x"
	if flatten {
		command = "e"
	}
	args := []string{command, passwordSwitch(password), overwriteSwitch(overwrite), file}
	if dest != "" {
		args = append(args, dest+string(os.PathSeparator))
	}
	return u.run(args)
}

// run executes the binary and folds the process outcome into a wait status.
// The status keeps the wait(2) encoding (exit code << 8) so callers see the
// same numeric values the tool has always been known by.
func (u *ExecUnrar) run(args []string) (string, int, error) {
	cmd := exec.Command(u.unrarPath, args...)

	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode() << 8, nil
		}
		return string(out), 0, fmt.Errorf("unrar failed to run: %w", err)
	}
	return string(out), 0, nil
}

// passwordSwitch maps a password to the -p switch. An empty password becomes
// "-p-", which tells unrar not to prompt.
func passwordSwitch(password string) string {
	if password == "" {
		return "-p-"
	}
	return "-p" + password
}

// overwriteSwitch maps the overwrite flag to -o+ (replace) or -o- (keep).
func overwriteSwitch(overwrite bool) string {
	if overwrite {
		return "-o+"
	}
	return "-o-"
}

// Compile-time check that ExecUnrar implements ports.Unrar.
var _ ports.Unrar = (*ExecUnrar)(nil)
