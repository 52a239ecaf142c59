package resolver

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes a command inside a repository checkout and returns its
// standard output. Implementations other than [ExecRunner] exist for
// testing.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec. Standard output is returned even
// when the command exits non-zero, since npm ls reports problems through
// the exit code while still printing a usable tree.
type ExecRunner struct{}

// Run implements [Runner].
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), fmt.Errorf("%s %s: %w: %s",
			name, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}

// CheckTool verifies that an external tool is available by invoking it
// with --version. Used by the scan preflight for node and npm.
func CheckTool(ctx context.Context, name string) error {
	if err := exec.CommandContext(ctx, name, "--version").Run(); err != nil {
		return fmt.Errorf("%s is not installed: %w", name, err)
	}
	return nil
}
