// Package gitx initializes a git repository in a freshly scaffolded project.
// Git is optional tooling: a missing binary or a failed command is reported
// to the caller as a warning and never fails the provisioning run.
package gitx

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Init creates a repository at root on branch main and commits the scaffold.
func Init(ctx context.Context, root string) error {
	steps := [][]string{
		{"init", "-b", "main"},
		{"add", "."},
		{"commit", "-m", "Initial commit"},
	}

	for _, args := range steps {
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = root
		out, err := cmd.CombinedOutput()
		if err != nil {
			return fmt.Errorf("git %s: %v: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}
