package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pyboot-dev/pyboot/internal/gitx"
	"github.com/pyboot-dev/pyboot/internal/plan"
	"github.com/pyboot-dev/pyboot/internal/pyversion"
	"github.com/pyboot-dev/pyboot/internal/sanitize"
	"github.com/pyboot-dev/pyboot/internal/signature"
	"github.com/pyboot-dev/pyboot/internal/venv"
	"github.com/pyboot-dev/pyboot/internal/writer"
)

// ErrCancelled indicates the run was interrupted by the user. Whatever had
// been written at that point has already been rolled back.
var ErrCancelled = errors.New("run cancelled")

// Options are the already-parsed parameters of a single provisioning run.
type Options struct {
	// Folder is the raw target directory argument; its basename is also the
	// input to name sanitization.
	Folder  string
	Backend plan.Backend
	// Python optionally pins the interpreter version (requires uv).
	Python string
	Force  bool
	Git    bool
}

// Outcome reports a successful run. Mode is threaded to the caller so the
// install hint can include the matching link-mode flag; there is no global
// "last used mode" state.
type Outcome struct {
	Name           sanitize.Name
	Root           string
	Mode           venv.Mode
	GitInitialized bool
	CreatedPaths   []string
	Warnings       []string
}

// Orchestrator composes sanitizer, planner, writer, and provisioner into a
// single transactional run. The function fields are seams for tests.
type Orchestrator struct {
	Provisioner *venv.Provisioner

	GitAvailable func() bool
	GitInit      func(ctx context.Context, root string) error
}

// New returns an Orchestrator wired to the real provisioner and git.
func New(sigs signature.Table) *Orchestrator {
	return &Orchestrator{
		Provisioner:  venv.New(sigs),
		GitAvailable: gitx.Available,
		GitInit:      gitx.Init,
	}
}

// Run executes sanitize → plan → write → provision. Any failure or
// cancellation after the first filesystem mutation triggers a rollback that
// leaves the target root exactly as it was found: a provisioning failure
// after the layout was committed unwinds the entire scaffold, not just the
// environment. Git initialization runs last and is best-effort; its
// failures become warnings on the Outcome.
func (o *Orchestrator) Run(ctx context.Context, opts Options) (*Outcome, error) {
	name, err := sanitize.Clean(filepath.Base(opts.Folder))
	if err != nil {
		return nil, err
	}

	if opts.Python != "" {
		if err := pyversion.Validate(opts.Python); err != nil {
			return nil, err
		}
	}

	root, err := filepath.Abs(opts.Folder)
	if err != nil {
		return nil, fmt.Errorf("resolving target path %q: %w", opts.Folder, err)
	}

	p, err := plan.Build(name, opts.Backend, root)
	if err != nil {
		return nil, err
	}

	commit, err := writer.Execute(ctx, p, opts.Force)
	if err != nil {
		// The writer has already rolled back; no environment was attempted.
		return nil, mapCancel(err)
	}

	res, err := o.Provisioner.Provision(ctx, root, opts.Python)
	if err != nil {
		err = mapCancel(err)
		if notes := commit.Rollback(); len(notes) > 0 {
			err = fmt.Errorf("%w (rollback issues: %s)", err, strings.Join(notes, "; "))
		}
		return nil, err
	}

	out := &Outcome{
		Name:         name,
		Root:         root,
		Mode:         res.Mode,
		CreatedPaths: commit.Paths(),
		Warnings:     res.Warnings,
	}

	if opts.Git {
		switch {
		case o.GitAvailable == nil || !o.GitAvailable():
			out.Warnings = append(out.Warnings, "git not found on PATH; skipping repository init")
		default:
			if err := o.GitInit(ctx, root); err != nil {
				out.Warnings = append(out.Warnings, fmt.Sprintf("git init failed: %v", err))
			} else {
				out.GitInitialized = true
			}
		}
	}

	return out, nil
}

// mapCancel folds context cancellation into the Cancelled error kind so the
// CLI reports one terminal reason regardless of which stage the interrupt
// reached.
func mapCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	return err
}
