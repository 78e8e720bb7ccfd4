package writer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pyboot-dev/pyboot/internal/plan"
)

// ErrAlreadyExists indicates the target root exists and is non-empty and
// the caller did not pass force. Nothing has been written when it occurs.
var ErrAlreadyExists = errors.New("target directory is not empty")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// entryKind discriminates ledger entries for rollback.
type entryKind int

const (
	createdDir entryKind = iota
	createdFile
	replacedFile
)

// entry records one applied operation. For replacedFile, prior holds the
// bytes that were overwritten so rollback can restore them.
type entry struct {
	kind      entryKind
	path      string
	prior     []byte
	priorMode os.FileMode
}

// Commit is the handle returned after a plan is fully applied. Call sites
// use it for logging the created paths; the orchestrator reuses its ledger
// to unwind the whole scaffold if provisioning fails afterwards.
type Commit struct {
	entries []entry
}

// Paths returns the paths this execution created, in creation order.
func (c *Commit) Paths() []string {
	var paths []string
	for _, e := range c.entries {
		if e.kind != replacedFile {
			paths = append(paths, e.path)
		}
	}
	return paths
}

// Rollback undoes every ledger entry in strict reverse order: created files
// are removed, replaced files are restored to their prior content, created
// directories are removed last. Individual failures are swallowed so the
// sweep always completes; they are returned as diagnostic notes for the
// final error message.
func (c *Commit) Rollback() []string {
	var notes []string
	for i := len(c.entries) - 1; i >= 0; i-- {
		e := c.entries[i]
		var err error
		switch e.kind {
		case createdFile, createdDir:
			err = os.Remove(e.path)
		case replacedFile:
			err = os.WriteFile(e.path, e.prior, e.priorMode)
		}
		if err != nil && !os.IsNotExist(err) {
			notes = append(notes, fmt.Sprintf("%s: %v", e.path, err))
		}
	}
	return notes
}

// Execute applies a plan transactionally. The ledger is appended to after
// each successful operation, so it reflects reality even if the next
// operation fails. On the first failure, or on context cancellation between
// operations, Execute rolls back everything it created and returns the
// original cause; rollback problems are appended to the error text but
// never mask the cause.
//
// Pre-existing paths are never deleted: a root (or intermediate directory)
// that already existed is not entered in the ledger, and files overwritten
// under force are restored byte-for-byte on rollback.
func Execute(ctx context.Context, p *plan.Plan, force bool) (*Commit, error) {
	if err := precheck(p.Root, force); err != nil {
		return nil, err
	}

	c := &Commit{}

	for _, op := range p.Ops {
		if err := ctx.Err(); err != nil {
			return nil, fail(c, fmt.Errorf("layout write interrupted: %w", err))
		}
		if err := apply(c, op); err != nil {
			return nil, fail(c, fmt.Errorf("applying %s %s: %w", op.Kind, op.Path, err))
		}
	}

	return c, nil
}

// precheck rejects a non-empty target before any mutation, so a failed
// precheck never leaves a partial ledger behind.
func precheck(root string, force bool) error {
	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("inspecting target %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("target %s exists and is not a directory", root)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("reading target %s: %w", root, err)
	}
	if len(entries) > 0 && !force {
		return fmt.Errorf("%w: %s (use --force to overwrite)", ErrAlreadyExists, root)
	}
	return nil
}

// apply performs one operation, appending its ledger entry on success.
func apply(c *Commit, op plan.Operation) error {
	switch op.Kind {
	case plan.OpMkdir:
		if info, err := os.Stat(op.Path); err == nil {
			if info.IsDir() {
				// Pre-existing directory: not ours to delete.
				return nil
			}
			return fmt.Errorf("%s exists and is not a directory", op.Path)
		}
		if err := os.Mkdir(op.Path, dirPerm); err != nil {
			return err
		}
		c.entries = append(c.entries, entry{kind: createdDir, path: op.Path})
		return nil

	case plan.OpWriteFile:
		if info, err := os.Stat(op.Path); err == nil {
			prior, readErr := os.ReadFile(op.Path)
			if readErr != nil {
				return fmt.Errorf("reading existing file before overwrite: %w", readErr)
			}
			if err := os.WriteFile(op.Path, op.Content, info.Mode()); err != nil {
				return err
			}
			c.entries = append(c.entries, entry{kind: replacedFile, path: op.Path, prior: prior, priorMode: info.Mode()})
			return nil
		}
		if err := os.WriteFile(op.Path, op.Content, filePerm); err != nil {
			return err
		}
		c.entries = append(c.entries, entry{kind: createdFile, path: op.Path})
		return nil

	default:
		return fmt.Errorf("unknown operation kind %q", op.Kind)
	}
}

// fail rolls back a partial execution and decorates cause with any rollback
// notes.
func fail(c *Commit, cause error) error {
	if notes := c.Rollback(); len(notes) > 0 {
		return fmt.Errorf("%w (rollback issues: %s)", cause, strings.Join(notes, "; "))
	}
	return cause
}
