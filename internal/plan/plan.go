package plan

import (
	"fmt"
	"path/filepath"

	"github.com/pyboot-dev/pyboot/internal/sanitize"
)

// Backend selects the packaging-manifest template and the install tooling
// referenced by generated files.
type Backend string

// Supported build backends.
const (
	BackendSetuptools Backend = "setuptools"
	BackendHatch      Backend = "hatch"
)

// ParseBackend validates a backend token from the CLI or config.
func ParseBackend(s string) (Backend, error) {
	switch Backend(s) {
	case BackendSetuptools, BackendHatch:
		return Backend(s), nil
	default:
		return "", fmt.Errorf("unknown backend %q: must be %q or %q", s, BackendSetuptools, BackendHatch)
	}
}

// OpKind discriminates filesystem operations in a plan.
type OpKind string

// Operation kinds.
const (
	OpMkdir     OpKind = "mkdir"
	OpWriteFile OpKind = "write_file"
)

// Operation is a single planned filesystem mutation. Paths are absolute;
// Content is fully rendered for OpWriteFile and nil for OpMkdir.
// Operations are immutable once planned.
type Operation struct {
	Kind    OpKind
	Path    string
	Content []byte
}

// Plan is the ordered sequence of operations that produces a project
// skeleton. Directories always precede the files nested inside them.
// A Plan is produced once and consumed exactly once by the writer.
type Plan struct {
	Root    string
	Name    sanitize.Name
	Backend Backend
	Ops     []Operation
}

// Build expands a validated name and backend choice into the full operation
// list for a src-layout project rooted at root. It performs no filesystem
// access and is deterministic for a given input triple.
func Build(name sanitize.Name, backend Backend, root string) (*Plan, error) {
	// Unreachable when callers go through sanitize.Clean; kept so a Plan can
	// never carry a name the filesystem or Python would reject.
	if !sanitize.Valid(string(name)) {
		return nil, fmt.Errorf("plan: %w: %q", sanitize.ErrInvalidName, name)
	}
	if _, err := ParseBackend(string(backend)); err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}

	data := templateData{
		Name:    string(name),
		Version: initialVersion,
	}

	pkgDir := filepath.Join(root, "src", string(name))

	files := []struct {
		path string
		tmpl string
	}{
		{filepath.Join(pkgDir, "__init__.py"), "init.py.tmpl"},
		{filepath.Join(pkgDir, "main.py"), "main.py.tmpl"},
		{filepath.Join(root, "pyproject.toml"), manifestTemplate(backend)},
		{filepath.Join(root, ".gitignore"), "gitignore.tmpl"},
		{filepath.Join(root, ".editorconfig"), "editorconfig.tmpl"},
		{filepath.Join(root, "README.md"), "readme.md.tmpl"},
	}

	p := &Plan{
		Root:    root,
		Name:    name,
		Backend: backend,
		Ops: []Operation{
			{Kind: OpMkdir, Path: root},
			{Kind: OpMkdir, Path: filepath.Join(root, "src")},
			{Kind: OpMkdir, Path: pkgDir},
		},
	}

	for _, f := range files {
		content, err := render(f.tmpl, data)
		if err != nil {
			return nil, fmt.Errorf("plan: rendering %s: %w", f.tmpl, err)
		}
		p.Ops = append(p.Ops, Operation{Kind: OpWriteFile, Path: f.path, Content: content})
	}

	return p, nil
}

// manifestTemplate returns the pyproject template for a backend. The two
// variants are mutually exclusive; there is no shared base to inherit from.
func manifestTemplate(backend Backend) string {
	if backend == BackendHatch {
		return "pyproject-hatch.toml.tmpl"
	}
	return "pyproject-setuptools.toml.tmpl"
}
