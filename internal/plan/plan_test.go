package plan

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pyboot-dev/pyboot/internal/sanitize"
)

func mustBuild(t *testing.T, name string, backend Backend, root string) *Plan {
	t.Helper()
	p, err := Build(sanitize.Name(name), backend, root)
	if err != nil {
		t.Fatalf("Build(%q, %q) error: %v", name, backend, err)
	}
	return p
}

func TestBuildLayout(t *testing.T) {
	root := filepath.Join("/tmp", "demo")
	p := mustBuild(t, "demo", BackendSetuptools, root)

	wantPaths := []string{
		root,
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "demo"),
		filepath.Join(root, "src", "demo", "__init__.py"),
		filepath.Join(root, "src", "demo", "main.py"),
		filepath.Join(root, "pyproject.toml"),
		filepath.Join(root, ".gitignore"),
		filepath.Join(root, ".editorconfig"),
		filepath.Join(root, "README.md"),
	}

	var gotPaths []string
	for _, op := range p.Ops {
		gotPaths = append(gotPaths, op.Path)
	}
	if !reflect.DeepEqual(gotPaths, wantPaths) {
		t.Errorf("operation paths = %v, want %v", gotPaths, wantPaths)
	}
}

func TestBuildDirectoriesBeforeFiles(t *testing.T) {
	p := mustBuild(t, "demo", BackendHatch, "/tmp/demo")

	seen := map[string]bool{}
	for _, op := range p.Ops {
		if op.Kind == OpMkdir {
			seen[op.Path] = true
			continue
		}
		parent := filepath.Dir(op.Path)
		if parent != "/tmp" && !seen[parent] {
			t.Errorf("file %s planned before its directory %s", op.Path, parent)
		}
	}
}

func TestBuildDeterministic(t *testing.T) {
	a := mustBuild(t, "demo", BackendSetuptools, "/tmp/demo")
	b := mustBuild(t, "demo", BackendSetuptools, "/tmp/demo")
	if !reflect.DeepEqual(a, b) {
		t.Error("Build is not deterministic for identical inputs")
	}
}

func TestBuildManifestByBackend(t *testing.T) {
	tests := []struct {
		backend      Backend
		wantRequires string
		wantBuild    string
	}{
		{BackendSetuptools, `requires = ["setuptools>=61.0"]`, `build-backend = "setuptools.build_meta"`},
		{BackendHatch, `requires = ["hatchling"]`, `build-backend = "hatchling.build"`},
	}

	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			p := mustBuild(t, "demo", tt.backend, "/tmp/demo")
			manifest := contentOf(t, p, "pyproject.toml")

			for _, want := range []string{
				`name = "demo"`,
				`version = "0.1.0"`,
				`requires-python = ">=3.8"`,
				`demo = "demo.main:main"`,
				tt.wantRequires,
				tt.wantBuild,
			} {
				if !strings.Contains(manifest, want) {
					t.Errorf("pyproject.toml missing %q:\n%s", want, manifest)
				}
			}
		})
	}
}

func TestBuildRenderedContents(t *testing.T) {
	p := mustBuild(t, "mi_proyecto", BackendSetuptools, "/tmp/mi_proyecto")

	initPy := contentOf(t, p, "__init__.py")
	if initPy != "__version__ = \"0.1.0\"\n" {
		t.Errorf("__init__.py = %q", initPy)
	}

	mainPy := contentOf(t, p, "main.py")
	if !strings.Contains(mainPy, "Hello from mi_proyecto!") {
		t.Errorf("main.py missing greeting:\n%s", mainPy)
	}

	gitignore := contentOf(t, p, ".gitignore")
	for _, want := range []string{".venv/", "__pycache__/", "dist/"} {
		if !strings.Contains(gitignore, want) {
			t.Errorf(".gitignore missing %q", want)
		}
	}

	readme := contentOf(t, p, "README.md")
	if !strings.Contains(readme, "# mi_proyecto") {
		t.Errorf("README.md missing title:\n%s", readme)
	}
	if !strings.Contains(readme, "pip install -e .") {
		t.Errorf("README.md missing install hint:\n%s", readme)
	}
}

func TestBuildRejectsInvalidName(t *testing.T) {
	if _, err := Build(sanitize.Name("Not Valid"), BackendSetuptools, "/tmp/x"); err == nil {
		t.Error("Build accepted an unsanitized name")
	}
	if _, err := Build(sanitize.Name(""), BackendSetuptools, "/tmp/x"); err == nil {
		t.Error("Build accepted an empty name")
	}
}

func TestBuildRejectsUnknownBackend(t *testing.T) {
	if _, err := Build(sanitize.Name("demo"), Backend("poetry"), "/tmp/x"); err == nil {
		t.Error("Build accepted an unknown backend")
	}
}

func TestParseBackend(t *testing.T) {
	if _, err := ParseBackend("setuptools"); err != nil {
		t.Errorf("ParseBackend(setuptools) error: %v", err)
	}
	if _, err := ParseBackend("hatch"); err != nil {
		t.Errorf("ParseBackend(hatch) error: %v", err)
	}
	if _, err := ParseBackend("flit"); err == nil {
		t.Error("ParseBackend(flit) should fail")
	}
}

// contentOf returns the rendered content of the plan's file whose path ends
// with name.
func contentOf(t *testing.T, p *Plan, name string) string {
	t.Helper()
	for _, op := range p.Ops {
		if op.Kind == OpWriteFile && filepath.Base(op.Path) == name {
			return string(op.Content)
		}
	}
	t.Fatalf("plan has no file %q", name)
	return ""
}
