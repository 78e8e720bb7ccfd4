package gitx

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestInit(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "README.md"), []byte("# demo\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// Commit identity may be unset on CI machines.
	t.Setenv("GIT_AUTHOR_NAME", "test")
	t.Setenv("GIT_AUTHOR_EMAIL", "test@example.com")
	t.Setenv("GIT_COMMITTER_NAME", "test")
	t.Setenv("GIT_COMMITTER_EMAIL", "test@example.com")

	if err := Init(context.Background(), root); err != nil {
		t.Fatalf("Init error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(root, ".git")); err != nil {
		t.Errorf(".git missing after Init: %v", err)
	}

	out, err := exec.Command("git", "-C", root, "log", "--oneline").Output()
	if err != nil {
		t.Fatalf("git log error: %v", err)
	}
	if len(out) == 0 {
		t.Error("no commits after Init")
	}
}

func TestInitFailsOutsideDirectory(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available, skipping")
	}

	err := Init(context.Background(), filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Error("Init in a missing directory should fail")
	}
}
