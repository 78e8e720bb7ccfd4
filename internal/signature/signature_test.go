package signature

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultTable(t *testing.T) {
	table := Default()
	if len(table.Signatures) == 0 {
		t.Fatal("default table is empty")
	}
}

func TestMatch(t *testing.T) {
	table := Default()

	tests := []struct {
		name   string
		output string
		want   bool
	}{
		{"uv hardlink warning", "error: Failed to hardlink files; is the cache on the same filesystem?", true},
		{"windows os error 1314", "failed to create link: OS Error 1314 (required privilege not held)", true},
		{"windows os error 396", "io error: os error 396", true},
		{"cross device", "Invalid cross-device link (os error 18)", true},
		{"link mode hint", "consider using a different link mode", true},
		{"case insensitive", "HARDLINK creation failed", true},
		{"missing interpreter", "error: no interpreter found for Python 3.99", false},
		{"network failure", "error: request failed: connection refused", false},
		{"empty output", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := table.Match(tt.output); got != tt.want {
				t.Errorf("Match(%q) = %v, want %v", tt.output, got, tt.want)
			}
		})
	}
}

func TestParseValid(t *testing.T) {
	table, err := Parse([]byte("signatures:\n  - hardlink\n  - custom token\n"))
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if len(table.Signatures) != 2 {
		t.Fatalf("got %d signatures, want 2", len(table.Signatures))
	}
	if !table.Match("a custom token appeared") {
		t.Error("parsed table does not match its own signature")
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"missing key", "patterns:\n  - hardlink\n"},
		{"empty list", "signatures: []\n"},
		{"wrong item type", "signatures:\n  - 42\n"},
		{"too short item", "signatures:\n  - ab\n"},
		{"unknown extra key", "signatures:\n  - hardlink\nextra: true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.yaml)); err == nil {
				t.Errorf("Parse accepted invalid table:\n%s", tt.yaml)
			}
		})
	}
}

func TestValidateReportsIssues(t *testing.T) {
	result, err := Validate([]byte("signatures: []\n"))
	if err != nil {
		t.Fatalf("Validate error: %v", err)
	}
	if result.Valid {
		t.Fatal("empty signature list should be invalid")
	}
	if len(result.Issues) == 0 {
		t.Error("expected at least one validation issue")
	}
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("no override file", func(t *testing.T) {
		table, warning := LoadOrDefault(filepath.Join(t.TempDir(), "signatures.yaml"))
		if warning != "" {
			t.Errorf("unexpected warning: %s", warning)
		}
		if len(table.Signatures) != len(Default().Signatures) {
			t.Error("expected the default table")
		}
	})

	t.Run("valid override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signatures.yaml")
		if err := os.WriteFile(path, []byte("signatures:\n  - only this\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		table, warning := LoadOrDefault(path)
		if warning != "" {
			t.Errorf("unexpected warning: %s", warning)
		}
		if len(table.Signatures) != 1 || table.Signatures[0] != "only this" {
			t.Errorf("override not applied: %v", table.Signatures)
		}
	})

	t.Run("invalid override falls back with warning", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "signatures.yaml")
		if err := os.WriteFile(path, []byte("signatures: []\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		table, warning := LoadOrDefault(path)
		if warning == "" {
			t.Error("expected a warning for an invalid override")
		}
		if len(table.Signatures) != len(Default().Signatures) {
			t.Error("expected fallback to the default table")
		}
	})
}
