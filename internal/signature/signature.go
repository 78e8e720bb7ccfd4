package signature

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed signatures.yaml
var defaultTable []byte

var (
	defaultOnce sync.Once
	defaults    Table
)

// Table is the set of error-output substrings that identify a hard-link or
// cross-device-link failure from the environment tool. Matching is
// case-insensitive.
type Table struct {
	Signatures []string `yaml:"signatures"`
}

// Default returns the built-in signature table.
func Default() Table {
	defaultOnce.Do(func() {
		// The embedded table ships with the binary; a parse failure here is a
		// build defect, not a runtime condition.
		if err := yaml.Unmarshal(defaultTable, &defaults); err != nil {
			panic(fmt.Sprintf("signature: embedded signatures.yaml is invalid: %v", err))
		}
	})
	return defaults
}

// Parse validates raw YAML against the table schema and unmarshals it.
func Parse(data []byte) (Table, error) {
	result, err := Validate(data)
	if err != nil {
		return Table{}, fmt.Errorf("validating signature table: %w", err)
	}
	if !result.Valid {
		var msgs []string
		for _, issue := range result.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			msgs = append(msgs, msg)
		}
		return Table{}, fmt.Errorf("signature table is invalid: %s", strings.Join(msgs, "; "))
	}

	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing signature table: %w", err)
	}
	return t, nil
}

// LoadFile reads and parses a user-provided signature table.
func LoadFile(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading signature table %s: %w", path, err)
	}
	return Parse(data)
}

// LoadOrDefault returns the table at path if it exists and is valid, and the
// built-in table otherwise. The returned string is a warning describing why
// a present override was rejected; it is empty when the override loaded or
// no override exists.
func LoadOrDefault(path string) (Table, string) {
	if _, err := os.Stat(path); err != nil {
		return Default(), ""
	}
	t, err := LoadFile(path)
	if err != nil {
		return Default(), fmt.Sprintf("ignoring %s: %v", path, err)
	}
	return t, ""
}

// Match reports whether output contains any signature from the table.
func (t Table) Match(output string) bool {
	lowered := strings.ToLower(output)
	for _, sig := range t.Signatures {
		if sig == "" {
			continue
		}
		if strings.Contains(lowered, strings.ToLower(sig)) {
			return true
		}
	}
	return false
}
