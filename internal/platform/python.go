package platform

import (
	"fmt"
	"os/exec"
	"runtime"
)

// PythonCandidates returns interpreter names to probe on PATH, in preference
// order for the current platform. Windows installs typically register
// "python"; Unix systems usually ship "python3".
func PythonCandidates() []string {
	if runtime.GOOS == "windows" {
		return []string{"python", "python3"}
	}
	return []string{"python3", "python"}
}

// FindPython locates a Python interpreter on PATH.
func FindPython() (string, error) {
	for _, name := range PythonCandidates() {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no Python interpreter found on PATH (tried %v)", PythonCandidates())
}
