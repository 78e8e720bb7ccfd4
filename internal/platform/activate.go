package platform

import "runtime"

// ActivateCommand returns the shell command that activates the project's
// virtual environment on the current platform.
func ActivateCommand() string {
	if runtime.GOOS == "windows" {
		return `.venv\Scripts\activate`
	}
	return "source .venv/bin/activate"
}
