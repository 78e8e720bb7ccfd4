// Package platform isolates the OS-specific details of working with Python
// toolchains: interpreter discovery order and venv activation commands.
package platform
