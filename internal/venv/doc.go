// Package venv provisions the project virtual environment through uv,
// working around hard-link failures on synced or cross-device filesystems:
// attempt the optimized link mode first, classify the captured error output
// against a signature table, and retry exactly once with copy semantics.
// When uv is absent it degrades to the stdlib venv module.
package venv
