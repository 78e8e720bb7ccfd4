// Package cli defines the cobra command tree. Commands parse and default
// their inputs, then hand already-validated parameters to the bootstrap
// engine; all provisioning logic lives below this package.
package cli
