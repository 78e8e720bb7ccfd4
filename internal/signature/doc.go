// Package signature holds the table of error-output patterns that identify
// hard-link creation failures from the environment tool. The built-in table
// is embedded; users can override it with a schema-validated YAML file in
// the config directory, which keeps the recognized set testable instead of
// hard-coded.
package signature
