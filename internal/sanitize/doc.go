// Package sanitize turns freeform user text into a valid Python package
// identifier. It is the only place name validation rules live; every other
// component receives an already-validated Name.
package sanitize
