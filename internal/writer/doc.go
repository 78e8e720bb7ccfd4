// Package writer executes a provisioning plan transactionally. Every path it
// creates is appended to a ledger immediately after the operation succeeds;
// on the first failure or cancellation the ledger is replayed in reverse to
// delete exactly those paths, leaving the filesystem as it was found.
package writer
