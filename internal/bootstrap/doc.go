// Package bootstrap is the transactional provisioning engine behind the new
// command: it sanitizes the requested name, plans the src-layout skeleton,
// writes it through the ledger-backed writer, provisions the virtual
// environment, and guarantees that any failure or interrupt leaves the
// target root exactly as it was found.
package bootstrap
