// Package memory provides in-memory implementations of the driven storage
// ports. Document snapshots always live here; the config and history
// stores back tests and runs without a data directory.
package memory
