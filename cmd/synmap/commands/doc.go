// Package commands wires the synmap CLI: train builds and persists a
// synonym table from training files, resolve rewrites extracted entities
// with a persisted table, and inspect prints a persisted table.
package commands
