// Package app wires the operation registry together. It owns the logger,
// the configured list of provider modules, and the two-phase construction
// of the registry, decoupled from any entrypoint like the CLI.
package app
