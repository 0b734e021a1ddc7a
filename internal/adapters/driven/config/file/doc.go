// Package file provides the TOML-backed installation record store.
//
// Records live in a single TOML file (~/.mcpm/connectors.toml by default),
// written atomically with restricted permissions. The file names configured
// variables but never carries their values.
package file
