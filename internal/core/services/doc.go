// Package services implements the driving port interfaces.
// Services contain the core business logic: credential pattern lookup,
// requirement detection, value validation, and the install state machine.
// They orchestrate calls to driven ports (adapters).
//
// Services are pure Go with no external dependencies beyond the
// standard library.
package services
