// Package errors defines the typed failures shared across secutils:
// configuration problems surfaced by logging setup, and the environment
// loader's missing-variable and project-root failures.
//
// Errors that participate in wrapped chains carry an operation tag (Op)
// which the logging package surfaces as an operation trail on logged
// errors.
package errors
