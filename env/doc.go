// Package env loads process configuration from the environment: .env
// secrets cascades, required-variable access, and project-root discovery.
//
// Precedence contract: variables already set in the process environment
// are never overwritten by file-loaded values.
package env
