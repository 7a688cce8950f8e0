package errors

import (
	stderrs "errors"
	"fmt"
	"strings"
)

// Op identifies the operation that produced an error, e.g. "logging.Setup".
// Ops are chained through wrapped errors and surfaced by the logging
// event API as an operation trail.
type Op string

// Detailed is implemented by errors that carry an operation tag and a
// cause. The logging package walks Detailed chains to build error
// histories.
type Detailed interface {
	error
	Op() Op
	Unwrap() error
}

// ConfigurationError reports invalid or unusable configuration passed to
// a setup operation. It is always returned synchronously; a misconfigured
// logger would otherwise mean silent loss of all application logs.
type ConfigurationError struct {
	Operation Op
	Field     string
	Reason    string
	cause     error
}

func NewConfigurationError(op Op, field, reason string) *ConfigurationError {
	return &ConfigurationError{Operation: op, Field: field, Reason: reason}
}

// WithCause attaches an underlying cause and returns the error.
func (e *ConfigurationError) WithCause(cause error) *ConfigurationError {
	e.cause = cause
	return e
}

func (e *ConfigurationError) Error() string {
	var b strings.Builder
	b.WriteString("configuration error")
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.Reason != "" {
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

func (e *ConfigurationError) Op() Op        { return e.Operation }
func (e *ConfigurationError) Unwrap() error { return e.cause }

// MissingEnvVariableError reports a required environment variable that is
// not present in the process environment.
type MissingEnvVariableError struct {
	Variable string
}

func NewMissingEnvVariableError(variable string) *MissingEnvVariableError {
	return &MissingEnvVariableError{Variable: variable}
}

func (e *MissingEnvVariableError) Error() string {
	return fmt.Sprintf("the variable %s does not exist within the environment", e.Variable)
}

func (e *MissingEnvVariableError) Op() Op        { return "env.Required" }
func (e *MissingEnvVariableError) Unwrap() error { return nil }

// ProjectRootNotFoundError reports that no project marker was found
// between the starting directory and the filesystem root.
type ProjectRootNotFoundError struct {
	Start string
}

func NewProjectRootNotFoundError(start string) *ProjectRootNotFoundError {
	return &ProjectRootNotFoundError{Start: start}
}

func (e *ProjectRootNotFoundError) Error() string {
	return fmt.Sprintf("failed to find project root path starting from %s", e.Start)
}

func (e *ProjectRootNotFoundError) Op() Op        { return "env.ProjectRoot" }
func (e *ProjectRootNotFoundError) Unwrap() error { return nil }

// ProjectEnvironmentError reports that none of the environment variable
// aliases used to determine the project environment were set.
type ProjectEnvironmentError struct {
	Aliases []string
}

func NewProjectEnvironmentError(aliases []string) *ProjectEnvironmentError {
	return &ProjectEnvironmentError{Aliases: aliases}
}

func (e *ProjectEnvironmentError) Error() string {
	return fmt.Sprintf("the project environment could not be determined, attempted %v", e.Aliases)
}

func (e *ProjectEnvironmentError) Op() Op        { return "env.ProjectEnvironment" }
func (e *ProjectEnvironmentError) Unwrap() error { return nil }

// AsDetailed reports whether err (or any error in its chain) carries an
// operation tag, returning the first match.
func AsDetailed(err error) (Detailed, bool) {
	var d Detailed
	if stderrs.As(err, &d) {
		return d, true
	}
	return nil, false
}

// IsConfiguration reports whether err is (or wraps) a ConfigurationError.
func IsConfiguration(err error) bool {
	var target *ConfigurationError
	return stderrs.As(err, &target)
}

// IsMissingEnvVariable reports whether err is (or wraps) a
// MissingEnvVariableError.
func IsMissingEnvVariable(err error) bool {
	var target *MissingEnvVariableError
	return stderrs.As(err, &target)
}

// IsProjectRootNotFound reports whether err is (or wraps) a
// ProjectRootNotFoundError.
func IsProjectRootNotFound(err error) bool {
	var target *ProjectRootNotFoundError
	return stderrs.As(err, &target)
}
