// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across quill to classify
//              failures of source loading, lexing, parsing, tree validation
//              and configuration.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-19 v0.2.0: Reduced to the compiler front end code set

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeIOError      Code = "IO_ERROR"

	// Front end
	CodeLexical     Code = "LEXICAL"
	CodeSyntax      Code = "SYNTAX"
	CodeInvalidTree Code = "INVALID_TREE"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeIOError,
		CodeLexical, CodeSyntax, CodeInvalidTree,
		CodeConfigError, CodeInvalidConfig:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeLexical, CodeSyntax:
		return "source"
	case CodeInvalidTree:
		return "tree"
	case CodeNotFound, CodeInvalidInput, CodeIOError:
		return "input"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status the CLI uses for this code
func (c Code) ExitCode() int {
	switch c {
	case CodeLexical, CodeSyntax:
		return 1
	case CodeNotFound, CodeInvalidInput, CodeIOError:
		return 2
	case CodeConfigError, CodeInvalidConfig:
		return 3
	default:
		return 70
	}
}
