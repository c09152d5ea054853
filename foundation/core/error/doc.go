// Package error provides structured error handling for quill.
//
// Package: error
// Title: quill Error Handling Framework
// Description: Structured errors with codes, severity, details and the
//              failing operation, used by source loading, configuration,
//              tree validation and the CLI.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-19 v0.2.0: Front end codes, path and correlation context
//
// Usage:
//
//	import mdwerror "github.com/msto63/quill/foundation/core/error"
//
//	err := mdwerror.New("source file too large").
//		WithCode(mdwerror.CodeInvalidInput).
//		WithPath(path).
//		WithDetail("limit", limit)
//
//	if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
//		// render a caret diagnostic
//	}
package error
