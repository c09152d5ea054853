// Package log provides structured logging for quill.
//
// Package: log
// Title: quill Structured Logging
// Description: Structured logging with levels, persistent context fields,
//              correlation IDs per run, timers and JSON, text and console
//              formatters. Integrates with the quill error type.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-19
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-19 v0.2.0: Correlation IDs via uuid, lipgloss console output
//
// Usage:
//
//	import mdwlog "github.com/msto63/quill/foundation/core/log"
//
//	logger := mdwlog.New().
//		WithLevel(mdwlog.LevelDebug).
//		WithFormat(mdwlog.FormatConsole).
//		WithField("component", "parser").
//		WithNewCorrelationID()
//
//	timer := logger.StartTimer("parse")
//	tree, err := p.Parse(path, source)
//	if err != nil {
//		timer.StopWithError(err)
//	} else {
//		timer.Stop(mdwlog.Field("statements", n))
//	}
package log
