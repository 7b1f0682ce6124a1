// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and both console and JSON encodings.
//
// # Document Awareness
//
// Every seedfix run works on one seed document. The WithDocument helper attaches
// the document name to the log entry, so all entries of a run can be correlated
// even when several documents are processed from scripts.
//
// # Configuration
//
// The package supports configuration for:
//   - Level: debug, info, warn, error
//   - Format: console (default) or json
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info", Format: "console"})
//	log.Info("Reconcile started")
//
//	l := logger.WithDocument(log, "database-init.sql")
//	l.Warn("Block not found", zap.String("block", "contents"))
package logger
