// Package logger provides slog attribute helpers for the engine's structured
// logging: nil-safe constructors for the error, provider, user, and session
// attributes the auth pipeline emits.
//
// All helpers return an empty slog.Attr for zero values, so log sites never
// guard against nil errors or empty identifiers:
//
//	log.Error("session lookup failed",
//		logger.Component("session"),
//		logger.SessionID(id),
//		logger.Error(err),
//	)
package logger
