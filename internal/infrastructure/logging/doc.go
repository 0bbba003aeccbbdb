// Package logging provides structured logging for devreg.
//
// It wraps log/slog with configuration-driven level filtering, JSON or text
// output, and default service/version attributes. Component loggers are
// derived with With:
//
//	apiLogger := logger.With("component", "api")
package logging
