// Package logging assembles structured slog loggers and formatting helpers used
// across leo.
//
// It owns the console/JSON handlers that format both the CLI's own
// diagnostics and the records written by console and file sinks, centralizes
// level and output plumbing, and provides the in-memory StreamHub that
// collects delivered records for tracing. A no-op logger is available for
// tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
