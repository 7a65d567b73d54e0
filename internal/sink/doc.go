// Package sink provides the stock sink kinds used by hierarchy loggers and
// the Factory that builds them from per-logger configuration.
//
// A sink configuration selects its kind with a "kind" key, defaulting to the
// sink's own name, so `[loggers.sinks.console]` builds a console sink. Every
// kind honors two common keys:
//
//	silent = true     discard everything
//	level  = "info"   skip events less severe than the named level
//
// Kinds:
//
//	console   slog console/JSON output to stdout or stderr ("auto" picks
//	          console on a terminal, JSON otherwise)
//	file      JSON lines appended to "path" under an advisory file lock
//	memory    keeps records in memory (tests, diagnostics)
//	stream    publishes records to the factory's logging.StreamHub
//	zap       JSON through a zap core, to "path" or stderr
//	discard   drops everything
package sink
