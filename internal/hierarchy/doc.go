// Package hierarchy implements a registry of named loggers arranged in a
// dot-separated hierarchy ("a.b.c").
//
// Events logged on a child are written to the child's own sinks and then
// forwarded, synchronously and depth-first, to the nearest registered
// ancestor. Forwarding repeats from that ancestor until the chain ends at the
// "root" logger or reaches a logger whose propagation is disabled; such a
// logger still writes locally but forwards nothing further.
//
// The registry owns every Logger it creates and keeps a propagation chain
// table derived from the full logger set. The table is rebuilt from scratch on
// every Add, so loggers registered later retroactively shorten the chains of
// their existing descendants. Chains can be inspected through
// Registry.Chains.
//
// Sinks are external collaborators: anything implementing Sink can receive
// records. Per-logger sink configuration is turned into sinks by the
// SinkBuilder passed to New (see the sink package for the stock kinds).
package hierarchy
