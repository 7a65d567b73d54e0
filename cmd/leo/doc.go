// Package main hosts the leo CLI entrypoint and command graph.
//
// The Cobra-based command tree loads the logger hierarchy from configuration,
// prints its propagation chains and level map, emits test events through it,
// and scaffolds configuration files. Registry assembly lives in
// internal/registryrun so commands stay declarative.
package main
