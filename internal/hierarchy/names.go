package hierarchy

import "strings"

// RootName is the distinguished top of every hierarchy. It is never matched
// as a prefix ancestor and always terminates a propagation chain.
const RootName = "root"

// Separator splits logger names into segments.
const Separator = "."

// IsAncestor reports whether ancestor is a strict dot-segment prefix of name.
// "a.b" is an ancestor of "a.b.c" but not of "a.bc" or of itself.
func IsAncestor(ancestor, name string) bool {
	return strings.HasPrefix(name, ancestor+Separator)
}
