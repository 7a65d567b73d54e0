package hierarchy

import "sort"

// BuildChains derives the propagation chain of every logger in flags, where
// flags maps a logger name to its own propagate setting.
//
// A chain lists the registered ancestors nearest first and ends with RootName.
// It is cut right after the first ancestor that does not propagate, and it is
// empty for a logger that does not propagate itself. RootName never has an
// entry.
func BuildChains(flags map[string]bool) map[string][]string {
	chains := make(map[string][]string, len(flags))
	for name, propagate := range flags {
		if name == RootName {
			continue
		}
		if !propagate {
			chains[name] = []string{}
			continue
		}
		chains[name] = truncateChain(ancestorsOf(name, flags), flags)
	}
	return chains
}

// ancestorsOf returns the registered ancestors of name ordered longest first,
// followed by RootName.
func ancestorsOf(name string, flags map[string]bool) []string {
	var candidates []string
	for other := range flags {
		if other == name || other == RootName {
			continue
		}
		if IsAncestor(other, name) {
			candidates = append(candidates, other)
		}
	}
	sort.Slice(candidates, func(i, j int) bool {
		if len(candidates[i]) != len(candidates[j]) {
			return len(candidates[i]) > len(candidates[j])
		}
		return candidates[i] < candidates[j]
	})
	return append(candidates, RootName)
}

// truncateChain keeps candidates while the previously kept one propagates.
// The first candidate is always kept; root's own flag is never consulted.
func truncateChain(candidates []string, flags map[string]bool) []string {
	chain := make([]string, 0, len(candidates))
	for _, candidate := range candidates {
		chain = append(chain, candidate)
		if candidate == RootName {
			break
		}
		if propagate, ok := flags[candidate]; ok && !propagate {
			break
		}
	}
	return chain
}
