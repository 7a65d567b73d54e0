package hierarchy

import (
	"maps"
	"slices"
	"sort"
)

// Levels maps level names to severities. Lower values are more severe.
type Levels map[string]int

// NPM level names.
const (
	LevelError   = "error"
	LevelWarn    = "warn"
	LevelInfo    = "info"
	LevelHTTP    = "http"
	LevelVerbose = "verbose"
	LevelDebug   = "debug"
	LevelSilly   = "silly"
)

// NPMLevels is the default severity map.
var NPMLevels = Levels{
	LevelError:   0,
	LevelWarn:    1,
	LevelInfo:    2,
	LevelHTTP:    3,
	LevelVerbose: 4,
	LevelDebug:   5,
	LevelSilly:   6,
}

// Severity returns the severity of level and whether it is defined.
func (l Levels) Severity(level string) (int, bool) {
	sev, ok := l[level]
	return sev, ok
}

// Enabled reports whether level passes a minimum threshold. Unknown
// thresholds accept everything; unknown levels are rejected.
func (l Levels) Enabled(level, threshold string) bool {
	if threshold == "" {
		return true
	}
	limit, ok := l[threshold]
	if !ok {
		return true
	}
	sev, ok := l[level]
	if !ok {
		return false
	}
	return sev <= limit
}

// Names returns the level names ordered from most to least severe.
func (l Levels) Names() []string {
	names := slices.Collect(maps.Keys(l))
	sort.Slice(names, func(i, j int) bool {
		if l[names[i]] != l[names[j]] {
			return l[names[i]] < l[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}

// Clone returns an independent copy.
func (l Levels) Clone() Levels {
	if l == nil {
		return nil
	}
	return maps.Clone(l)
}
