package hierarchy

import (
	"errors"
	"fmt"
)

var (
	// ErrUninitializedRoot is returned by Get for an unknown name before the
	// root logger exists.
	ErrUninitializedRoot = errors.New("root logger is not initialized")
	// ErrUnknownLevel is returned by Log for a level missing from the
	// registry's levels map.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrNoSinkBuilder is returned by Add when a sink must be built from
	// configuration but the registry has no SinkBuilder.
	ErrNoSinkBuilder = errors.New("no sink builder configured")
)

// UninitializedRootError records the name that was requested before root
// was added. It matches ErrUninitializedRoot with errors.Is.
type UninitializedRootError struct {
	Name string
}

func (e *UninitializedRootError) Error() string {
	return fmt.Sprintf("get logger %q: %v", e.Name, ErrUninitializedRoot)
}

func (e *UninitializedRootError) Unwrap() error { return ErrUninitializedRoot }
