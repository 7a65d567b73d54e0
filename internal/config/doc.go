// Package config loads, normalizes, and validates leo configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and checks the declared logger hierarchy
// before any registry is built. The Config type centralizes the registry
// options, the logger declarations with their sink settings, and the CLI's
// own diagnostic logging.
//
// Always obtain settings through this package so downstream code receives
// canonical level names, expanded file paths, and clear validation errors.
package config
