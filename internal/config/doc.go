// Package config loads, normalizes, and validates launcher configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and resolves the backend base directory the
// same way regardless of where the launcher binary was started from. The
// Config type centralizes every knob the supervisor, window registrar and CLI
// need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, concrete durations, and clear validation errors.
package config
