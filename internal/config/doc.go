// Package config loads, normalizes, and validates gazecat configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the GAZECAT_ROOTS environment
// fallback for scan roots. The Config type centralizes every knob the CLI and
// watcher need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
