// Package config loads, normalizes, and validates chdbatch configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the CHDMAN_PATH environment
// fallback. A missing configuration file is not an error: defaults are used so
// the interactive session can start with zero setup.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
