// Package config loads, normalizes, and validates mediasort configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob
// the CLI needs: library root and control folder names, link mode, journal
// location, and log output shape.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enumerated values, and clear validation errors.
package config
