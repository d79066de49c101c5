// Package config loads, normalizes, and validates bindery configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the BINDERY_SNAPSHOT environment
// fallback for the snapshot location. The Config type centralizes every knob
// the CLI needs: snapshot and log paths, log format and level, and the column
// mapping used by registrar imports.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
