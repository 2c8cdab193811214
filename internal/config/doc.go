// Package config loads, normalizes, and validates capsync configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files from ~/.config/capsync/config.toml or a
// project-local capsync.toml. The Config type centralizes every knob the CLI
// and pipeline need and converts them into per-stage option structs.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
