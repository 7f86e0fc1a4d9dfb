// Package config loads, normalizes, and validates framealign's TOML
// configuration. Defaults cover every field so the tool runs without a
// config file; validation rejects unusable numeric parameters before any
// media work starts.
package config
