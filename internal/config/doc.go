// Package config loads, normalizes, and validates tracksort configuration.
//
// Configuration comes from a TOML file (default ~/.config/tracksort/config.toml
// or ./tracksort.toml), optionally overridden by environment variables loaded
// from the process environment and a local .env file. Path fields are expanded
// (~ resolution) and made absolute during load.
package config
