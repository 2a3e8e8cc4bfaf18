// Package rconfig reads the engine's one real environment variable,
// RUST_SRC_PATH, optionally loaded from a `.env` file —
// godotenv.Load() is called and its error is deliberately discarded,
// since a missing .env file is the common case, not a failure.
package rconfig

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const envVar = "RUST_SRC_PATH"

// Config holds the engine's environment-derived settings.
type Config struct {
	// RustSrcPaths is the path-separator-delimited RUST_SRC_PATH list,
	// split into individual directories. Empty when the variable is
	// unset — callers must treat that as "std-lib lookups silently
	// empty", never as an error.
	RustSrcPaths []string
}

// Load reads .env (if present, ignoring any error) then RUST_SRC_PATH
// from the process environment.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config directly from the current process
// environment, without touching .env — used by tests and by callers
// that manage their own dotenv loading.
func FromEnv() Config {
	raw := os.Getenv(envVar)
	if raw == "" {
		return Config{}
	}
	return Config{RustSrcPaths: strings.Split(raw, string(os.PathListSeparator))}
}
