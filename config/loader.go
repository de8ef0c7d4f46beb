package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// The flag value itself uses the bare FLAG variable, matching how CTF
// infrastructure injects secrets.  Everything else uses the WORDGAME_
// prefix.  Boolean values accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  The caller is responsible for
// re-asserting explicitly set CLI flags afterwards so that flags keep
// precedence (the environment can only be read after --env-file has
// been parsed and loaded).
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("FLAG"); v != "" {
		cfg.Flag = []byte(v)
	}
	if v := envInt("WORDGAME_PORT"); v > 0 {
		cfg.Port = v
	}
	if v := os.Getenv("WORDGAME_ADDRESS"); v != "" {
		cfg.Address = v
	}
	if v := envInt("WORDGAME_DEADLINE"); v > 0 {
		cfg.SessionDeadline = secondsDuration(v)
	}
	if v := envInt("WORDGAME_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func secondsDuration(sec int) time.Duration {
	return time.Duration(sec) * time.Second
}
