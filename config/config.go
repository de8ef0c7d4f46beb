// Package config defines the runtime configuration for the wordgame
// challenge server.
package config

import (
	"fmt"
	"time"
)

// Config holds every tuneable for a server run.
type Config struct {
	// ── Listener ─────────────────────────────────────────────────────
	Port    int    // -p: TCP port, bound to loopback
	Address string // bind address, defaults to DefaultListenAddress

	// ── Challenge ────────────────────────────────────────────────────
	Flag            []byte        // the secret handed out on a win
	SessionDeadline time.Duration // total time a client has to finish

	// ── Deployment ───────────────────────────────────────────────────
	EnvFile string // --env-file: dotenv file to load before parsing

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// ListenAddr returns the full "host:port" bind address.
func (c *Config) ListenAddr() string {
	addr := c.Address
	if addr == "" {
		addr = DefaultListenAddress
	}
	return fmt.Sprintf("%s:%d", addr, c.Port)
}

// Validate checks that the configuration is internally consistent.
// It must reject anything that would otherwise fail after the bind.
func (c *Config) Validate() error {
	if c.Port == 0 {
		return fmt.Errorf("a listen port is required (use -p <port>)")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range 1-65535", c.Port)
	}
	if len(c.Flag) == 0 {
		return fmt.Errorf("no flag available (use --flag or set the FLAG environment variable)")
	}
	if c.SessionDeadline < 0 {
		return fmt.Errorf("session deadline must not be negative")
	}
	return nil
}
