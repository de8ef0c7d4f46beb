package config

import (
	"strings"
	"testing"
	"time"
)

// ── Validate ─────────────────────────────────────────────────────────

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"valid", Config{Port: 4000, Flag: []byte("flag{x}")}, ""},
		{"missing port", Config{Flag: []byte("flag{x}")}, "port is required"},
		{"port too large", Config{Port: 70000, Flag: []byte("flag{x}")}, "out of range"},
		{"negative port", Config{Port: -1, Flag: []byte("flag{x}")}, "out of range"},
		{"missing flag", Config{Port: 4000}, "no flag available"},
		{"negative deadline", Config{Port: 4000, Flag: []byte("x"), SessionDeadline: -time.Second}, "deadline"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestListenAddr(t *testing.T) {
	cfg := Config{Port: 4000}
	if got := cfg.ListenAddr(); got != "127.0.0.1:4000" {
		t.Errorf("ListenAddr() = %q", got)
	}

	cfg.Address = "0.0.0.0"
	if got := cfg.ListenAddr(); got != "0.0.0.0:4000" {
		t.Errorf("ListenAddr() = %q", got)
	}
}

// ── LoadFromEnv ──────────────────────────────────────────────────────

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FLAG", "flag{from-env}")
	t.Setenv("WORDGAME_PORT", "4321")
	t.Setenv("WORDGAME_DEADLINE", "9")
	t.Setenv("WORDGAME_VERBOSE", "2")

	cfg := &Config{}
	LoadFromEnv(cfg)

	if string(cfg.Flag) != "flag{from-env}" {
		t.Errorf("Flag = %q", cfg.Flag)
	}
	if cfg.Port != 4321 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.SessionDeadline != 9*time.Second {
		t.Errorf("SessionDeadline = %v", cfg.SessionDeadline)
	}
	if cfg.Verbose != 2 {
		t.Errorf("Verbose = %d", cfg.Verbose)
	}
}

func TestLoadFromEnv_EmptyLeavesDefaults(t *testing.T) {
	t.Setenv("FLAG", "")
	t.Setenv("WORDGAME_PORT", "")

	cfg := &Config{Port: 4000, Flag: []byte("flag{keep}")}
	LoadFromEnv(cfg)

	if cfg.Port != 4000 || string(cfg.Flag) != "flag{keep}" {
		t.Errorf("empty env vars clobbered config: %+v", cfg)
	}
}

func TestLoadFromEnv_Garbage(t *testing.T) {
	t.Setenv("WORDGAME_PORT", "not-a-number")

	cfg := &Config{Port: 4000}
	LoadFromEnv(cfg)

	if cfg.Port != 4000 {
		t.Errorf("garbage port overrode config: %d", cfg.Port)
	}
}
