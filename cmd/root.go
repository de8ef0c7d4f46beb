// Package cmd wires up the CLI flags and dispatches to the challenge
// server core.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"

	"wordgame/config"
	"wordgame/internal/core"
	"wordgame/internal/metrics"
	"wordgame/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X wordgame/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the challenge server.
func Execute(ctx context.Context, args []string) error {
	cfg := &config.Config{
		SessionDeadline: config.DefaultSessionDeadline,
	}
	fs := flag.NewFlagSet("wordgame", flag.ContinueOnError)

	// Flags parse into locals, not into cfg: the environment is only
	// read after parsing (it may come from --env-file), so explicit
	// flags are re-asserted over it below.

	// ── listener ─────────────────────────────────────────────────
	var port int
	fs.IntVarP(&port, "port", "p", 0, "TCP port to listen on (loopback)")

	// ── challenge ────────────────────────────────────────────────
	var flagValue string
	fs.StringVarP(&flagValue, "flag", "f", "", "Flag to hand out on completion (default: FLAG env var)")
	fs.StringVar(&cfg.EnvFile, "env-file", "", "Dotenv file to load before parsing")

	// ── output ───────────────────────────────────────────────────
	var verbose int
	fs.CountVarP(&verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("wordgame %s\n", version)
		return nil
	}

	// ── environment ──────────────────────────────────────────────
	// An explicit --env-file must exist; the implicit ./.env is
	// best-effort, matching how the challenge is deployed.
	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil {
			return fmt.Errorf("env file: %w", err)
		}
	} else {
		_ = godotenv.Load()
	}
	config.LoadFromEnv(cfg)

	// Flags win over the environment.
	if flagValue != "" {
		cfg.Flag = []byte(flagValue)
	}
	if fs.Changed("port") {
		cfg.Port = port
	}
	if fs.Changed("verbose") {
		cfg.Verbose = verbose
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose + 1) // normal level by default

	srv, err := core.NewServer(cfg, logger, metrics.New())
	if err != nil {
		return err
	}
	return srv.Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `wordgame – word-association CTF challenge v%s

Serves a four-round word game over plaintext TCP.  Players who answer
every round within the time limit receive the flag.

Usage:
  wordgame -p <port> [options]

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  FLAG=flag{example} wordgame -p 4000       Flag from the environment
  wordgame -p 4000 -f flag{example}         Flag on the command line
  wordgame -p 4000 --env-file /etc/ctf.env  Flag from a dotenv file
`)
}
