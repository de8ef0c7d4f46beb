package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags, environment variable loading, and tests.

const (
	// DefaultListenAddress is the loopback address the server binds to.
	// The challenge is exposed to players through the event's jump box,
	// never directly.
	DefaultListenAddress = "127.0.0.1"

	// DefaultSessionDeadline is the total wall-clock time a client has
	// to finish all rounds, measured from the session's first read.
	DefaultSessionDeadline = 5 * time.Second

	// DefaultMaxIOAttempts caps how many times a failing socket read or
	// write is retried before the session is torn down.  A safety valve
	// against misbehaving sockets, not a protocol contract.
	DefaultMaxIOAttempts = 100

	// DefaultCoalesceWindow is how long a read waits for follow-up TCP
	// segments once a first chunk has arrived without a trailing
	// newline.  Keeps a reply split across segments in one message.
	DefaultCoalesceWindow = 100 * time.Millisecond

	// DefaultAcceptBackoff is the initial delay before retrying a
	// transient accept failure.
	DefaultAcceptBackoff = 5 * time.Millisecond
)
