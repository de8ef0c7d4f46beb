// Package metrics provides lightweight counters for tracking runtime
// statistics of the challenge server.
//
// All methods are safe for concurrent use.  A nil *Collector is a
// valid no-op receiver, so callers never need to nil-check.
package metrics

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"
)

// Collector tracks runtime metrics across all sessions.
// A nil Collector is safe to use — all methods become no-ops.
type Collector struct {
	sessionsActive atomic.Int64
	sessionsTotal  atomic.Int64
	flagsWon       atomic.Int64
	rejections     atomic.Int64
	bytesIn        atomic.Int64
	bytesOut       atomic.Int64
	errorsTotal    atomic.Int64

	mu           sync.RWMutex
	startTime    time.Time
	lastError    time.Time
	lastErrorMsg string
}

// New creates a metrics collector with the start time set to now.
func New() *Collector {
	return &Collector{startTime: time.Now()}
}

// ── Session metrics ──────────────────────────────────────────────────

// SessionOpened increments both the active and total counters.
func (c *Collector) SessionOpened() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(1)
	c.sessionsTotal.Add(1)
}

// SessionClosed decrements the active session counter.
func (c *Collector) SessionClosed() {
	if c == nil {
		return
	}
	c.sessionsActive.Add(-1)
}

// FlagWon records a session that completed all rounds.
func (c *Collector) FlagWon() {
	if c == nil {
		return
	}
	c.flagsWon.Add(1)
}

// Rejection records a session ended by a protocol violation (bad
// greeting, wrong word, timeout).
func (c *Collector) Rejection() {
	if c == nil {
		return
	}
	c.rejections.Add(1)
}

// ActiveSessions returns the current number of open sessions.
func (c *Collector) ActiveSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsActive.Load()
}

// TotalSessions returns the lifetime session count.
func (c *Collector) TotalSessions() int64 {
	if c == nil {
		return 0
	}
	return c.sessionsTotal.Load()
}

// FlagsWon returns how many sessions ended with the flag.
func (c *Collector) FlagsWon() int64 {
	if c == nil {
		return 0
	}
	return c.flagsWon.Load()
}

// Rejections returns how many sessions ended in a protocol rejection.
func (c *Collector) Rejections() int64 {
	if c == nil {
		return 0
	}
	return c.rejections.Load()
}

// ── I/O metrics ──────────────────────────────────────────────────────

// BytesReceived records n bytes read from the network.
func (c *Collector) BytesReceived(n int64) {
	if c == nil {
		return
	}
	c.bytesIn.Add(n)
}

// BytesSent records n bytes written to the network.
func (c *Collector) BytesSent(n int64) {
	if c == nil {
		return
	}
	c.bytesOut.Add(n)
}

// TotalBytesIn returns total bytes received.
func (c *Collector) TotalBytesIn() int64 {
	if c == nil {
		return 0
	}
	return c.bytesIn.Load()
}

// TotalBytesOut returns total bytes sent.
func (c *Collector) TotalBytesOut() int64 {
	if c == nil {
		return 0
	}
	return c.bytesOut.Load()
}

// ── Error metrics ────────────────────────────────────────────────────

// RecordError counts an I/O failure and remembers its message.
func (c *Collector) RecordError(msg string) {
	if c == nil {
		return
	}
	c.errorsTotal.Add(1)
	c.mu.Lock()
	c.lastError = time.Now()
	c.lastErrorMsg = msg
	c.mu.Unlock()
}

// TotalErrors returns the lifetime error count.
func (c *Collector) TotalErrors() int64 {
	if c == nil {
		return 0
	}
	return c.errorsTotal.Load()
}

// ── Snapshot ─────────────────────────────────────────────────────────

// Snapshot is a point-in-time view of all counters.
type Snapshot struct {
	Uptime         string `json:"uptime"`
	SessionsActive int64  `json:"sessions_active"`
	SessionsTotal  int64  `json:"sessions_total"`
	FlagsWon       int64  `json:"flags_won"`
	Rejections     int64  `json:"rejections"`
	BytesIn        int64  `json:"bytes_in"`
	BytesOut       int64  `json:"bytes_out"`
	ErrorsTotal    int64  `json:"errors_total"`
	LastError      string `json:"last_error,omitempty"`
}

// Snapshot returns the current counter values.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.RLock()
	uptime := time.Since(c.startTime).Round(time.Second).String()
	lastErr := c.lastErrorMsg
	c.mu.RUnlock()
	return Snapshot{
		Uptime:         uptime,
		SessionsActive: c.sessionsActive.Load(),
		SessionsTotal:  c.sessionsTotal.Load(),
		FlagsWon:       c.flagsWon.Load(),
		Rejections:     c.rejections.Load(),
		BytesIn:        c.bytesIn.Load(),
		BytesOut:       c.bytesOut.Load(),
		ErrorsTotal:    c.errorsTotal.Load(),
		LastError:      lastErr,
	}
}

// String renders the snapshot as single-line JSON for logging.
func (c *Collector) String() string {
	b, err := json.Marshal(c.Snapshot())
	if err != nil {
		return "{}"
	}
	return string(b)
}
