// Package wire is the framed-message adapter between the byte stream
// and the game engine.
//
// The protocol has no length framing: one "message" is whatever the
// client sends for one exchange.  The adapter hides partial reads,
// partial writes, and transient socket unreadiness from the engine,
// and coalesces a reply that arrives split across TCP segments into a
// single message.  It never interprets message contents.
package wire

import (
	"fmt"
	"io"
	"net"
	"time"

	"wordgame/config"
	neterrors "wordgame/internal/errors"
	"wordgame/internal/metrics"
)

// Conn wraps a net.Conn with message-at-a-time semantics.
type Conn struct {
	conn net.Conn

	// MaxAttempts caps how many hard I/O failures are tolerated per
	// operation before the underlying error is surfaced.  A safety
	// valve against pathological sockets.
	MaxAttempts int

	// Coalesce is how long to wait for follow-up segments after a
	// chunk that doesn't end in a newline.  Zero disables coalescing
	// (single-read behavior).
	Coalesce time.Duration

	Metrics *metrics.Collector
}

// New wraps conn with the default retry cap and coalesce window.
func New(conn net.Conn, m *metrics.Collector) *Conn {
	return &Conn{
		conn:        conn,
		MaxAttempts: config.DefaultMaxIOAttempts,
		Coalesce:    config.DefaultCoalesceWindow,
		Metrics:     m,
	}
}

// ReadMessage reads one client message into buf, which is emptied
// first and reused across calls.  It blocks until at least one chunk
// arrives.  A clean remote close surfaces as ErrPeerClosed; hard read
// errors are retried up to MaxAttempts and then surfaced.
func (c *Conn) ReadMessage(buf []byte) ([]byte, error) {
	buf = buf[:0]
	if cap(buf) == 0 {
		buf = make([]byte, 0, 4096)
	}
	free := buf[:cap(buf)]

	// First chunk: block until the client says something.
	n, err := c.readChunk(free)
	if err != nil {
		return nil, err
	}
	buf = buf[:n]
	c.Metrics.BytesReceived(int64(n))

	// A human pasting into netcat lands in one segment, but a slow or
	// adversarial client may split a reply.  If the chunk doesn't end
	// in a newline, linger briefly for the rest rather than handing
	// the engine half a message.
	if c.Coalesce > 0 && buf[n-1] != '\n' {
		buf = c.coalesce(buf)
	}
	return buf, nil
}

// readChunk performs one blocking read, absorbing transient errors and
// retrying hard failures up to the attempt cap.
func (c *Conn) readChunk(free []byte) (int, error) {
	attempts := 0
	for {
		n, err := c.conn.Read(free)
		if n > 0 {
			return n, nil
		}
		switch {
		case neterrors.Is(err, io.EOF) || neterrors.Is(err, io.ErrClosedPipe):
			// Peer hung up.
			return 0, neterrors.ErrPeerClosed
		case err != nil && neterrors.IsRetryable(err):
			// Transient unreadiness never counts against the cap.
			continue
		default:
			// Either a hard failure or a zero-byte read without error;
			// the latter is legal for io.Reader but makes no progress,
			// so both count against the cap.
			attempts++
			if attempts > c.MaxAttempts {
				if err == nil {
					err = neterrors.New("read made no progress")
				}
				c.Metrics.RecordError(err.Error())
				return 0, neterrors.Wrap("read", c.addr(),
					fmt.Errorf("%w: %w", neterrors.ErrRetriesExhausted, err))
			}
		}
	}
}

// coalesce appends follow-up segments to buf until a newline arrives
// or the window expires.  Errors here just end the message; the next
// ReadMessage will report them properly.
func (c *Conn) coalesce(buf []byte) []byte {
	defer c.conn.SetReadDeadline(time.Time{}) //nolint:errcheck
	for len(buf) < cap(buf) {
		if err := c.conn.SetReadDeadline(time.Now().Add(c.Coalesce)); err != nil {
			return buf
		}
		n, err := c.conn.Read(buf[len(buf):cap(buf)])
		if n > 0 {
			c.Metrics.BytesReceived(int64(n))
			buf = buf[:len(buf)+n]
			if buf[len(buf)-1] == '\n' {
				return buf
			}
		}
		if err != nil {
			return buf
		}
	}
	return buf
}

// WriteMessage writes the whole of p, resuming partial writes from the
// next unwritten offset.  Timeouts are retried without counting; hard
// errors are retried up to MaxAttempts and then surfaced.
func (c *Conn) WriteMessage(p []byte) error {
	pos := 0
	attempts := 0
	for pos < len(p) {
		n, err := c.conn.Write(p[pos:])
		pos += n
		if err == nil {
			continue
		}
		if neterrors.IsRetryable(err) {
			continue
		}
		attempts++
		if attempts > c.MaxAttempts {
			c.Metrics.RecordError(err.Error())
			return neterrors.Wrap("write", c.addr(), err)
		}
	}
	c.Metrics.BytesSent(int64(len(p)))
	return nil
}

func (c *Conn) addr() string {
	if ra := c.conn.RemoteAddr(); ra != nil {
		return ra.String()
	}
	return "unknown"
}
