// Package session represents a single connection lifecycle, binding a
// network connection with the per-session game state.
//
// Sessions decouple the game engine from concrete I/O sources — the
// engine doesn't need to know whether it's talking to a real TCP
// connection or a test pipe.
package session

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"net"
	"time"

	"github.com/google/uuid"

	"wordgame/internal/words"
	"wordgame/util"
)

// Session encapsulates the runtime state for a single connection: its
// identity, its private shuffle of the vocabulary, and the receive
// buffer reused across reads.  A session is owned by exactly one
// goroutine and is never shared.
type Session struct {
	ID     uuid.UUID
	Conn   net.Conn
	Words  []string // this session's permutation of the vocabulary
	Start  time.Time
	Logger *util.Logger

	buf *[]byte // pooled receive buffer
}

// New creates a Session bound to the given connection, with a freshly
// seeded random permutation.  Start is captured here, before the first
// read, and anchors the session deadline.
func New(conn net.Conn, logger *util.Logger) *Session {
	id := uuid.New()
	rng := rand.New(rand.NewSource(cryptoSeed()))
	return &Session{
		ID:     id,
		Conn:   conn,
		Words:  words.Shuffle(rng),
		Start:  time.Now(),
		Logger: logger.WithPrefix(shortID(id)),
		buf:    util.GetBuf(),
	}
}

// Buf returns the session's receive buffer, emptied and ready for the
// next message.
func (s *Session) Buf() []byte {
	return (*s.buf)[:0]
}

// Release returns pooled resources.  The session must not be used
// afterwards.
func (s *Session) Release() {
	if s.buf != nil {
		util.PutBuf(s.buf)
		s.buf = nil
	}
}

// cryptoSeed draws a 64-bit seed from the OS entropy source, so
// permutations cannot be predicted from connection timing.
func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		// Entropy exhaustion is effectively unreachable on supported
		// platforms; fall back to the clock rather than dying.
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// shortID renders the first uuid group, enough to correlate log lines.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
