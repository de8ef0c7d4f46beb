package session

import (
	"net"
	"testing"

	"github.com/google/uuid"

	"wordgame/internal/words"
	"wordgame/util"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	server, client := net.Pipe()
	t.Cleanup(func() {
		server.Close()
		client.Close()
	})
	s := New(server, util.NewLogger(0))
	t.Cleanup(s.Release)
	return s
}

func TestNew_PopulatesState(t *testing.T) {
	s := newSession(t)

	if s.ID == uuid.Nil {
		t.Error("session id not set")
	}
	if s.Start.IsZero() {
		t.Error("start time not captured")
	}
	if len(s.Words) != words.Count {
		t.Fatalf("permutation has %d words, want %d", len(s.Words), words.Count)
	}
	seen := map[string]bool{}
	for _, w := range s.Words {
		if seen[w] {
			t.Errorf("word %q appears twice in permutation", w)
		}
		seen[w] = true
	}
}

// TestNew_IndependentPermutations guards against a shared generator
// making every session predictable.
func TestNew_IndependentPermutations(t *testing.T) {
	a := newSession(t)
	b := newSession(t)

	if a.ID == b.ID {
		t.Error("two sessions share an id")
	}

	same := true
	for i := range a.Words {
		if a.Words[i] != b.Words[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("two sessions produced identical permutations")
	}
}

func TestBuf_EmptyAndReusable(t *testing.T) {
	s := newSession(t)

	buf := s.Buf()
	if len(buf) != 0 {
		t.Errorf("buffer not empty: len %d", len(buf))
	}
	if cap(buf) < util.MessageBufSize {
		t.Errorf("buffer cap %d, want at least %d", cap(buf), util.MessageBufSize)
	}

	buf = append(buf, "scribble"...)
	if got := s.Buf(); len(got) != 0 {
		t.Error("Buf did not reset the buffer")
	}
}

func TestRelease_Idempotent(t *testing.T) {
	server, client := net.Pipe()
	defer server.Close()
	defer client.Close()

	s := New(server, util.NewLogger(0))
	s.Release()
	s.Release() // must not panic
}
