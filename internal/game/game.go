// Package game implements the challenge protocol state machine.
//
// One session runs: greeting, readiness check, then four rounds of
// eight words each.  The prompts come from the session's private
// shuffle of the vocabulary, so over four rounds the client sees all
// 32 words exactly once, in an order it cannot predict.  The expected
// answers come from the canonical table, never the shuffle.
package game

import (
	"bytes"
	"time"

	"wordgame/config"
	"wordgame/internal/metrics"
	"wordgame/internal/session"
	"wordgame/internal/wire"
	"wordgame/internal/words"
)

// Rounds is the number of prompt/response exchanges in a game.
const Rounds = 4

// WordsPerRound is how many words each prompt carries.
const WordsPerRound = words.Count / Rounds

// Protocol strings.  These are part of the challenge's observable
// behavior; players diff them, so they must stay byte-exact.
var (
	msgGreetingReply = []byte("hello! let's play a game :3\n")
	msgBadGreeting   = []byte("that's not a nice greeting...\n")
	msgNotPlaying    = []byte("okay, we can play later then...") // deliberately no newline
	msgTooSlow       = []byte("you took too long!")
	msgWrongWord     = []byte("you said the wrong word!\n")
	msgWinPrefix     = []byte("good job! the flag is ")

	prefixHello = []byte("hello")
	prefixOK    = []byte("ok")
)

// Outcome is how a session ended.
type Outcome int

const (
	// Won: all four rounds answered correctly in time; the flag was sent.
	Won Outcome = iota
	// Rejected: the client broke the protocol (bad greeting, refusal,
	// wrong word, or timeout).  Normal from the server's perspective.
	Rejected
	// Aborted: the connection failed before the game resolved.
	Aborted
)

func (o Outcome) String() string {
	switch o {
	case Won:
		return "won"
	case Rejected:
		return "rejected"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Engine drives one session from greeting to resolution.  It holds
// only read-only process-wide state and is safe to share across
// concurrent sessions.
type Engine struct {
	Flag     []byte
	Deadline time.Duration
	Metrics  *metrics.Collector

	// now is swappable for deadline tests.
	now func() time.Time
}

// NewEngine creates an engine that awards flag to winning sessions.
func NewEngine(flag []byte, deadline time.Duration, m *metrics.Collector) *Engine {
	if deadline <= 0 {
		deadline = config.DefaultSessionDeadline
	}
	return &Engine{
		Flag:     flag,
		Deadline: deadline,
		Metrics:  m,
		now:      time.Now,
	}
}

// Play runs the protocol over the session's connection until the game
// resolves.  Protocol violations by the client are normal outcomes and
// return a nil error; only I/O failures are errors.
func (e *Engine) Play(sess *session.Session) (Outcome, error) {
	conn := wire.New(sess.Conn, e.Metrics)

	// Greeting: the client speaks first.
	msg, err := conn.ReadMessage(sess.Buf())
	if err != nil {
		return Aborted, err
	}
	if !bytes.HasPrefix(msg, prefixHello) {
		if err := conn.WriteMessage(msgBadGreeting); err != nil {
			return Aborted, err
		}
		return e.reject(sess, "impolite greeting")
	}
	if err := conn.WriteMessage(msgGreetingReply); err != nil {
		return Aborted, err
	}

	// Readiness.
	msg, err = conn.ReadMessage(sess.Buf())
	if err != nil {
		return Aborted, err
	}
	if !bytes.HasPrefix(msg, prefixOK) {
		if err := conn.WriteMessage(msgNotPlaying); err != nil {
			return Aborted, err
		}
		return e.reject(sess, "declined to play")
	}

	// Rounds.  The deadline is checked before each prompt, never
	// mid-round: a client that answers round 3 at 4.9s still wins.
	for round := 0; round < Rounds; round++ {
		if e.now().Sub(sess.Start) > e.Deadline {
			if err := conn.WriteMessage(msgTooSlow); err != nil {
				return Aborted, err
			}
			return e.reject(sess, "deadline expired before round %d", round)
		}

		prompt := sess.Words[round*WordsPerRound : (round+1)*WordsPerRound]
		if err := conn.WriteMessage(promptLine(prompt)); err != nil {
			return Aborted, err
		}

		reply, err := conn.ReadMessage(sess.Buf())
		if err != nil {
			return Aborted, err
		}
		if ok := e.checkReply(sess, prompt, reply); !ok {
			if err := conn.WriteMessage(msgWrongWord); err != nil {
				return Aborted, err
			}
			return e.reject(sess, "wrong word in round %d", round)
		}
	}

	// The only path that reveals the flag.
	win := make([]byte, 0, len(msgWinPrefix)+len(e.Flag)+1)
	win = append(win, msgWinPrefix...)
	win = append(win, e.Flag...)
	win = append(win, '\n')
	if err := conn.WriteMessage(win); err != nil {
		return Aborted, err
	}
	e.Metrics.FlagWon()
	sess.Logger.Info("flag delivered")
	return Won, nil
}

// checkReply compares the client's reply against the expected answers
// for prompt.  Matching is byte-exact on each token; anything beyond
// the eighth token is ignored.
func (e *Engine) checkReply(sess *session.Session, prompt []string, reply []byte) bool {
	// Tolerate the newline (and stray whitespace) a well-formed client
	// sends after its final token.
	reply = bytes.TrimRight(reply, " \t\r\n")
	tokens := bytes.Split(reply, []byte{' '})

	for k, w := range prompt {
		want := words.Answer(w)
		var got []byte
		if k < len(tokens) {
			got = tokens[k]
		}
		if !bytes.Equal(got, []byte(want)) {
			sess.Logger.Info("expected %s got %s", want, got)
			return false
		}
	}
	return true
}

// promptLine joins a round's words with single spaces and a trailing
// newline.
func promptLine(prompt []string) []byte {
	var b bytes.Buffer
	for i, w := range prompt {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(w)
	}
	b.WriteByte('\n')
	return b.Bytes()
}

// reject records a protocol violation and resolves the session.
func (e *Engine) reject(sess *session.Session, format string, args ...interface{}) (Outcome, error) {
	e.Metrics.Rejection()
	sess.Logger.Verbose("session rejected: "+format, args...)
	return Rejected, nil
}
