// Package core runs the accept loop, handing each connection to a
// fresh game session.
package core

import (
	"context"
	"fmt"
	"net"
	"time"

	"wordgame/config"
	neterrors "wordgame/internal/errors"
	"wordgame/internal/game"
	"wordgame/internal/metrics"
	"wordgame/internal/retry"
	"wordgame/internal/session"
	"wordgame/util"
)

// Server owns the listener and dispatches accepted connections.  Each
// session runs in its own goroutine; sessions share nothing mutable,
// so no coordination is needed beyond the listener itself.
type Server struct {
	Addr    string
	Engine  *game.Engine
	Logger  *util.Logger
	Metrics *metrics.Collector
}

// NewServer builds a Server from validated configuration.
func NewServer(cfg *config.Config, logger *util.Logger, m *metrics.Collector) (*Server, error) {
	if len(cfg.Flag) == 0 {
		return nil, fmt.Errorf("refusing to serve without a flag")
	}
	return &Server{
		Addr:    cfg.ListenAddr(),
		Engine:  game.NewEngine(cfg.Flag, cfg.SessionDeadline, m),
		Logger:  logger,
		Metrics: m,
	}, nil
}

// Run binds the listener and accepts until the context is cancelled.
// A bind failure is fatal; everything after that is not.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return neterrors.Wrap("listen", s.Addr, err)
	}
	defer ln.Close()

	s.Logger.Info("starting server on %s", ln.Addr())

	// Shut the listener down when the context expires.
	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	return s.serve(ctx, ln)
}

// serve accepts until the listener dies.  Accept errors never take
// the dispatcher down: transient ones are retried with backoff inside
// accept, anything else is logged and the loop keeps going.
func (s *Server) serve(ctx context.Context, ln net.Listener) error {
	for {
		conn, err := s.accept(ctx, ln)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			if neterrors.Is(err, net.ErrClosed) {
				return nil
			}
			s.Metrics.RecordError(err.Error())
			s.Logger.Error("accept failed: %v", err)
			// Brief pause so a listener that fails every call can't
			// spin the loop hot.
			time.Sleep(config.DefaultAcceptBackoff)
			continue
		}
		go s.serveConn(conn)
	}
}

// accept waits for the next connection, riding out transient failures
// (aborted handshakes, momentary fd exhaustion) with backoff instead
// of spinning or dying.
func (s *Server) accept(ctx context.Context, ln net.Listener) (net.Conn, error) {
	var conn net.Conn
	b := retry.DefaultBackoff()
	b.InitialDelay = config.DefaultAcceptBackoff
	err := b.Do(ctx, func(attempt int) error {
		var err error
		conn, err = ln.Accept()
		if err == nil {
			return nil
		}
		if neterrors.IsRetryable(err) {
			s.Logger.Warn("accept failed (attempt %d): %v", attempt, err)
			return err
		}
		return retry.Permanent(err)
	})
	return conn, err
}

// serveConn runs one session to resolution and tears the socket down.
// Session failures are logged and never propagate to the accept loop.
func (s *Server) serveConn(conn net.Conn) {
	s.Metrics.SessionOpened()
	defer s.Metrics.SessionClosed()

	sess := session.New(conn, s.Logger)
	defer sess.Release()

	sess.Logger.Info("received connection: %s", conn.RemoteAddr())

	outcome, err := s.Engine.Play(sess)
	switch {
	case err == nil:
		sess.Logger.Verbose("session finished: %s", outcome)
	case neterrors.IsDisconnect(err):
		sess.Logger.Verbose("client went away: %v", err)
	default:
		sess.Logger.Error("session failed: %v", err)
	}

	s.shutdown(sess)
	sess.Logger.Debug("stats: %s", s.Metrics)
}

// shutdown closes the connection in both directions.  On TCP that
// means explicit half-closes before the final Close, so the client
// sees a clean FIN whichever direction it was using.
func (s *Server) shutdown(sess *session.Session) {
	if tc, ok := sess.Conn.(*net.TCPConn); ok {
		tc.CloseWrite() //nolint:errcheck
		tc.CloseRead()  //nolint:errcheck
	}
	if err := sess.Conn.Close(); err != nil && !neterrors.Is(err, net.ErrClosed) {
		sess.Logger.Warn("failed to shut down connection: %v", err)
		return
	}
	sess.Logger.Verbose("connection shut down")
}
