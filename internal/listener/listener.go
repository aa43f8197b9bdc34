package listener

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"time"

	"github.com/jpalmerr/poolhttp/internal/pool"
)

// maxAcceptBackoff caps the pause after consecutive transient accept errors.
const maxAcceptBackoff = time.Second

// ConnHandler serves one accepted connection. It owns the connection and
// must close it.
type ConnHandler func(net.Conn)

// Executor runs jobs asynchronously. [pool.Pool] implements it.
type Executor interface {
	Execute(job pool.Job)
}

// Listener is the server's accept loop.
type Listener struct {
	exec   Executor
	handle ConnHandler
	logger *slog.Logger
}

// New creates a [Listener] that submits each accepted connection to exec.
func New(exec Executor, handle ConnHandler, logger *slog.Logger) *Listener {
	if logger == nil {
		logger = slog.Default()
	}
	return &Listener{
		exec:   exec,
		handle: handle,
		logger: logger,
	}
}

// Listen binds a TCP listener on all interfaces at the given port.
//
// Binding happens synchronously so that a port conflict is reported to the
// caller before any goroutine starts.
func Listen(port string) (net.Listener, error) {
	return net.Listen("tcp", net.JoinHostPort("", port))
}

// Serve accepts connections on ln until ctx is cancelled.
//
// Each connection is wrapped in a job and submitted to the executor; Serve
// never waits for that job. Accept errors while ctx is live are logged and
// skipped. Serve closes ln and returns nil once ctx is cancelled. Any other
// return means ln failed permanently.
func (l *Listener) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()
	defer ln.Close()

	l.logger.Info("listening", "addr", ln.Addr().String())

	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			backoff = nextBackoff(backoff)
			l.logger.Warn("accept failed", "error", err, "retry_in", backoff.String())
			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return nil
			}
		}
		backoff = 0

		l.exec.Execute(func() {
			l.handle(conn)
		})
	}
}

func nextBackoff(d time.Duration) time.Duration {
	if d == 0 {
		return 5 * time.Millisecond
	}
	d *= 2
	if d > maxAcceptBackoff {
		d = maxAcceptBackoff
	}
	return d
}
