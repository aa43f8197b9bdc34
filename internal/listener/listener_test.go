package listener

import (
	"context"
	"io"
	"log/slog"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jpalmerr/poolhttp/internal/pool"
)

// testLogger returns a logger that discards all output for clean test output.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// countingExecutor runs each job on its own goroutine and counts submissions.
type countingExecutor struct {
	submitted atomic.Int32
}

func (e *countingExecutor) Execute(job pool.Job) {
	e.submitted.Add(1)
	go job()
}

func localListener(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	return ln
}

func TestListener_SubmitsEachConnection(t *testing.T) {
	exec := &countingExecutor{}
	handled := make(chan string, 4)
	handle := func(c net.Conn) {
		defer c.Close()
		buf := make([]byte, 5)
		if _, err := io.ReadFull(c, buf); err == nil {
			handled <- string(buf)
		}
	}

	ln := localListener(t)
	l := New(exec, handle, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx, ln) }()

	for _, msg := range []string{"hello", "world"} {
		c, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		if _, err := c.Write([]byte(msg)); err != nil {
			t.Fatalf("write: %v", err)
		}
		select {
		case got := <-handled:
			if got != msg {
				t.Errorf("handled %q, want %q", got, msg)
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("connection %q was not handled", msg)
		}
		_ = c.Close()
	}

	if got := exec.submitted.Load(); got != 2 {
		t.Errorf("submitted jobs = %d, want 2", got)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return after context cancellation")
	}
}

// TestListener_DoesNotWaitForJobs verifies the accept loop keeps accepting
// while an earlier connection is still being handled.
func TestListener_DoesNotWaitForJobs(t *testing.T) {
	p := pool.New(2, testLogger())
	defer p.Close()

	release := make(chan struct{})
	var active atomic.Int32
	reached := make(chan struct{}, 2)
	handle := func(c net.Conn) {
		defer c.Close()
		active.Add(1)
		reached <- struct{}{}
		<-release
	}

	ln := localListener(t)
	l := New(p, handle, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx, ln) }()

	for range 2 {
		c, err := net.Dial("tcp", ln.Addr().String())
		if err != nil {
			t.Fatalf("dial: %v", err)
		}
		defer c.Close()
	}

	for range 2 {
		select {
		case <-reached:
		case <-time.After(2 * time.Second):
			t.Fatalf("only %d connections being handled, want 2", active.Load())
		}
	}

	close(release)
	cancel()
	<-done
}

func TestListener_ServeReturnsWhenContextAlreadyCancelled(t *testing.T) {
	ln := localListener(t)
	l := New(&countingExecutor{}, func(c net.Conn) { c.Close() }, testLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done := make(chan error, 1)
	go func() { done <- l.Serve(ctx, ln) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() error = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve() did not return")
	}
}

func TestListen_BindsPort(t *testing.T) {
	ln, err := Listen("0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	defer ln.Close()

	if _, ok := ln.Addr().(*net.TCPAddr); !ok {
		t.Errorf("Addr() = %T, want *net.TCPAddr", ln.Addr())
	}
}

func TestNextBackoff(t *testing.T) {
	d := nextBackoff(0)
	if d != 5*time.Millisecond {
		t.Errorf("nextBackoff(0) = %v, want 5ms", d)
	}
	for range 20 {
		d = nextBackoff(d)
	}
	if d != maxAcceptBackoff {
		t.Errorf("backoff after many errors = %v, want %v", d, maxAcceptBackoff)
	}
}
