package pool

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/google/uuid"
)

// ErrPoolClosed is the panic value raised by [Pool.Execute] when a job is
// submitted after [Pool.Close]. Submitting after shutdown is a programming
// error, not a runtime condition callers are expected to handle.
var ErrPoolClosed = errors.New("pool: execute called after close")

// Job is a deferred, independent unit of work. It takes no arguments and
// returns nothing; callers that need a result must arrange it themselves.
type Job func()

// Pool distributes jobs across a fixed number of worker goroutines.
//
// Workers are started by [New] and live until [Pool.Close]. The worker count
// never changes: with n workers busy, the n+1-th job waits in the queue until
// one of them frees up.
//
// A job that panics is recovered by its worker. The panic is logged with a
// correlation ID and the worker goes back to the queue, so a misbehaving job
// does not shrink the pool.
//
// All methods are safe for concurrent use.
type Pool struct {
	queue  *queue
	size   int
	logger *slog.Logger
	wg     sync.WaitGroup
}

// New creates a [Pool] and starts exactly n workers.
//
// New panics if n is not positive. The pool must be shut down with
// [Pool.Close] to release the workers.
func New(n int, logger *slog.Logger) *Pool {
	if n <= 0 {
		panic(fmt.Sprintf("pool: worker count must be positive, got %d", n))
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		queue:  newQueue(),
		size:   n,
		logger: logger,
	}

	p.wg.Add(n)
	for id := range n {
		go p.work(id)
	}

	return p
}

// Execute queues job for asynchronous execution on any idle worker and
// returns immediately.
//
// There is no completion signal and no ordering guarantee beyond arrival-order
// delivery to the next free worker; jobs submitted close together may run
// concurrently and finish in any order.
//
// Execute panics with [ErrPoolClosed] if called after [Pool.Close].
func (p *Pool) Execute(job Job) {
	if job == nil {
		return
	}
	if !p.queue.push(job) {
		panic(ErrPoolClosed)
	}
}

// Close stops the pool and waits for every worker to exit.
//
// Close stops accepting new jobs first. Workers then keep running until the
// queue is empty, so every job submitted before Close still executes before
// Close returns. Close is idempotent.
func (p *Pool) Close() {
	if p.queue.close() {
		p.logger.Debug("pool closing", "workers", p.size, "pending", p.queue.len())
	}
	p.wg.Wait()
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return p.size
}

// Pending returns the number of jobs waiting for a free worker.
func (p *Pool) Pending() int {
	return p.queue.len()
}

// work is the receive loop of a single worker.
func (p *Pool) work(id int) {
	defer p.wg.Done()

	for {
		job, ok := p.queue.pop()
		if !ok {
			p.logger.Debug("worker shutting down", "worker", id)
			return
		}
		p.run(id, job)
	}
}

// run executes one job with panic recovery.
func (p *Pool) run(id int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			p.logger.Error("job panic",
				"worker", id,
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	job()
}
