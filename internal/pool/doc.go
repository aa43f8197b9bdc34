// Package pool provides the fixed-size worker pool that executes connection
// jobs for poolhttp.
//
// This package is internal to poolhttp. It turns the server's sequential
// accept loop into a bounded-concurrency dispatcher: every accepted
// connection becomes a [Job] that one of a fixed number of workers runs.
//
// The main components are:
//
//   - [Pool]: owns the workers and the shared job queue
//   - [Job]: a fire-and-forget unit of work
//
// Jobs are delivered to the first idle worker in arrival order. When every
// worker is busy, further jobs wait in the queue; nothing is ever dropped.
package pool
