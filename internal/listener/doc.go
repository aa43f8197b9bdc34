// Package listener provides the accept loop of poolhttp.
//
// This package is internal to poolhttp. A [Listener] blocks on Accept and
// hands every connection to the worker pool as a job, returning to Accept
// without waiting for the job. That hand-off is the only source of
// concurrency in the server.
//
// The loop runs until its context is cancelled, which closes the listening
// socket.
package listener
