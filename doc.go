// Package poolhttp provides a small multi-worker HTTP/1.1 server with a
// pluggable application and a static-file fallback.
//
// Every connection carries exactly one request: the server parses it, asks
// the [Application] for a [Response], writes the response and closes the
// connection. Connections are executed by a fixed pool of workers, so at
// most N requests are in progress at once and further connections wait in
// arrival order.
//
// # Quick Start
//
//	app := poolhttp.ApplicationFunc(func(req *poolhttp.Request) *poolhttp.Response {
//	    if req.Method == poolhttp.MethodGet && req.Path == "/hello" {
//	        resp := poolhttp.NewResponse(poolhttp.StatusOK, "hello",
//	            "Content-Type: text/plain; charset=utf-8")
//	        return &resp
//	    }
//	    return nil // fall back to res/<path>
//	})
//
//	srv, _ := poolhttp.New(app, poolhttp.WithPort("8080"), poolhttp.WithWorkers(8))
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	srv.Start(ctx) // blocks until ctx is cancelled
//
// # Wire Format
//
// Requests are read as a request line, raw header lines and an optional
// Content-Length body. Headers are kept as raw lines; only Content-Length is
// interpreted. Responses are written as
//
//	HTTP/1.1 <code> <reason>\r\n
//	Content-Length: <n>\r\n
//	<headers>\r\n
//	\r\n
//	<body>
//
// There is no keep-alive, chunked encoding, TLS or HTTP/2.
//
// # Static Files
//
// When the application returns nil, GET requests are served from the
// resource directory ("res" by default): the leading "/" is stripped, a
// trailing "/" gets "index.html", and "../" sequences are deleted. Missing
// files are answered with the 404.html page. Malformed requests get the
// bad_request.html page with 400. Built-in copies of these pages are used
// when the resource directory does not provide them.
//
// # Architecture
//
// poolhttp consists of several internal packages (under internal/):
//
//   - internal/pool: fixed-size worker pool over a shared FIFO job queue
//   - internal/listener: accept loop that submits connections to the pool
//   - internal/static: resource directory lookups and designated pages
//   - resources: embedded default pages
//
// The internal packages are not part of the public API and may change
// without notice.
package poolhttp
