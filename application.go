package poolhttp

import (
	"fmt"
	"io/fs"
)

// Application handles requests for a [Server].
//
// Handle is called on a worker goroutine, once per connection, with the
// parsed request. Returning nil means the application does not handle the
// request; the server then falls back to serving a static file from its
// resource directory.
//
// Handle may be called concurrently from every worker and must be safe for
// concurrent use. It runs to completion on its worker: a slow Handle keeps
// that worker busy and further connections queue behind it.
//
// A panic in Handle is recovered by the server and answered with
// 500 Internal Server Error.
type Application interface {
	Handle(req *Request) *Response
}

// ApplicationFunc adapts an ordinary function to the [Application]
// interface.
type ApplicationFunc func(req *Request) *Response

// Handle calls f(req).
func (f ApplicationFunc) Handle(req *Request) *Response {
	return f(req)
}

// StaticOnly is an [Application] that handles nothing, so every request is
// served from the resource directory.
var StaticOnly Application = ApplicationFunc(func(*Request) *Response { return nil })

// ServeFile builds a response whose body is the content of name in fsys.
//
// Unlike the static-file fallback, ServeFile applies no path rewriting; name
// must be a valid fs.FS path.
func ServeFile(fsys fs.FS, name string, status StatusCode) (Response, error) {
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Response{}, fmt.Errorf("serve file %q: %w", name, err)
	}
	return Response{Status: status, Body: string(content)}, nil
}
