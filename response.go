package poolhttp

import (
	"bytes"
	"io"
	"strconv"
	"strings"
)

// Response is an HTTP/1.1 response produced by an [Application].
//
// The zero value is a valid empty 200 OK response. Content-Length is always
// computed from Body when the response is serialized; a Content-Length line
// in Headers is dropped rather than sent twice.
type Response struct {
	// Status is the response status. Zero means StatusOK.
	Status StatusCode

	// Body is sent after the blank line. Its byte length becomes the
	// Content-Length header.
	Body string

	// Headers are raw header lines ("Content-Type: text/html") written in
	// order after Content-Length.
	Headers []string
}

// NewResponse returns a response with the given status and body.
func NewResponse(status StatusCode, body string, headers ...string) Response {
	return Response{Status: status, Body: body, Headers: headers}
}

// WriteTo serializes the response to w in HTTP/1.1 wire format:
//
//	HTTP/1.1 <code> <reason>\r\n
//	Content-Length: <len(Body)>\r\n
//	<each header>\r\n
//	\r\n
//	<Body>
//
// WriteTo implements io.WriterTo. The only errors it returns come from w.
func (r Response) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	r.encode(&buf)
	return buf.WriteTo(w)
}

// Bytes returns the serialized response.
func (r Response) Bytes() []byte {
	var buf bytes.Buffer
	r.encode(&buf)
	return buf.Bytes()
}

// String returns the serialized response.
func (r Response) String() string {
	return string(r.Bytes())
}

func (r Response) encode(buf *bytes.Buffer) {
	status := r.Status
	if status == 0 {
		status = StatusOK
	}

	buf.Grow(64 + len(r.Body))
	buf.WriteString("HTTP/1.1 ")
	buf.WriteString(status.String())
	buf.WriteString("\r\nContent-Length: ")
	buf.WriteString(strconv.Itoa(len(r.Body)))
	buf.WriteString("\r\n")

	for _, h := range r.Headers {
		if isContentLength(h) {
			continue
		}
		buf.WriteString(h)
		buf.WriteString("\r\n")
	}

	buf.WriteString("\r\n")
	buf.WriteString(r.Body)
}

func isContentLength(line string) bool {
	key, _, found := strings.Cut(line, ":")
	return found && strings.EqualFold(strings.TrimSpace(key), "Content-Length")
}
