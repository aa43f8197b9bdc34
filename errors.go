package poolhttp

import "errors"

// Parse failures returned by [Parser.Parse]. They are wrapped with context,
// so compare with errors.Is.
var (
	// ErrIO reports a socket read failure other than a clean end of stream.
	ErrIO = errors.New("poolhttp: i/o error")

	// ErrConnectionClosedEarly reports that the peer closed the connection
	// before sending a request line.
	ErrConnectionClosedEarly = errors.New("poolhttp: connection closed before request line")

	// ErrMalformedRequestLine reports a request line that does not split into
	// exactly method, path and version.
	ErrMalformedRequestLine = errors.New("poolhttp: malformed request line")

	// ErrInvalidBodyEncoding reports a body that is not valid UTF-8.
	ErrInvalidBodyEncoding = errors.New("poolhttp: body is not valid utf-8")

	// ErrBodyTooLarge reports a Content-Length above the parser limit when
	// the parser is configured with [RejectOversizedBody].
	ErrBodyTooLarge = errors.New("poolhttp: body too large")
)
