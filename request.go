package poolhttp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// DefaultMaxBodyBytes is the body size ceiling used when [Parser.MaxBodyBytes]
// is zero.
const DefaultMaxBodyBytes = 4096

// Request is a parsed HTTP/1.1 request.
//
// A Request is built once per connection by [Parser.Parse] and is not
// modified afterwards. Nothing in it is normalized: Path keeps the query
// string, leading and trailing slashes and any ".." segments exactly as sent.
type Request struct {
	// Method is the request method. Unrecognized tokens become MethodUnknown.
	Method Method

	// Path is the request target taken verbatim from the request line.
	Path string

	// Version is the protocol version token, e.g. "HTTP/1.1".
	Version string

	// Headers holds every header line in arrival order, without the line
	// terminator. Duplicates are kept. Lines are not split into key/value.
	Headers []string

	// Body is the request body decoded as UTF-8. Empty when the request has
	// no Content-Length.
	Body string
}

// BodyPolicy decides what the parser does with a Content-Length above its
// limit.
type BodyPolicy int

const (
	// RejectOversizedBody fails the parse with ErrBodyTooLarge.
	RejectOversizedBody BodyPolicy = iota

	// IgnoreOversizedBody returns the request with an empty body and leaves
	// the body bytes unread.
	IgnoreOversizedBody
)

// String returns the configuration name of the policy.
func (p BodyPolicy) String() string {
	switch p {
	case RejectOversizedBody:
		return "reject"
	case IgnoreOversizedBody:
		return "ignore"
	default:
		return "unknown"
	}
}

// ParseBodyPolicy maps "reject" or "ignore" to a [BodyPolicy].
func ParseBodyPolicy(s string) (BodyPolicy, error) {
	switch s {
	case "reject":
		return RejectOversizedBody, nil
	case "ignore":
		return IgnoreOversizedBody, nil
	default:
		return 0, fmt.Errorf("unknown body policy %q (expected 'reject' or 'ignore')", s)
	}
}

// Parser reads one request from a connection.
//
// The zero value is ready to use: a 4096 byte body limit with
// [RejectOversizedBody].
type Parser struct {
	// MaxBodyBytes caps Content-Length. Zero means DefaultMaxBodyBytes.
	MaxBodyBytes int

	// BodyTooLarge selects the behavior for bodies above MaxBodyBytes.
	BodyTooLarge BodyPolicy
}

// ReadRequest parses a single request from r with a zero [Parser].
func ReadRequest(r io.Reader) (*Request, error) {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return Parser{}.Parse(br)
}

// Parse reads one request from br.
//
// Parsing steps:
//  1. The request line is split on single spaces into method, path and
//     version. Anything but exactly three tokens is ErrMalformedRequestLine.
//  2. Header lines are collected until an empty line. A Content-Length
//     header sets the body length; an unparsable value is ignored.
//  3. Without a Content-Length the request has no body. Otherwise exactly
//     that many bytes are read and must be valid UTF-8.
//
// End of stream before the request line is ErrConnectionClosedEarly. End of
// stream while reading headers is not an error: the request is returned with
// the headers read so far and no body.
func (p Parser) Parse(br *bufio.Reader) (*Request, error) {
	line, err := readLine(br)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrConnectionClosedEarly
		}
		return nil, fmt.Errorf("%w: reading request line: %w", ErrIO, err)
	}

	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %q", ErrMalformedRequestLine, line)
	}

	req := &Request{
		Method:  ParseMethod(parts[0]),
		Path:    parts[1],
		Version: parts[2],
	}

	length := 0
	for {
		line, err := readLine(br)
		if errors.Is(err, io.EOF) {
			// peer closed mid-headers
			return req, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: reading headers: %w", ErrIO, err)
		}
		if line == "" {
			break
		}

		req.Headers = append(req.Headers, line)
		if n, ok := contentLength(line); ok {
			length = n
		}
	}

	if length == 0 {
		return req, nil
	}

	if length > p.maxBodyBytes() {
		if p.BodyTooLarge == IgnoreOversizedBody {
			return req, nil
		}
		return nil, fmt.Errorf("%w: content-length %d exceeds %d", ErrBodyTooLarge, length, p.maxBodyBytes())
	}

	body := make([]byte, length)
	if _, err := io.ReadFull(br, body); err != nil {
		return nil, fmt.Errorf("%w: reading body: %w", ErrIO, err)
	}
	if !utf8.Valid(body) {
		return nil, ErrInvalidBodyEncoding
	}
	req.Body = string(body)

	return req, nil
}

func (p Parser) maxBodyBytes() int {
	if p.MaxBodyBytes <= 0 {
		return DefaultMaxBodyBytes
	}
	return p.MaxBodyBytes
}

// readLine reads up to and including '\n' and strips the terminator.
//
// A final line without a terminator is returned as is. io.EOF is returned
// only when the stream ends before any byte of the line.
func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSuffix(line, "\r"), nil
		}
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r"), nil
}

// contentLength reports the length carried by a Content-Length header line.
// It returns false for other headers and for values that are not
// non-negative integers.
func contentLength(line string) (int, bool) {
	key, value, found := strings.Cut(line, ":")
	if !found || !strings.EqualFold(strings.TrimSpace(key), "Content-Length") {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
