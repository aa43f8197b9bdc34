package poolhttp

// Method is an HTTP request method as defined by RFC 2616.
//
// Method is a closed set: any token that is not one of the eight standard
// methods becomes [MethodUnknown]. Matching is case-sensitive.
type Method int

const (
	MethodOptions Method = iota
	MethodGet
	MethodHead
	MethodPost
	MethodPut
	MethodDelete
	MethodTrace
	MethodConnect

	// MethodUnknown is used for every unrecognized method token.
	MethodUnknown
)

var methodTokens = [...]string{
	MethodOptions: "OPTIONS",
	MethodGet:     "GET",
	MethodHead:    "HEAD",
	MethodPost:    "POST",
	MethodPut:     "PUT",
	MethodDelete:  "DELETE",
	MethodTrace:   "TRACE",
	MethodConnect: "CONNECT",
	MethodUnknown: "UNKNOWN",
}

// ParseMethod maps a request-line token to a [Method]. It never fails;
// unrecognized tokens (including lowercase variants) yield [MethodUnknown].
func ParseMethod(token string) Method {
	switch token {
	case "OPTIONS":
		return MethodOptions
	case "GET":
		return MethodGet
	case "HEAD":
		return MethodHead
	case "POST":
		return MethodPost
	case "PUT":
		return MethodPut
	case "DELETE":
		return MethodDelete
	case "TRACE":
		return MethodTrace
	case "CONNECT":
		return MethodConnect
	default:
		return MethodUnknown
	}
}

// String returns the wire token for the method.
func (m Method) String() string {
	if m < 0 || int(m) >= len(methodTokens) {
		return methodTokens[MethodUnknown]
	}
	return methodTokens[m]
}
