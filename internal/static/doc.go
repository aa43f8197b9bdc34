// Package static implements the static-file fallback used when an
// application declines to handle a request.
//
// This package is internal to poolhttp. It maps request paths onto a
// resource directory and supplies the designated pages (not found, bad
// request, internal error) from the resource directory or from a built-in
// copy.
package static
