// Package resources provides the built-in pages poolhttp falls back to when
// the resource directory does not supply its own.
//
// The pages are embedded at compile time so the server can always answer a
// bad request or a missing file with a proper body, even when started
// without a resource directory.
package resources

import "embed"

// Pages is an embedded filesystem containing the default pages.
//
// The filesystem structure is:
//
//	assets/
//	  index.html        - default landing page
//	  404.html          - not found page
//	  bad_request.html  - page sent with 400 responses
//	  500.html          - page sent when an application panics
//
//go:embed assets/*
var Pages embed.FS
