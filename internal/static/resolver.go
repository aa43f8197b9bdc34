package static

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

// Names of the designated pages.
const (
	IndexPage         = "index.html"
	NotFoundPage      = "404.html"
	BadRequestPage    = "bad_request.html"
	InternalErrorPage = "500.html"
)

// Resolver looks up files in a resource directory.
//
// Request lookups only ever read from root. Designated pages are read from
// root first and from fallback when root does not have them.
type Resolver struct {
	root     fs.FS
	fallback fs.FS
}

// NewResolver creates a [Resolver]. Either filesystem may be nil.
func NewResolver(root, fallback fs.FS) *Resolver {
	return &Resolver{root: root, fallback: fallback}
}

// FilePath maps a request path to a name inside the resource directory.
//
// The leading "/" is stripped, an empty final segment becomes "index.html"
// and every "../" substring is deleted in a single pass. The query string is
// not removed. Whatever ".." survives the deletion (for example from
// "....//") is refused later by fs.ValidPath, so lookups never leave root.
func FilePath(requestPath string) string {
	name := strings.TrimPrefix(requestPath, "/")
	if name == "" || strings.HasSuffix(name, "/") {
		name += IndexPage
	}
	return strings.ReplaceAll(name, "../", "")
}

// Lookup returns the content of the file a request maps to.
//
// Only GET requests are served. found is false for any other method, for
// paths that do not name a regular file under root, and for paths fs.FS
// considers invalid.
func (r *Resolver) Lookup(method, requestPath string) (body string, found bool) {
	if method != "GET" || r.root == nil {
		return "", false
	}

	content, err := readRegular(r.root, FilePath(requestPath))
	if err != nil {
		return "", false
	}
	return content, true
}

// Page returns a designated page such as [NotFoundPage].
func (r *Resolver) Page(name string) (string, error) {
	if r.root != nil {
		if content, err := readRegular(r.root, name); err == nil {
			return content, nil
		}
	}
	if r.fallback != nil {
		if content, err := readRegular(r.fallback, name); err == nil {
			return content, nil
		}
	}
	return "", fmt.Errorf("page %q: %w", name, fs.ErrNotExist)
}

// readRegular reads name from fsys, refusing directories and other
// non-regular files.
func readRegular(fsys fs.FS, name string) (string, error) {
	info, err := fs.Stat(fsys, name)
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", errors.New("not a regular file")
	}
	content, err := fs.ReadFile(fsys, name)
	if err != nil {
		return "", err
	}
	return string(content), nil
}
