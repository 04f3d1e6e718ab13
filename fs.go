package iconfont

import (
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FS is the filesystem capability the collector resolves sources through.
// Injecting it decouples the pipeline from the real filesystem: tests and
// embedded callers supply their own implementation, and callers needing
// cancellation or timeouts own them at this layer.
type FS interface {
	// ReadText returns the UTF-8 content of the file at path.
	ReadText(path string) (string, error)

	// Glob expands pattern against dir and returns the matched paths.
	// The returned order determines icon order, so implementations must
	// be deterministic.
	Glob(pattern, dir string) ([]string, error)
}

// DefaultFS reads the real filesystem. Glob patterns support ** and
// brace expansion; matches are returned sorted.
var DefaultFS FS = osFS{}

type osFS struct{}

func (osFS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (osFS) Glob(pattern, dir string) ([]string, error) {
	// os.DirFS("") would resolve against the filesystem root, not the
	// working directory a dirless manifest path implies.
	root := dir
	if root == "" {
		root = "."
	}
	matches, err := doublestar.Glob(os.DirFS(root), pattern)
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	paths := make([]string, len(matches))
	for i, m := range matches {
		paths[i] = joinPath(dir, m)
	}
	return paths, nil
}

// isGlob reports whether a src attribute is a glob pattern rather than a
// literal path.
func isGlob(src string) bool {
	return strings.ContainsAny(src, "*?[{")
}

// joinPath resolves a manifest-relative path. Absolute paths and empty base
// directories pass through unchanged; otherwise the path stays
// slash-separated so dependency lists are portable across platforms.
func joinPath(dir, path string) string {
	if dir == "" || strings.HasPrefix(path, "/") {
		return path
	}
	return strings.TrimSuffix(dir, "/") + "/" + path
}
