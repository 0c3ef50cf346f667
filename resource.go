package apotheek

import (
	"net/url"
	"path/filepath"
	"strings"
)

// IsURL reports whether a resource is an http(s) URL rather than a local
// file path.
func IsURL(resource string) bool {
	return strings.HasPrefix(resource, "http://") || strings.HasPrefix(resource, "https://")
}

// BaseName derives a file base name from a source resource, which may be a
// URL or a local file path. The last non-empty path segment is used, with
// any extension stripped. Example:
// https://www.apotheek.nl/medicijnen/paracetamol → paracetamol
func BaseName(resource string) string {
	path := resource
	if u, err := url.Parse(resource); err == nil && u.Scheme != "" {
		path = u.Path
	}
	path = strings.TrimSuffix(path, "/")
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "index"
	}
	return base
}
