package ports

import "strings"

// Request is the per-request state shared by serializers and block
// transformers.
type Request struct {
	// BaseURL is the absolute URL of the site root, without trailing slash.
	BaseURL  string
	Security Security
}

// AbsoluteURL returns the public URL of the content at path.
func (r *Request) AbsoluteURL(path string) string {
	base := strings.TrimRight(r.BaseURL, "/")
	path = strings.Trim(path, "/")
	if path == "" {
		return base
	}
	return base + "/" + path
}
