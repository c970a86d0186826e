package redirects

import (
	"net/url"
	"strings"
)

// SplitRequest extracts the canonical absolute path and the raw query string
// from a raw request string, which may be a bare path (/old/abc?x=1) or a full
// URL (https://host/old/abc?x=1).
//
// The returned path always begins with exactly one "/" and carries no query
// component. Matching operates on the escaped form of the path as sent by the
// client, so /search/a%2Fb and /search/a/b remain distinct. The query is
// returned verbatim without its leading "?", or empty if none. Malformed input
// degrades to the root path rather than failing, which favors a no-match
// passthrough over an error.
func SplitRequest(raw string) (path, query string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "/", ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "/", ""
	}

	path = u.EscapedPath()
	if trimmed := strings.TrimLeft(path, "/"); trimmed == "" {
		path = "/"
	} else {
		path = "/" + trimmed
	}

	return path, u.RawQuery
}

// mergeQuery appends the preserved request query onto a computed target. An
// empty query is a no-op. A target without "?" gains exactly one, a target
// already carrying one gains a single "&". The query is appended verbatim,
// never merged or deduplicated against parameters already present in the
// target template.
func mergeQuery(target, query string) string {
	if query == "" {
		return target
	}
	if strings.IndexByte(target, '?') >= 0 {
		return target + "&" + query
	}
	return target + "?" + query
}
