package routes

import (
	"fmt"
	"net/url"
	"strings"
)

// Build resolves a route name and parameter map into a concrete relative URL.
//
// Each :param placeholder in the path pattern is substituted with the
// URL-escaped value from params. Parameters consumed by placeholders are not
// reused; parameters with empty values are dropped entirely (avoids query
// strings like "?sort=&q="); everything left over is serialized into a query
// string appended with '?'.
//
// Build fails with ErrRouteNotFound for an unregistered name and with
// ErrMissingRouteParam when a placeholder has no value. Both indicate a bug
// at the call site, so no URL is ever produced for them.
func (t *Table) Build(name string, params map[string]string) (string, error) {
	route, ok := t.routes[name]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrRouteNotFound, name)
	}

	remaining := make(map[string]string, len(params))
	for k, v := range params {
		remaining[k] = v
	}

	segments := strings.Split(route.Path, "/")
	for i, seg := range segments {
		if !strings.HasPrefix(seg, ":") {
			continue
		}
		key := seg[1:]
		value, ok := remaining[key]
		if !ok || value == "" {
			return "", fmt.Errorf("%w: %q in route %q", ErrMissingRouteParam, key, name)
		}
		segments[i] = url.PathEscape(value)
		delete(remaining, key)
	}

	path := strings.Join(segments, "/")

	query := url.Values{}
	for k, v := range remaining {
		if v == "" {
			continue
		}
		query.Set(k, v)
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	// The route-layer prefix and the forum base path are mutually exclusive;
	// applying both would double-prefix under some deployments.
	if t.prefix != "" {
		return t.prefix + path, nil
	}
	return t.basePath + path, nil
}
