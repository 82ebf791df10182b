// Package routes holds the client-side route table: a mapping from route
// name to a path pattern and the page it renders, plus the URL builder that
// resolves a name and parameters into a concrete relative URL.
package routes

import (
	"errors"
	"fmt"
)

var (
	// ErrRouteNotFound means the requested route name is not registered.
	// This is a programmer error (misconfigured table or call site), not a
	// runtime condition; callers should treat it as fatal.
	ErrRouteNotFound = errors.New("route not found")

	// ErrMissingRouteParam means a :param placeholder in the path pattern
	// had no value in the supplied parameter map. Also a programmer error.
	ErrMissingRouteParam = errors.New("missing route parameter")

	// ErrDuplicateRoute means a route name was registered twice.
	ErrDuplicateRoute = errors.New("duplicate route name")
)

// Route is a single named entry in the table.
type Route struct {
	// Name uniquely identifies the route within its table.
	Name string

	// Path is the pattern: literal segments plus :param placeholders,
	// each placeholder matching up to the next '/'. At most one placeholder
	// per segment.
	Path string

	// Page tags the unit that renders this route (consumed by the UI layer).
	Page string
}

// Table maps route names to routes.
//
// Prefix and basePath configure URL generation: the routing layer's own
// prefix wins when set, otherwise the forum's mount path is prepended.
// Exactly one of the two is ever applied, never both, so differing
// deployment configurations cannot double-prefix generated URLs.
type Table struct {
	prefix   string
	basePath string
	routes   map[string]Route
}

// NewTable creates an empty route table. prefix is the routing layer's own
// URL prefix; basePath is the path the forum is mounted at ("" for root).
func NewTable(prefix, basePath string) *Table {
	return &Table{
		prefix:   prefix,
		basePath: basePath,
		routes:   make(map[string]Route),
	}
}

// Register adds a named route. Registering a name twice is an error.
func (t *Table) Register(name, path, page string) error {
	if _, ok := t.routes[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRoute, name)
	}
	t.routes[name] = Route{Name: name, Path: path, Page: page}
	return nil
}

// Lookup returns the route registered under name.
func (t *Table) Lookup(name string) (Route, bool) {
	r, ok := t.routes[name]
	return r, ok
}

// Names returns the registered route names (unordered).
func (t *Table) Names() []string {
	names := make([]string, 0, len(t.routes))
	for n := range t.routes {
		names = append(names, n)
	}
	return names
}
