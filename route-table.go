package vgnav

import "strings"

// ViewID identifies a renderable unit owned by the application shell.
// The table never inspects it, it is only handed back for mounting.
type ViewID string

// Route binds an absolute path to a view under a unique name.
type Route struct {
	Path string // absolute path, the match key
	Name string // symbolic name used for navigate-by-name
	View ViewID // view to render
}

// Table is an ordered, immutable list of routes.
// Use Register to build one.
type Table struct {
	routes []Route
	byPath map[string]int
	byName map[string]int
}

// MustRegister is like Register but panics upon error.
func MustRegister(routes ...Route) *Table {
	t, err := Register(routes...)
	if err != nil {
		panic(err)
	}
	return t
}

// Register validates routes and returns a Table containing them in the order given.
// The first route is the root route, used when the initial address matches nothing.
// Paths and names must be unique across the table.
func Register(routes ...Route) (*Table, error) {

	if len(routes) == 0 {
		return nil, ErrEmptyTable
	}

	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
		byName: make(map[string]int, len(routes)),
	}

	for _, rt := range routes {

		switch {
		case !IsPath(rt.Path):
			return nil, &InvalidRouteError{Route: rt, Reason: "path must start with /"}
		case rt.Name == "":
			return nil, &InvalidRouteError{Route: rt, Reason: "name is empty"}
		case IsPath(rt.Name):
			return nil, &InvalidRouteError{Route: rt, Reason: "name must not start with /"}
		case rt.View == "":
			return nil, &InvalidRouteError{Route: rt, Reason: "view is empty"}
		}

		if i, ok := t.byPath[rt.Path]; ok {
			return nil, &DuplicatePathError{Path: rt.Path, FirstName: t.routes[i].Name, SecondName: rt.Name}
		}
		if i, ok := t.byName[rt.Name]; ok {
			return nil, &DuplicateNameError{Name: rt.Name, FirstPath: t.routes[i].Path, SecondPath: rt.Path}
		}

		t.byPath[rt.Path] = len(t.routes)
		t.byName[rt.Name] = len(t.routes)
		t.routes = append(t.routes, rt)
	}

	return t, nil
}

// IsPath returns true if target should be resolved as a path rather than a route name.
func IsPath(target string) bool {
	return strings.HasPrefix(target, "/")
}

// ByPath returns the route whose path is exactly p.
func (t *Table) ByPath(p string) (Route, bool) {
	i, ok := t.byPath[p]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// ByName returns the route with the given name.
func (t *Table) ByName(name string) (Route, bool) {
	i, ok := t.byName[name]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Lookup resolves target by path if it starts with "/", otherwise by name.
func (t *Table) Lookup(target string) (Route, bool) {
	if IsPath(target) {
		return t.ByPath(target)
	}
	return t.ByName(target)
}

// Root returns the first declared route.
func (t *Table) Root() Route {
	return t.routes[0]
}

// Routes returns a copy of the routes in declaration order.
func (t *Table) Routes() []Route {
	return append([]Route(nil), t.routes...)
}

// Len returns the number of routes.
func (t *Table) Len() int {
	return len(t.routes)
}
