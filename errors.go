package vgnav

import (
	"errors"
	"fmt"
)

// ErrEmptyTable is returned by Register when no routes are given.
// A table needs at least one entry to act as the root route.
var ErrEmptyTable = errors.New("vgnav: empty route table")

// ErrNotFound is matched by RouteNotFoundError with errors.Is.
var ErrNotFound = errors.New("vgnav: route not found")

// DuplicatePathError is returned by Register when two routes share a path.
type DuplicatePathError struct {
	Path       string
	FirstName  string // name of the route declared first
	SecondName string // name of the offending route
}

func (e *DuplicatePathError) Error() string {
	return fmt.Sprintf("vgnav: duplicate route path %q (routes %q and %q)", e.Path, e.FirstName, e.SecondName)
}

// DuplicateNameError is returned by Register when two routes share a name.
type DuplicateNameError struct {
	Name       string
	FirstPath  string
	SecondPath string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("vgnav: duplicate route name %q (paths %q and %q)", e.Name, e.FirstPath, e.SecondPath)
}

// InvalidRouteError is returned by Register for a malformed route.
type InvalidRouteError struct {
	Route  Route
	Reason string
}

func (e *InvalidRouteError) Error() string {
	return fmt.Sprintf("vgnav: invalid route %+v: %s", e.Route, e.Reason)
}

// RouteNotFoundError is returned when a navigation target matches no route.
// Target is the path or name as requested.
type RouteNotFoundError struct {
	Target string
}

func (e *RouteNotFoundError) Error() string {
	return fmt.Sprintf("vgnav: no route matches %q", e.Target)
}

// Is reports whether target is ErrNotFound.
func (e *RouteNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound returns true if err is or wraps a RouteNotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
