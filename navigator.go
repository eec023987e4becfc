package vgnav

// NavigatorOpt is a marker interface to ensure that options to Navigator are passed intentionally.
type NavigatorOpt interface {
	IsNavigatorOpt()
}

type intNavigatorOpt int

// IsNavigatorOpt implements NavigatorOpt.
func (i intNavigatorOpt) IsNavigatorOpt() {}

var (
	// NavReplace will cause this navigation to replace the
	// current history entry rather than pushing to the stack.
	// Implemented using window.history.replaceState()
	NavReplace NavigatorOpt = intNavigatorOpt(1)

	// NavSkipRender will cause this navigation to not request a
	// re-render.  It can be used when a component has already
	// accounted for the render in some other way and just wants
	// to inform the Navigator of the current logical path.
	NavSkipRender NavigatorOpt = intNavigatorOpt(2)
)

type navOpts []NavigatorOpt

func (no navOpts) has(o NavigatorOpt) bool {
	for _, o2 := range no {
		if o == o2 {
			return true
		}
	}
	return false
}

// Navigator moves the application to a route given by path ("/setting") or name ("Setting").
type Navigator interface {
	Navigate(target string, opts ...NavigatorOpt) (Route, error)
}

// NavigatorRef can be embedded in a component so the shell can inject the Navigator.
type NavigatorRef struct {
	Navigator // embed Navigator
}

// NavigatorSet implements NavigatorSetter.
func (h *NavigatorRef) NavigatorSet(o Navigator) {
	h.Navigator = o
}

// NavigatorSetter is implemented by components that accept a Navigator.
type NavigatorSetter interface {
	NavigatorSet(Navigator)
}
