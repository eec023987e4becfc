package vgnav

import (
	"log/slog"
	"strings"
	"sync"

	"go.uber.org/atomic"
)

// EventEnv is our view of a Vugu EventEnv
type EventEnv interface {
	Lock()         // acquire write lock
	UnlockOnly()   // release write lock
	UnlockRender() // release write lock and request re-render
}

// Options configure a Resolver.
type Options struct {
	// Base is prepended to every path handed to the History and trimmed from
	// paths read back from it. A trailing slash is ignored.
	Base string

	// EventEnv, if set, is locked around handler calls and asked to re-render afterwards.
	EventEnv EventEnv

	// Logger receives navigation logs. Nothing is logged if nil.
	Logger *slog.Logger
}

// Resolver keeps the current route in sync with a History.
// It is the only writer of its navigation state. All methods are safe
// for concurrent use, mutations are applied one at a time in call order.
type Resolver struct {
	table    *Table
	history  History
	base     string
	eventEnv EventEnv
	log      *slog.Logger

	mu              sync.Mutex
	stack           navStack
	handlers        []RouteHandler
	notFoundHandler RouteHandler
	queue           []dispatchEvent
	dispatching     bool
	unsubscribe     func()

	current *atomic.String // mirrors stack.current() for lock-free reads
}

type dispatchEvent struct {
	rm         *RouteMatch
	skipRender bool
}

// New returns a Resolver for table, reading the initial path from history.
// If the initial path matches no route, the root route is used and the
// address is replaced with it. The Resolver subscribes to history and follows
// back/forward transitions until Close is called.
func New(table *Table, history History, opts Options) *Resolver {

	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	r := &Resolver{
		table:    table,
		history:  history,
		base:     strings.TrimSuffix(opts.Base, "/"),
		eventEnv: opts.EventEnv,
		log:      log,
	}

	addr := r.normalize(history.Path())
	if _, p, ok := r.resolve(addr); !ok {
		root := table.Root()
		r.log.Warn("initial path matches no route, using root route", "path", p, "route", root.Name)
		addr = r.base + root.Path
		history.Replace(addr)
	}
	r.stack = newNavStack(addr)
	r.current = atomic.NewString(addr)

	r.unsubscribe = history.Subscribe(func(path string, index int) {
		_, _ = r.handleHistory(path, index)
	})

	return r
}

func (r *Resolver) normalize(addr string) string {
	if r.base == "" && !strings.HasPrefix(addr, "/") {
		return "/" + addr
	}
	return addr
}

// trimBase returns the route path for an address and whether the address
// lies under the base. The base only matches whole path segments.
func (r *Resolver) trimBase(addr string) (string, bool) {
	switch {
	case r.base == "":
		return addr, true
	case addr == r.base:
		return "/", true
	case strings.HasPrefix(addr, r.base+"/"):
		return addr[len(r.base):], true
	}
	return addr, false
}

// resolve maps an address to its route. p is the route path, or the address
// itself when it lies outside the base.
func (r *Resolver) resolve(addr string) (rt Route, p string, ok bool) {
	p, inBase := r.trimBase(addr)
	if !inBase {
		return Route{}, p, false
	}
	rt, ok = r.table.ByPath(p)
	return rt, p, ok
}

// Table returns the route table.
func (r *Resolver) Table() *Table {
	return r.table
}

// MustNavigate is like Navigate but panics upon error.
func (r *Resolver) MustNavigate(target string, opts ...NavigatorOpt) Route {
	rt, err := r.Navigate(target, opts...)
	if err != nil {
		panic(err)
	}
	return rt
}

// Navigate goes to target, which is a path if it starts with "/" and a route name otherwise.
// The new path is pushed onto the history, or replaces the current entry with NavReplace.
//
// An unknown name returns a *RouteNotFoundError and changes nothing. An unknown path
// also returns a *RouteNotFoundError, but the path is still recorded so the address
// shows what was requested; CurrentView reports no route until the next navigation.
func (r *Resolver) Navigate(target string, opts ...NavigatorOpt) (Route, error) {

	replace := navOpts(opts).has(NavReplace)

	r.mu.Lock()

	rt, found := r.table.Lookup(target)
	if !found && !IsPath(target) {
		r.mu.Unlock()
		r.log.Warn("no route with name", "name", target)
		return Route{}, &RouteNotFoundError{Target: target}
	}

	p := target
	if found {
		p = rt.Path
	}

	addr := r.base + p
	cur, inBase := r.trimBase(r.stack.current())

	switch {
	case replace:
		r.stack.replace(addr)
		r.history.Replace(addr)
	case inBase && cur == p:
		// same entry, no duplicate
	default:
		r.stack.push(addr)
		r.history.Push(addr)
	}
	r.current.Store(r.stack.current())

	r.queue = append(r.queue, dispatchEvent{
		rm:         &RouteMatch{Path: p, Route: rt, Found: found, Replace: replace},
		skipRender: navOpts(opts).has(NavSkipRender),
	})
	r.mu.Unlock()

	r.dispatch()

	if !found {
		r.log.Warn("no route for path", "path", p)
		return Route{}, &RouteNotFoundError{Target: target}
	}

	r.log.Debug("navigated", "target", target, "path", p, "route", rt.Name, "replace", replace)
	return rt, nil
}

// HandleHistoryEvent is called with the address path after the browser moved
// through its history (back, forward, or an edited fragment). The path is
// resolved again from the table. The current path always follows the address,
// even when it matches no route or lies outside the base, in which case a
// *RouteNotFoundError is returned. The history itself is not written to.
func (r *Resolver) HandleHistoryEvent(path string) (Route, error) {
	return r.handleHistory(path, -1)
}

// handleHistory moves the cursor to the entry at index when that entry holds
// addr. Otherwise the nearest entry holding addr is used, and an address not
// in the stack is pushed.
func (r *Resolver) handleHistory(addr string, index int) (Route, error) {

	addr = r.normalize(addr)

	r.mu.Lock()
	if !r.stack.moveTo(index, addr) && !r.stack.seek(addr) {
		r.stack.push(addr)
	}
	r.current.Store(addr)
	rt, p, found := r.resolve(addr)
	r.queue = append(r.queue, dispatchEvent{
		rm: &RouteMatch{Path: p, Route: rt, Found: found, FromHistory: true},
	})
	r.mu.Unlock()

	r.dispatch()

	if !found {
		r.log.Warn("no route for history path", "path", p)
		return Route{}, &RouteNotFoundError{Target: p}
	}

	r.log.Debug("history moved", "path", p, "index", index, "route", rt.Name)
	return rt, nil
}

// Pull reads the current address from the history and resolves it like a history event.
func (r *Resolver) Pull() (Route, error) {
	return r.HandleHistoryEvent(r.history.Path())
}

// CurrentView returns the route for the current path, or false if it matches none.
func (r *Resolver) CurrentView() (Route, bool) {
	rt, _, ok := r.resolve(r.current.Load())
	return rt, ok
}

// CurrentPath returns the current path without the base prefix, or the whole
// address if it lies outside the base.
func (r *Resolver) CurrentPath() string {
	p, _ := r.trimBase(r.current.Load())
	return p
}

// State returns a snapshot of the navigation state.
func (r *Resolver) State() NavigationState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stack.snapshot()
}

// Close stops following the history.
func (r *Resolver) Close() {
	r.mu.Lock()
	unsub := r.unsubscribe
	r.unsubscribe = nil
	r.mu.Unlock()
	if unsub != nil {
		unsub()
	}
}

// AddHandler adds h to the handlers called after every navigation.
func (r *Resolver) AddHandler(h RouteHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers = append(r.handlers, h)
}

// SetNotFound assigns the handler for the case of a path with no route.
// It is called after the regular handlers.
func (r *Resolver) SetNotFound(h RouteHandler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notFoundHandler = h
}

// dispatch delivers queued matches in order. Only one caller delivers at a
// time; a navigation made from inside a handler is queued and delivered by
// the caller already dispatching.
func (r *Resolver) dispatch() {

	r.mu.Lock()
	if r.dispatching {
		r.mu.Unlock()
		return
	}
	r.dispatching = true

	for len(r.queue) > 0 {
		ev := r.queue[0]
		r.queue = r.queue[1:]
		handlers := append([]RouteHandler(nil), r.handlers...)
		notFound := r.notFoundHandler
		r.mu.Unlock()

		r.deliver(ev, handlers, notFound)

		r.mu.Lock()
	}

	r.dispatching = false
	r.mu.Unlock()
}

func (r *Resolver) deliver(ev dispatchEvent, handlers []RouteHandler, notFound RouteHandler) {

	if len(handlers) == 0 && (ev.rm.Found || notFound == nil) && r.eventEnv == nil {
		return
	}

	if r.eventEnv != nil {
		r.eventEnv.Lock()
		if ev.skipRender {
			defer r.eventEnv.UnlockOnly()
		} else {
			defer r.eventEnv.UnlockRender()
		}
	}

	for _, h := range handlers {
		h.RouteHandle(ev.rm)
	}
	if !ev.rm.Found && notFound != nil {
		notFound.RouteHandle(ev.rm)
	}
}

// RouteHandler implementations are called in response to a navigation.
type RouteHandler interface {
	RouteHandle(rm *RouteMatch)
}

// RouteHandlerFunc implements RouteHandler as a function.
type RouteHandlerFunc func(rm *RouteMatch)

// RouteHandle implements the RouteHandler interface.
func (f RouteHandlerFunc) RouteHandle(rm *RouteMatch) { f(rm) }

// RouteMatch describes a completed navigation.
type RouteMatch struct {
	Path        string // path navigated to, without base (whole address if outside it)
	Route       Route  // matched route, zero if !Found
	Found       bool   // true if Path matched a route
	Replace     bool   // true if the history entry was replaced
	FromHistory bool   // true if caused by a history transition rather than Navigate
}
