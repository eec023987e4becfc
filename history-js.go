package vgnav

import (
	"errors"
	"net/url"
	"strings"
	"sync"

	"github.com/vugu/vugu/js"
)

var errNotBrowser = errors.New("not in browser (js) environment")

// stateIndexKey is the history.state field holding the entry position.
const stateIndexKey = "vgnavIndex"

// BrowserHistory implements History on top of window.history.
// Each entry it creates carries its position in history.state so that
// popstate can report where the browser moved to.
type BrowserHistory struct {
	useFragment bool

	mu           sync.Mutex
	idx          int // position of the current entry
	listeners    map[int]HistoryListener
	nextID       int
	pending      []historyMove
	wake         chan struct{}
	popStateFunc js.Func
}

type historyMove struct {
	path  string
	index int
}

// NewBrowserHistory returns a BrowserHistory, or an error outside a js environment.
// If useFragment is set the path and query live in the fragment part of the URL
// (after the "#"), which suits applications served statically without server side
// handling of deep links. The current entry is marked as position 0.
func NewBrowserHistory(useFragment bool) (*BrowserHistory, error) {
	if !js.Global().Truthy() {
		return nil, errNotBrowser
	}
	h := &BrowserHistory{
		useFragment: useFragment,
		listeners:   make(map[int]HistoryListener),
	}
	h.history().Call("replaceState", h.stateValue(0), "")
	return h, nil
}

func (h *BrowserHistory) history() js.Value {
	return js.Global().Get("window").Get("history")
}

func (h *BrowserHistory) stateValue(i int) js.Value {
	return js.ValueOf(map[string]interface{}{stateIndexKey: i})
}

func (h *BrowserHistory) addressValue(p string) string {
	if h.useFragment {
		return "#" + p
	}
	return p
}

// Push implements History using history.pushState.
func (h *BrowserHistory) Push(path string) {
	h.mu.Lock()
	h.idx++
	i := h.idx
	h.mu.Unlock()
	h.history().Call("pushState", h.stateValue(i), "", h.addressValue(path))
}

// Replace implements History using history.replaceState.
func (h *BrowserHistory) Replace(path string) {
	h.mu.Lock()
	i := h.idx
	h.mu.Unlock()
	h.history().Call("replaceState", h.stateValue(i), "", h.addressValue(path))
}

// Path implements History. The query and fragment (in path mode) are dropped.
func (h *BrowserHistory) Path() string {
	u, err := h.readBrowserURL()
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}

func (h *BrowserHistory) readBrowserURL() (*url.URL, error) {

	loc := js.Global().Get("window").Get("location")

	var locstr string
	if h.useFragment {
		locstr = strings.TrimPrefix(loc.Get("hash").String(), "#")
	} else {
		locstr = loc.Call("toString").String()
	}

	return url.Parse(locstr)
}

// stateIndex reads the position stored in a history state, or -1.
func stateIndex(state js.Value) int {
	if !state.Truthy() {
		return -1
	}
	v := state.Get(stateIndexKey)
	if v.Type() != js.TypeNumber {
		return -1
	}
	return v.Int()
}

// Subscribe implements History. The popstate listener is installed with the
// first subscriber and removed with the last.
func (h *BrowserHistory) Subscribe(fn HistoryListener) func() {

	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	if len(h.listeners) == 1 {
		h.addPopStateListener()
	}

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if _, ok := h.listeners[id]; !ok {
			return
		}
		delete(h.listeners, id)
		if len(h.listeners) == 0 {
			h.removePopStateListener()
		}
	}
}

// enqueue records a transition and wakes the dispatch loop without blocking,
// so transitions reach listeners in the order the browser reported them.
// The wake channel is only closed with h.mu held, so sending under it is safe.
func (h *BrowserHistory) enqueue(m historyMove) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if m.index >= 0 {
		h.idx = m.index
	}
	if h.wake == nil {
		return
	}
	h.pending = append(h.pending, m)
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *BrowserHistory) dispatchLoop(wake chan struct{}) {
	for range wake {
		for {
			h.mu.Lock()
			if len(h.pending) == 0 {
				h.mu.Unlock()
				break
			}
			m := h.pending[0]
			h.pending = h.pending[1:]
			fns := make([]HistoryListener, 0, len(h.listeners))
			for _, fn := range h.listeners {
				fns = append(fns, fn)
			}
			h.mu.Unlock()
			for _, fn := range fns {
				fn(m.path, m.index)
			}
		}
	}
}

func (h *BrowserHistory) addPopStateListener() {
	if !h.popStateFunc.IsUndefined() {
		return
	}
	h.wake = make(chan struct{}, 1)
	go h.dispatchLoop(h.wake)
	h.popStateFunc = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		// js callbacks must not block, listeners run on the dispatch loop
		index := -1
		if len(args) > 0 {
			index = stateIndex(args[0].Get("state"))
		}
		h.enqueue(historyMove{path: h.Path(), index: index})
		return nil
	})
	js.Global().Get("window").Call("addEventListener", "popstate", h.popStateFunc)
}

func (h *BrowserHistory) removePopStateListener() {
	if h.popStateFunc.IsUndefined() {
		return
	}
	js.Global().Get("window").Call("removeEventListener", "popstate", h.popStateFunc)
	h.popStateFunc.Release()
	h.popStateFunc = js.Func{}
	close(h.wake)
	h.wake = nil
	h.pending = nil
}
