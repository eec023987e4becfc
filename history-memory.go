package vgnav

import "sync"

// MemoryHistory is an in-process History for tests and non-browser shells.
// Back, Forward and Go play the role of the browser's buttons: they move
// the cursor and notify subscribers, whereas Push and Replace do not.
type MemoryHistory struct {
	mu        sync.Mutex
	stack     navStack
	listeners map[int]HistoryListener
	nextID    int
}

// NewMemoryHistory returns a MemoryHistory with a single entry for initial.
func NewMemoryHistory(initial string) *MemoryHistory {
	return &MemoryHistory{
		stack:     newNavStack(initial),
		listeners: make(map[int]HistoryListener),
	}
}

// Push implements History.
func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack.push(path)
}

// Replace implements History.
func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stack.replace(path)
}

// Path implements History.
func (h *MemoryHistory) Path() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stack.current()
}

// Subscribe implements History.
func (h *MemoryHistory) Subscribe(fn HistoryListener) func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		delete(h.listeners, id)
	}
}

// Back moves one entry back. Returns false if already at the oldest entry.
func (h *MemoryHistory) Back() bool { return h.Go(-1) }

// Forward moves one entry forward. Returns false if already at the newest entry.
func (h *MemoryHistory) Forward() bool { return h.Go(1) }

// Go moves delta entries through the history, like window.history.go.
// Out of range moves do nothing and return false.
func (h *MemoryHistory) Go(delta int) bool {

	h.mu.Lock()
	i := h.stack.idx + delta
	if delta == 0 || i < 0 || i >= len(h.stack.entries) {
		h.mu.Unlock()
		return false
	}
	h.stack.idx = i
	p := h.stack.current()
	fns := make([]HistoryListener, 0, len(h.listeners))
	for _, fn := range h.listeners {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	// listeners may call back into h
	for _, fn := range fns {
		fn(p, i)
	}

	return true
}

// Entries returns a copy of all entries and the index of the current one.
func (h *MemoryHistory) Entries() ([]string, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := h.stack.snapshot()
	return s.Stack, s.Index
}
