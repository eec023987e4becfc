package vgnav

// History is the browser's address and session history as seen by the Resolver.
// Paths passed in and out include any base prefix.
type History interface {
	// Push adds a new entry for path and makes it current.
	Push(path string)
	// Replace overwrites the current entry with path.
	Replace(path string)
	// Path returns the path in the address bar.
	Path() string
	// Subscribe registers fn to be called after a back or forward transition
	// made outside the Resolver. The returned func removes it.
	Subscribe(fn HistoryListener) (unsubscribe func())
}

// HistoryListener receives the path of the entry moved to and its position,
// counted from the entry current when the application started (0) and
// advanced by one on each Push. index is -1 when the position is unknown,
// e.g. for an entry the application did not create.
type HistoryListener func(path string, index int)
