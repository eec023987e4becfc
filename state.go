package vgnav

// NavigationState is a snapshot of the resolver's view of the address bar.
// Entries are addresses as written to the History, base included.
// Stack[Index] is always CurrentPath.
type NavigationState struct {
	CurrentPath string
	Stack       []string
	Index       int
}

// CanGoBack returns true if there is an entry before the current one.
func (s NavigationState) CanGoBack() bool { return s.Index > 0 }

// CanGoForward returns true if there is an entry after the current one.
func (s NavigationState) CanGoForward() bool { return s.Index < len(s.Stack)-1 }

// navStack is a browser-like history: pushing while not at the end
// drops the newer entries, back and forward only move the cursor.
type navStack struct {
	entries []string
	idx     int
}

func newNavStack(initial string) navStack {
	return navStack{entries: []string{initial}}
}

func (s *navStack) current() string {
	return s.entries[s.idx]
}

func (s *navStack) push(p string) {
	if s.idx < len(s.entries)-1 {
		s.entries = s.entries[:s.idx+1]
	}
	s.entries = append(s.entries, p)
	s.idx = len(s.entries) - 1
}

func (s *navStack) replace(p string) {
	s.entries[s.idx] = p
}

// moveTo moves the cursor to position i if that entry is p.
func (s *navStack) moveTo(i int, p string) bool {
	if i < 0 || i >= len(s.entries) || s.entries[i] != p {
		return false
	}
	s.idx = i
	return true
}

// seek moves the cursor to the entry equal to p closest to the cursor.
// On equal distance the older entry wins, back is the more common move.
// Returns false and leaves the cursor alone if p is not in the stack.
func (s *navStack) seek(p string) bool {
	for d := 0; d < len(s.entries); d++ {
		if i := s.idx - d; i >= 0 && s.entries[i] == p {
			s.idx = i
			return true
		}
		if i := s.idx + d; i < len(s.entries) && s.entries[i] == p {
			s.idx = i
			return true
		}
	}
	return false
}

func (s *navStack) snapshot() NavigationState {
	return NavigationState{
		CurrentPath: s.current(),
		Stack:       append([]string(nil), s.entries...),
		Index:       s.idx,
	}
}
