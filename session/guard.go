package session

import "github.com/phildawes/racer/core"

// guardEntry is one visited (path, origin) triple: pushed before any
// resolve that could re-enter name resolution, checked to
// short-circuit a cycle, and popped on return.
type guardEntry struct {
	path  string
	file  string
	point int
}

// Enter pushes (path, origin) onto the recursion guard and reports
// whether this is a repeat — the same triple already on the stack,
// meaning the caller is partway around a cyclic `use`/supertrait/type-alias
// graph and must short-circuit with no matches instead of resolving
// again. Grounded on nameres.rs's is_a_repeat_search.
//
// Every call that returns repeat=false must be paired with a deferred
// Exit call, even along an early-return path — the guard must be
// rewound on every return.
func (s *Session) Enter(path core.Path, origin core.Scope) (repeat bool) {
	key := guardEntry{path: path.String(), file: origin.File, point: origin.Point}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range s.guard {
		if g == key {
			return true
		}
	}
	s.guard = append(s.guard, key)
	return false
}

// Exit pops the most recently pushed guard entry for (path, origin).
// A repeat from Enter pushes nothing, so Exit is not called after one:
// the identical triple already on the stack belongs to the outer call,
// and Exit would pop it.
func (s *Session) Exit(path core.Path, origin core.Scope) {
	key := guardEntry{path: path.String(), file: origin.File, point: origin.Point}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.guard) - 1; i >= 0; i-- {
		if s.guard[i] == key {
			s.guard = append(s.guard[:i], s.guard[i+1:]...)
			return
		}
	}
}
