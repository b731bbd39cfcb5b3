// Package explorer holds the application state: the flat entry mapping,
// the derived tree, and the current selection. State is an immutable
// snapshot; every external event produces a new one through Reduce.
package explorer

import (
	"sort"

	"github.com/thatbeautifuldream/local-first-explorer/internal/fs"
	"github.com/thatbeautifuldream/local-first-explorer/internal/tree"
)

// EventType identifies a state transition.
type EventType int

// State transition events.
const (
	EventImported EventType = iota
	EventEntriesAdded
	EventEntriesChanged
	EventEntriesDeleted
	EventSelected
)

// Event carries the payload for one state transition.
type Event struct {
	Type    EventType
	Entries []fs.Entry // Imported, EntriesAdded, EntriesChanged
	Paths   []string   // EntriesDeleted
	Path    string     // Selected entry path, or imported root for Imported
}

// State is one snapshot of the explorer. The tree is always derived from
// Entries by a full rebuild, never patched in place.
type State struct {
	Root     string
	Entries  map[string]fs.Handle
	Tree     *tree.Node
	Selected string
	Loading  bool
}

// Selection returns the handle for the selected path, or nil when nothing
// is selected or the selection has gone stale. A lookup miss is absence,
// not an error.
func (s State) Selection() fs.Handle {
	if s.Selected == "" {
		return nil
	}
	return s.Entries[s.Selected]
}

// Reduce applies an event to a previous state and returns the next one.
// The previous state is never mutated.
func Reduce(prev State, ev Event) State {
	next := prev.clone()
	switch ev.Type {
	case EventImported:
		next.Loading = true
		next.Entries = make(map[string]fs.Handle, len(ev.Entries))
		for _, e := range ev.Entries {
			next.Entries[e.Path] = e.Handle
		}
		next.Root = ev.Path
		next.Selected = ""
		next.rebuild()
		next.Loading = false
	case EventEntriesAdded, EventEntriesChanged:
		for _, e := range ev.Entries {
			next.Entries[e.Path] = e.Handle
		}
		next.rebuild()
	case EventEntriesDeleted:
		for _, p := range ev.Paths {
			delete(next.Entries, p)
			// A deleted directory removes everything under it
			for existing := range next.Entries {
				if len(existing) > len(p) && existing[:len(p)] == p && existing[len(p)] == '/' {
					delete(next.Entries, existing)
				}
			}
		}
		next.rebuild()
	case EventSelected:
		if _, ok := next.Entries[ev.Path]; ok {
			next.Selected = ev.Path
		}
	}
	return next
}

// rebuild derives the tree from scratch. Paths are sorted first so the
// same mapping always yields a structurally identical tree.
func (s *State) rebuild() {
	paths := make([]string, 0, len(s.Entries))
	for p := range s.Entries {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	entries := make([]fs.Entry, len(paths))
	for i, p := range paths {
		entries[i] = fs.Entry{Path: p, Handle: s.Entries[p]}
	}

	t, err := tree.Build(entries)
	if err != nil {
		s.Tree = nil
		return
	}
	s.Tree = t
}

func (s State) clone() State {
	entries := make(map[string]fs.Handle, len(s.Entries))
	for k, v := range s.Entries {
		entries[k] = v
	}
	s.Entries = entries
	return s
}
