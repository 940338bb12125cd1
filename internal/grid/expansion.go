package grid

import "phaseboard/internal/domain"

// ExpansionState tracks which phases, task lists and tasks are open, as
// three independent ID sets. Membership is independent of whether the
// entity still exists: stale IDs after a deletion are simply unused, so no
// cleanup pass is needed.
type ExpansionState struct {
	phases map[string]struct{}
	lists  map[string]struct{}
	tasks  map[string]struct{}
	seeded bool
}

// NewExpansionState returns an empty, unseeded expansion state.
func NewExpansionState() *ExpansionState {
	return &ExpansionState{
		phases: make(map[string]struct{}),
		lists:  make(map[string]struct{}),
		tasks:  make(map[string]struct{}),
	}
}

// InitializeOnce seeds every known ID as expanded the first time it sees a
// non-empty tree and is a no-op forever after. The guard never resets for
// the lifetime of the value, so a server refetch cannot re-open nodes the
// user collapsed; a fresh view instance starts with a fresh state.
func (s *ExpansionState) InitializeOnce(tree *domain.Tree) {
	if s.seeded || tree == nil || tree.Empty() {
		return
	}
	s.seeded = true
	for _, p := range tree.Phases {
		s.phases[p.ID] = struct{}{}
		for _, l := range p.TaskLists {
			s.lists[l.ID] = struct{}{}
		}
	}
	for id, task := range tree.Tasks {
		if task.HasChildren() {
			s.tasks[id] = struct{}{}
		}
	}
}

// Seeded reports whether one-time initialization has fired.
func (s *ExpansionState) Seeded() bool {
	return s.seeded
}

// Toggle flips the expanded flag for the entity behind a row kind.
// Task and subtask rows share the task set.
func (s *ExpansionState) Toggle(kind RowKind, id string) {
	set := s.setFor(kind)
	if _, ok := set[id]; ok {
		delete(set, id)
	} else {
		set[id] = struct{}{}
	}
}

// IsExpanded reports whether the entity behind a row kind is open.
func (s *ExpansionState) IsExpanded(kind RowKind, id string) bool {
	_, ok := s.setFor(kind)[id]
	return ok
}

func (s *ExpansionState) setFor(kind RowKind) map[string]struct{} {
	switch kind {
	case RowPhase:
		return s.phases
	case RowTaskList:
		return s.lists
	default:
		return s.tasks
	}
}
