package domain

import (
	"fmt"
	"time"
)

// Tree is the source-of-truth nested structure rendered by the grid:
// ordered phases, each owning ordered task lists, each owning ordered root
// tasks. Task records live in the Tasks arena so unbounded subtask depth
// stays a flat map plus child-ID slices.
type Tree struct {
	Phases []*Phase
	Tasks  map[string]*Task
}

// NewTree returns an empty tree with an initialized arena.
func NewTree() *Tree {
	return &Tree{Tasks: make(map[string]*Task)}
}

// Empty reports whether the tree has no phases.
func (t *Tree) Empty() bool {
	return len(t.Phases) == 0
}

// Phase returns the phase with the given ID, or nil.
func (t *Tree) Phase(id string) *Phase {
	for _, p := range t.Phases {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// PhaseIndex returns the position of the phase with the given ID, or -1.
func (t *Tree) PhaseIndex(id string) int {
	for i, p := range t.Phases {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// List returns the task list with the given ID and its owning phase.
func (t *Tree) List(listID string) (*TaskList, *Phase) {
	for _, p := range t.Phases {
		if l := p.List(listID); l != nil {
			return l, p
		}
	}
	return nil, nil
}

// Task returns the task with the given ID, or nil.
func (t *Tree) Task(id string) *Task {
	return t.Tasks[id]
}

// RootOf climbs parent pointers from taskID to its root ancestor.
// Returns taskID itself when the task is already a root.
func (t *Tree) RootOf(taskID string) string {
	id := taskID
	for {
		task := t.Tasks[id]
		if task == nil || task.ParentID == nil {
			return id
		}
		id = *task.ParentID
	}
}

// ListOfTask resolves the task list that owns taskID (directly for roots,
// via the root ancestor for subtasks) and the list's phase.
func (t *Tree) ListOfTask(taskID string) (*TaskList, *Phase) {
	rootID := t.RootOf(taskID)
	for _, p := range t.Phases {
		for _, l := range p.TaskLists {
			if l.TaskIndex(rootID) >= 0 {
				return l, p
			}
		}
	}
	return nil, nil
}

// SubtreeSize returns the number of tasks in the subtree rooted at taskID,
// including the task itself.
func (t *Tree) SubtreeSize(taskID string) int {
	task := t.Tasks[taskID]
	if task == nil {
		return 0
	}
	n := 1
	for _, childID := range task.ChildIDs {
		n += t.SubtreeSize(childID)
	}
	return n
}

// ListTaskCount returns the recursive task count within a list.
func (t *Tree) ListTaskCount(l *TaskList) int {
	n := 0
	for _, id := range l.TaskIDs {
		n += t.SubtreeSize(id)
	}
	return n
}

// PhaseTaskCount returns the recursive task count across all of a phase's
// task lists.
func (t *Tree) PhaseTaskCount(p *Phase) int {
	n := 0
	for _, l := range p.TaskLists {
		n += t.ListTaskCount(l)
	}
	return n
}

// FlattenedTasks returns the pre-order task IDs of a list, roots and
// descendants interleaved in display order. This is the ordering move
// targets are indexed against.
func (t *Tree) FlattenedTasks(l *TaskList) []string {
	var out []string
	var walk func(id string)
	walk = func(id string) {
		task := t.Tasks[id]
		if task == nil {
			return
		}
		out = append(out, id)
		for _, childID := range task.ChildIDs {
			walk(childID)
		}
	}
	for _, id := range l.TaskIDs {
		walk(id)
	}
	return out
}

// Clone returns a deep copy of the tree. Snapshots taken for optimistic
// rollback must not share any slice or record with the live tree.
func (t *Tree) Clone() *Tree {
	c := NewTree()
	c.Phases = make([]*Phase, len(t.Phases))
	for i, p := range t.Phases {
		cp := *p
		cp.StartDate = cloneTime(p.StartDate)
		cp.EndDate = cloneTime(p.EndDate)
		cp.TaskLists = make([]*TaskList, len(p.TaskLists))
		for j, l := range p.TaskLists {
			cl := *l
			cl.TaskIDs = append([]string(nil), l.TaskIDs...)
			cp.TaskLists[j] = &cl
		}
		c.Phases[i] = &cp
	}
	for id, task := range t.Tasks {
		ct := *task
		ct.Assignees = append([]string(nil), task.Assignees...)
		ct.Tags = append([]string(nil), task.Tags...)
		ct.ChildIDs = append([]string(nil), task.ChildIDs...)
		ct.DueDate = cloneTime(task.DueDate)
		if task.ParentID != nil {
			pid := *task.ParentID
			ct.ParentID = &pid
		}
		c.Tasks[id] = &ct
	}
	return c
}

// ApplyPhaseOrder permutes the phases into the given ID order. The ID set
// must match the current phase set exactly.
func (t *Tree) ApplyPhaseOrder(orderedIDs []string) error {
	if len(orderedIDs) != len(t.Phases) {
		return fmt.Errorf("phase order has %d ids, tree has %d phases", len(orderedIDs), len(t.Phases))
	}
	reordered := make([]*Phase, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		p := t.Phase(id)
		if p == nil {
			return fmt.Errorf("phase %s not in tree", id)
		}
		reordered = append(reordered, p)
	}
	t.Phases = reordered
	return nil
}

// ApplyTaskListOrder permutes a phase's task lists into the given ID order.
func (t *Tree) ApplyTaskListOrder(phaseID string, orderedIDs []string) error {
	p := t.Phase(phaseID)
	if p == nil {
		return fmt.Errorf("phase %s not in tree", phaseID)
	}
	if len(orderedIDs) != len(p.TaskLists) {
		return fmt.Errorf("list order has %d ids, phase has %d lists", len(orderedIDs), len(p.TaskLists))
	}
	reordered := make([]*TaskList, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		l := p.List(id)
		if l == nil {
			return fmt.Errorf("task list %s not in phase %s", id, phaseID)
		}
		reordered = append(reordered, l)
	}
	p.TaskLists = reordered
	return nil
}

// ApplyTaskMove detaches a task (and its whole subtree) from its current
// position and inserts it as a root of the destination list. The order
// index is expressed against the destination's flattened ordering and maps
// to the nearest root slot at or after it. Subtasks are promoted to roots
// on move; drag moves never change nesting depth downward.
func (t *Tree) ApplyTaskMove(taskID, newListID string, orderIndex int) error {
	task := t.Tasks[taskID]
	if task == nil {
		return fmt.Errorf("task %s not in tree", taskID)
	}
	dest, _ := t.List(newListID)
	if dest == nil {
		return fmt.Errorf("task list %s not in tree", newListID)
	}

	// Detach: from the parent's children for subtasks, from the source
	// list's roots otherwise.
	if task.ParentID != nil {
		parent := t.Tasks[*task.ParentID]
		if parent != nil {
			parent.ChildIDs = removeID(parent.ChildIDs, taskID)
		}
		task.ParentID = nil
	} else if src, _ := t.ListOfTask(taskID); src != nil {
		src.TaskIDs = removeID(src.TaskIDs, taskID)
	}

	if orderIndex < 0 {
		orderIndex = 0
	}
	// Map the flattened insertion point onto the root slice: the moved
	// task lands after every root whose subtree begins before that point,
	// so a drop just after a subtask stays at the drop point's row.
	pos := 0
	offset := 0
	for _, id := range dest.TaskIDs {
		if offset >= orderIndex {
			break
		}
		offset += t.SubtreeSize(id)
		pos++
	}
	dest.TaskIDs = append(dest.TaskIDs, "")
	copy(dest.TaskIDs[pos+1:], dest.TaskIDs[pos:])
	dest.TaskIDs[pos] = taskID
	return nil
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
