package grid

import (
	"errors"

	"phaseboard/internal/domain"
)

// Policy rejections: drop shapes that are structurally plausible but
// violate a stated constraint. These are the only rejections the UI
// surfaces; everything else is a silent no-op the renderer is expected to
// prevent structurally.
var (
	// ErrCrossPhaseListMove rejects dragging a task list into another
	// phase. List ownership transfers only via an explicit move action,
	// never a drag reinterpretation.
	ErrCrossPhaseListMove = errors.New("task lists can only be reordered within their phase")

	// ErrPhaseWithoutLists rejects dropping a task onto a phase that has
	// no task list to receive it.
	ErrPhaseWithoutLists = errors.New("create a task list in this phase first")
)

// Intent is a mutation the reorder engine asks the gateway to perform.
// The closed set of implementations is PhaseReorder, TaskListReorder and
// TaskMove.
type Intent interface {
	intent()
}

// PhaseReorder carries the full new phase ID order.
type PhaseReorder struct {
	OrderedIDs []string
}

// TaskListReorder carries the full new task-list ID order within one phase.
type TaskListReorder struct {
	PhaseID    string
	OrderedIDs []string
}

// TaskMove re-homes a task (and its subtree) to a destination list at a
// root-level position. OrderIndex is expressed against the destination
// list's flattened (pre-order, children included) task ordering.
type TaskMove struct {
	TaskID     string
	ListID     string
	PhaseID    string
	OrderIndex int
}

func (PhaseReorder) intent()    {}
func (TaskListReorder) intent() {}
func (TaskMove) intent()        {}

// ClassifyDrop maps a completed drag gesture onto an intent. Dispatch is
// keyed purely on the declared kinds of the source and target rows.
//
// A nil intent with a nil error is a structural rejection: no mutation, no
// message. A nil intent with one of the policy errors above must be
// surfaced to the user.
func ClassifyDrop(tree *domain.Tree, source, target Row) (Intent, error) {
	switch {
	case source.Kind == RowPhase:
		return classifyPhaseDrop(tree, source, target)
	case source.Kind == RowTaskList:
		return classifyListDrop(tree, source, target)
	case source.IsTask():
		return classifyTaskDrop(tree, source, target)
	}
	return nil, nil
}

// CanDrop is the drop-validity predicate exposed to the renderer so it can
// suppress illegal targets before the drag ends. Policy rejections count
// as droppable: the gesture is allowed to complete so the targeted message
// can be shown.
func CanDrop(tree *domain.Tree, source, target Row) bool {
	intent, err := ClassifyDrop(tree, source, target)
	return intent != nil || err != nil
}

func classifyPhaseDrop(tree *domain.Tree, source, target Row) (Intent, error) {
	// Any target row resolves to its enclosing phase.
	if target.PhaseID == "" || source.PhaseID == target.PhaseID {
		return nil, nil
	}
	from := tree.PhaseIndex(source.PhaseID)
	to := tree.PhaseIndex(target.PhaseID)
	if from < 0 || to < 0 {
		return nil, nil
	}
	ids := make([]string, len(tree.Phases))
	for i, p := range tree.Phases {
		ids[i] = p.ID
	}
	return PhaseReorder{OrderedIDs: splice(ids, from, to)}, nil
}

func classifyListDrop(tree *domain.Tree, source, target Row) (Intent, error) {
	if target.TaskListID == "" || source.TaskListID == target.TaskListID {
		return nil, nil
	}
	if source.PhaseID != target.PhaseID {
		return nil, ErrCrossPhaseListMove
	}
	phase := tree.Phase(source.PhaseID)
	if phase == nil {
		return nil, nil
	}
	from := phase.ListIndex(source.TaskListID)
	to := phase.ListIndex(target.TaskListID)
	if from < 0 || to < 0 {
		return nil, nil
	}
	ids := make([]string, len(phase.TaskLists))
	for i, l := range phase.TaskLists {
		ids[i] = l.ID
	}
	return TaskListReorder{PhaseID: phase.ID, OrderedIDs: splice(ids, from, to)}, nil
}

func classifyTaskDrop(tree *domain.Tree, source, target Row) (Intent, error) {
	if source.TaskID == "" || source.TaskID == target.TaskID {
		return nil, nil
	}

	switch target.Kind {
	case RowPhase:
		phase := tree.Phase(target.PhaseID)
		if phase == nil {
			return nil, nil
		}
		if len(phase.TaskLists) == 0 {
			return nil, ErrPhaseWithoutLists
		}
		// Dropping on a phase header means "top of its first list".
		return TaskMove{
			TaskID:     source.TaskID,
			ListID:     phase.TaskLists[0].ID,
			PhaseID:    phase.ID,
			OrderIndex: 0,
		}, nil

	case RowTaskList:
		// Dropping on a list header means "become the first item".
		return TaskMove{
			TaskID:     source.TaskID,
			ListID:     target.TaskListID,
			PhaseID:    target.PhaseID,
			OrderIndex: 0,
		}, nil

	case RowTask, RowSubtask:
		list, phase := tree.List(target.TaskListID)
		if list == nil {
			return nil, nil
		}
		// Insert immediately after the target within the list's
		// flattened ordering. Drag moves never nest: the moved task
		// lands at root level of the destination list.
		pos := 0
		for i, id := range tree.FlattenedTasks(list) {
			if id == target.TaskID {
				pos = i + 1
				break
			}
		}
		return TaskMove{
			TaskID:     source.TaskID,
			ListID:     list.ID,
			PhaseID:    phase.ID,
			OrderIndex: pos,
		}, nil
	}
	return nil, nil
}

// splice removes the element at from and reinserts it at the position of
// to, shifting everything between. This matches drag semantics: the
// dragged element takes the target's slot rather than swapping with it.
func splice(ids []string, from, to int) []string {
	out := make([]string, 0, len(ids))
	out = append(out, ids...)
	id := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out, "")
	copy(out[to+1:], out[to:])
	out[to] = id
	return out
}
