package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findRow(t *testing.T, rows []Row, key string) Row {
	t.Helper()
	for _, r := range rows {
		if r.Key == key {
			return r
		}
	}
	t.Fatalf("row %s not found", key)
	return Row{}
}

func TestClassifyPhaseReorderForward(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "phase:A"), findRow(t, rows, "phase:C"))
	require.NoError(t, err)
	require.IsType(t, PhaseReorder{}, intent)
	assert.Equal(t, []string{"B", "C", "A"}, intent.(PhaseReorder).OrderedIDs)
}

func TestClassifyPhaseReorderBackward(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "phase:C"), findRow(t, rows, "phase:A"))
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B"}, intent.(PhaseReorder).OrderedIDs)
}

func TestClassifyPhaseDropResolvesTargetPhase(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	// Dropping a phase onto a task resolves to that task's phase.
	intent, err := ClassifyDrop(tr, findRow(t, rows, "phase:A"), findRow(t, rows, "task:t3"))
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A", "C"}, intent.(PhaseReorder).OrderedIDs)
}

func TestClassifyPhaseDropOnSelfIsNoOp(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "phase:A"), findRow(t, rows, "tasklist:L1"))
	assert.NoError(t, err)
	assert.Nil(t, intent)
}

func TestClassifyTaskListReorderSamePhase(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "tasklist:L1"), findRow(t, rows, "tasklist:L2"))
	require.NoError(t, err)
	require.IsType(t, TaskListReorder{}, intent)
	got := intent.(TaskListReorder)
	assert.Equal(t, "A", got.PhaseID)
	assert.Equal(t, []string{"L2", "L1"}, got.OrderedIDs)
}

func TestClassifyTaskListCrossPhaseRejected(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "tasklist:L1"), findRow(t, rows, "tasklist:L3"))
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, ErrCrossPhaseListMove)
}

func TestClassifyTaskListOntoTaskInSamePhase(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	// Target resolves through the task's list.
	intent, err := ClassifyDrop(tr, findRow(t, rows, "tasklist:L2"), findRow(t, rows, "task:t1"))
	require.NoError(t, err)
	assert.Equal(t, []string{"L2", "L1"}, intent.(TaskListReorder).OrderedIDs)
}

func TestClassifyTaskMoveAfterTarget(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	// t2 dropped onto t1b: t1b sits at flattened index 2 of L1, so the
	// move lands at index 3.
	intent, err := ClassifyDrop(tr, findRow(t, rows, "task:t2"), findRow(t, rows, "task:t1b"))
	require.NoError(t, err)
	require.IsType(t, TaskMove{}, intent)
	got := intent.(TaskMove)
	assert.Equal(t, "t2", got.TaskID)
	assert.Equal(t, "L1", got.ListID)
	assert.Equal(t, "A", got.PhaseID)
	assert.Equal(t, 3, got.OrderIndex)
}

func TestClassifyTaskMoveOntoListHeader(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "task:t3"), findRow(t, rows, "tasklist:L2"))
	require.NoError(t, err)
	got := intent.(TaskMove)
	assert.Equal(t, "L2", got.ListID)
	assert.Equal(t, 0, got.OrderIndex)
}

func TestClassifyTaskMoveOntoPhaseUsesFirstList(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "task:t3"), findRow(t, rows, "phase:A"))
	require.NoError(t, err)
	got := intent.(TaskMove)
	assert.Equal(t, "L1", got.ListID)
	assert.Equal(t, "A", got.PhaseID)
	assert.Equal(t, 0, got.OrderIndex)
}

func TestClassifyTaskMoveOntoEmptyPhaseRejected(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "task:t3"), findRow(t, rows, "phase:C"))
	assert.Nil(t, intent)
	assert.ErrorIs(t, err, ErrPhaseWithoutLists)
}

func TestClassifyTaskDropOnSelfIsNoOp(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "task:t1"), findRow(t, rows, "task:t1"))
	assert.Nil(t, intent)
	assert.NoError(t, err)
}

func TestClassifySubtaskMovePromotes(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	intent, err := ClassifyDrop(tr, findRow(t, rows, "task:t1b1"), findRow(t, rows, "task:t3"))
	require.NoError(t, err)
	got := intent.(TaskMove)
	assert.Equal(t, "t1b1", got.TaskID)
	assert.Equal(t, "L3", got.ListID)
	assert.Equal(t, 1, got.OrderIndex)
}

func TestCanDrop(t *testing.T) {
	tr := testTree()
	rows := Project(tr, expandAll(t, tr))

	phaseA := findRow(t, rows, "phase:A")
	phaseC := findRow(t, rows, "phase:C")
	l1 := findRow(t, rows, "tasklist:L1")
	l3 := findRow(t, rows, "tasklist:L3")
	t1 := findRow(t, rows, "task:t1")
	t3 := findRow(t, rows, "task:t3")

	assert.True(t, CanDrop(tr, phaseA, phaseC))
	assert.False(t, CanDrop(tr, phaseA, l1), "same phase resolves to a no-op")
	assert.True(t, CanDrop(tr, t1, t3))
	assert.False(t, CanDrop(tr, t1, t1))

	// Policy rejections stay droppable so the targeted message can show.
	assert.True(t, CanDrop(tr, l1, l3))
	assert.True(t, CanDrop(tr, t3, phaseC))
}
