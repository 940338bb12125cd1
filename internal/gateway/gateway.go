// Package gateway applies reorder/move intents to the local tree
// optimistically and reconciles them against the backend's verdict:
// confirmed mutations stand as-is, failed ones roll the tree back to the
// pre-dispatch snapshot, and late responses superseded by a newer local
// mutation are discarded.
package gateway

import (
	"context"
	"fmt"
	"sync"

	"phaseboard/internal/domain"
	"phaseboard/internal/grid"
)

// Backend performs the actual mutations. Calls are idempotent "set the
// absolute new order" operations, so no cancellation token is needed for
// in-flight requests.
type Backend interface {
	ReorderPhases(ctx context.Context, orderedIDs []string) error
	ReorderTaskLists(ctx context.Context, phaseID string, orderedIDs []string) error
	MoveTask(ctx context.Context, taskID, listID, phaseID string, orderIndex int) error
}

// Outcome is the reconciliation result for one dispatched intent.
type Outcome int

const (
	// OutcomeConfirmed: backend accepted; local state already matches.
	OutcomeConfirmed Outcome = iota
	// OutcomeRolledBack: backend rejected; the tree was restored to the
	// pre-dispatch snapshot.
	OutcomeRolledBack
	// OutcomeStale: a newer local mutation superseded this intent before
	// its response arrived, so the result was discarded and the newer
	// state stands.
	OutcomeStale
)

// Ticket tracks one dispatched intent: its monotonic local sequence stamp,
// the intent itself, and the snapshot to restore on failure.
type Ticket struct {
	Seq      uint64
	Intent   grid.Intent
	snapshot *domain.Tree
}

// Gateway serializes optimistic mutations of a single tree. Dispatch runs
// on the UI loop, so intents apply in dispatch order by construction; the
// mutex only guards the sequence counter against tea.Cmd goroutines
// resolving concurrently with a new dispatch.
type Gateway struct {
	backend Backend

	mu  sync.Mutex
	seq uint64
}

// New creates a gateway over the given backend.
func New(backend Backend) *Gateway {
	return &Gateway{backend: backend}
}

// Dispatch applies an intent to the tree immediately and returns a ticket
// for later reconciliation. The tree is snapshotted before mutation; a
// failed local application leaves the tree untouched and produces no
// ticket.
func (g *Gateway) Dispatch(tree *domain.Tree, intent grid.Intent) (*Ticket, error) {
	snapshot := tree.Clone()

	var err error
	switch it := intent.(type) {
	case grid.PhaseReorder:
		err = tree.ApplyPhaseOrder(it.OrderedIDs)
	case grid.TaskListReorder:
		err = tree.ApplyTaskListOrder(it.PhaseID, it.OrderedIDs)
	case grid.TaskMove:
		err = tree.ApplyTaskMove(it.TaskID, it.ListID, it.OrderIndex)
	default:
		err = fmt.Errorf("unknown intent %T", intent)
	}
	if err != nil {
		return nil, fmt.Errorf("applying intent: %w", err)
	}

	g.mu.Lock()
	g.seq++
	t := &Ticket{Seq: g.seq, Intent: intent, snapshot: snapshot}
	g.mu.Unlock()
	return t, nil
}

// Call sends the ticket's intent to the backend. Safe to run off the UI
// loop; it touches neither the tree nor gateway state.
func (g *Gateway) Call(ctx context.Context, t *Ticket) error {
	switch it := t.Intent.(type) {
	case grid.PhaseReorder:
		return g.backend.ReorderPhases(ctx, it.OrderedIDs)
	case grid.TaskListReorder:
		return g.backend.ReorderTaskLists(ctx, it.PhaseID, it.OrderedIDs)
	case grid.TaskMove:
		return g.backend.MoveTask(ctx, it.TaskID, it.ListID, it.PhaseID, it.OrderIndex)
	default:
		return fmt.Errorf("unknown intent %T", t.Intent)
	}
}

// Resolve reconciles a completed backend call. Must run on the UI loop
// (the same goroutine that owns the tree). A failure only rolls back when
// the ticket is still the newest dispatched mutation; a stale failure is
// discarded so a late response can never overwrite newer local state.
func (g *Gateway) Resolve(tree *domain.Tree, t *Ticket, callErr error) Outcome {
	if callErr == nil {
		return OutcomeConfirmed
	}
	g.mu.Lock()
	newest := t.Seq == g.seq
	g.mu.Unlock()
	if !newest {
		return OutcomeStale
	}
	*tree = *t.snapshot
	return OutcomeRolledBack
}
