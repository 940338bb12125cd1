package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phaseboard/internal/db"
	"phaseboard/internal/domain"
)

const taskListColumns = `id, phase_id, name, access, order_index, created_at, updated_at`

// SQLiteTaskListRepo implements TaskListRepo over a DBTX.
type SQLiteTaskListRepo struct {
	db db.DBTX
}

// NewSQLiteTaskListRepo creates a new SQLiteTaskListRepo.
func NewSQLiteTaskListRepo(dbtx db.DBTX) *SQLiteTaskListRepo {
	return &SQLiteTaskListRepo{db: dbtx}
}

func (r *SQLiteTaskListRepo) Create(ctx context.Context, l *domain.TaskList) error {
	query := `INSERT INTO task_lists (id, phase_id, name, access, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(order_index), -1) + 1 FROM task_lists WHERE phase_id = ?), ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		l.ID,
		l.PhaseID,
		l.Name,
		string(l.Access),
		l.PhaseID,
		l.CreatedAt.Format(time.RFC3339),
		l.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task list: %w", err)
	}
	return nil
}

func (r *SQLiteTaskListRepo) GetByID(ctx context.Context, id string) (*domain.TaskList, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskListColumns+` FROM task_lists WHERE id = ?`, id)
	l, err := scanTaskList(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task list %s: %w", id, ErrNotFound)
	}
	return l, err
}

func (r *SQLiteTaskListRepo) ListByPhase(ctx context.Context, phaseID string) ([]*domain.TaskList, error) {
	return r.list(ctx,
		`SELECT `+taskListColumns+` FROM task_lists WHERE phase_id = ? ORDER BY order_index, created_at`,
		phaseID)
}

func (r *SQLiteTaskListRepo) ListAll(ctx context.Context) ([]*domain.TaskList, error) {
	return r.list(ctx,
		`SELECT `+taskListColumns+` FROM task_lists ORDER BY order_index, created_at`)
}

func (r *SQLiteTaskListRepo) list(ctx context.Context, query string, args ...any) ([]*domain.TaskList, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing task lists: %w", err)
	}
	defer rows.Close()

	var lists []*domain.TaskList
	for rows.Next() {
		l, err := scanTaskList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task lists: %w", err)
	}
	return lists, nil
}

func (r *SQLiteTaskListRepo) Update(ctx context.Context, l *domain.TaskList) error {
	query := `UPDATE task_lists SET name = ?, access = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		l.Name, string(l.Access), l.UpdatedAt.Format(time.RFC3339), l.ID)
	if err != nil {
		return fmt.Errorf("updating task list: %w", err)
	}
	return requireRow(res, "task list", l.ID)
}

func (r *SQLiteTaskListRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM task_lists WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task list: %w", err)
	}
	return requireRow(res, "task list", id)
}

func (r *SQLiteTaskListRepo) UpdateOrder(ctx context.Context, phaseID string, orderedIDs []string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for i, id := range orderedIDs {
		res, err := r.db.ExecContext(ctx,
			`UPDATE task_lists SET order_index = ?, updated_at = ? WHERE id = ? AND phase_id = ?`,
			i, now, id, phaseID)
		if err != nil {
			return fmt.Errorf("setting task list order: %w", err)
		}
		if err := requireRow(res, "task list", id); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTaskListRepo) NextOrderIndex(ctx context.Context, phaseID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_index), -1) + 1 FROM task_lists WHERE phase_id = ?`, phaseID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next task list order index: %w", err)
	}
	return next, nil
}

func scanTaskList(row rowScanner) (*domain.TaskList, error) {
	var l domain.TaskList
	var accessStr string
	var orderIndex int
	var createdStr, updatedStr string

	if err := row.Scan(&l.ID, &l.PhaseID, &l.Name, &accessStr, &orderIndex, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task list: %w", err)
	}
	l.Access = domain.AccessLevel(accessStr)
	l.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	l.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return &l, nil
}
