package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phaseboard/internal/db"
)

const taskColumns = `id, task_list_id, parent_id, title, status, priority,
		assignees, tags, due_date, order_index, created_at, updated_at`

// SQLiteTaskRepo implements TaskRepo over a DBTX.
type SQLiteTaskRepo struct {
	db db.DBTX
}

// NewSQLiteTaskRepo creates a new SQLiteTaskRepo.
func NewSQLiteTaskRepo(dbtx db.DBTX) *SQLiteTaskRepo {
	return &SQLiteTaskRepo{db: dbtx}
}

func (r *SQLiteTaskRepo) Create(ctx context.Context, rec *TaskRecord) error {
	query := `INSERT INTO tasks (id, task_list_id, parent_id, title, status, priority,
		assignees, tags, due_date, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TaskListID,
		rec.ParentID, // *string: nil becomes SQL NULL
		rec.Title,
		rec.Status,
		rec.Priority,
		stringsToJSON(rec.Assignees),
		stringsToJSON(rec.Tags),
		nullableTimeToString(rec.DueDate, dateLayout),
		rec.Order,
		rec.CreatedAt.Format(time.RFC3339),
		rec.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) GetByID(ctx context.Context, id string) (*TaskRecord, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	rec, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return rec, err
}

func (r *SQLiteTaskRepo) ListAll(ctx context.Context) ([]*TaskRecord, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY order_index, created_at`)
}

func (r *SQLiteTaskRepo) ListRoots(ctx context.Context, listID string) ([]*TaskRecord, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE task_list_id = ? AND parent_id IS NULL ORDER BY order_index, created_at`,
		listID)
}

func (r *SQLiteTaskRepo) ListChildren(ctx context.Context, parentID string) ([]*TaskRecord, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE parent_id = ? ORDER BY order_index, created_at`,
		parentID)
}

func (r *SQLiteTaskRepo) list(ctx context.Context, query string, args ...any) ([]*TaskRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var recs []*TaskRecord
	for rows.Next() {
		rec, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return recs, nil
}

func (r *SQLiteTaskRepo) Update(ctx context.Context, rec *TaskRecord) error {
	query := `UPDATE tasks SET title = ?, status = ?, priority = ?, assignees = ?, tags = ?, due_date = ?, updated_at = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		rec.Title,
		rec.Status,
		rec.Priority,
		stringsToJSON(rec.Assignees),
		stringsToJSON(rec.Tags),
		nullableTimeToString(rec.DueDate, dateLayout),
		rec.UpdatedAt.Format(time.RFC3339),
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}
	return requireRow(res, "task", rec.ID)
}

func (r *SQLiteTaskRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}
	return requireRow(res, "task", id)
}

// SetSubtreeList repoints a task and every descendant at a new list.
// Children always share their ancestors' list, so the whole subtree moves
// in one statement.
func (r *SQLiteTaskRepo) SetSubtreeList(ctx context.Context, taskID, listID string) error {
	query := `WITH RECURSIVE subtree(id) AS (
			SELECT id FROM tasks WHERE id = ?
			UNION ALL
			SELECT t.id FROM tasks t JOIN subtree s ON t.parent_id = s.id
		)
		UPDATE tasks SET task_list_id = ? WHERE id IN (SELECT id FROM subtree)`
	if _, err := r.db.ExecContext(ctx, query, taskID, listID); err != nil {
		return fmt.Errorf("repointing subtree list: %w", err)
	}
	return nil
}

func (r *SQLiteTaskRepo) SetParent(ctx context.Context, taskID string, parentID *string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tasks SET parent_id = ?, updated_at = ? WHERE id = ?`,
		parentID, time.Now().UTC().Format(time.RFC3339), taskID)
	if err != nil {
		return fmt.Errorf("setting task parent: %w", err)
	}
	return requireRow(res, "task", taskID)
}

func (r *SQLiteTaskRepo) UpdateRootOrder(ctx context.Context, listID string, orderedIDs []string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for i, id := range orderedIDs {
		res, err := r.db.ExecContext(ctx,
			`UPDATE tasks SET order_index = ?, updated_at = ? WHERE id = ? AND task_list_id = ?`,
			i, now, id, listID)
		if err != nil {
			return fmt.Errorf("setting task order: %w", err)
		}
		if err := requireRow(res, "task", id); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteTaskRepo) NextRootOrderIndex(ctx context.Context, listID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_index), -1) + 1 FROM tasks WHERE task_list_id = ? AND parent_id IS NULL`,
		listID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next root order index: %w", err)
	}
	return next, nil
}

func (r *SQLiteTaskRepo) NextChildOrderIndex(ctx context.Context, parentID string) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_index), -1) + 1 FROM tasks WHERE parent_id = ?`,
		parentID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next child order index: %w", err)
	}
	return next, nil
}

func scanTask(row rowScanner) (*TaskRecord, error) {
	var rec TaskRecord
	var parent sql.NullString
	var assignees, tags string
	var due sql.NullString
	var orderIndex int
	var createdStr, updatedStr string

	if err := row.Scan(
		&rec.ID, &rec.TaskListID, &parent, &rec.Title, &rec.Status, &rec.Priority,
		&assignees, &tags, &due, &orderIndex, &createdStr, &updatedStr,
	); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning task: %w", err)
	}
	if parent.Valid {
		pid := parent.String
		rec.ParentID = &pid
	}
	rec.Assignees = jsonToStrings(assignees)
	rec.Tags = jsonToStrings(tags)
	rec.DueDate = parseNullableTime(due, dateLayout)
	rec.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	rec.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	rec.Order = orderIndex
	return &rec, nil
}
