package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER
// TABLE duplicates from re-running the list are tolerated.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

// migrations holds the full schema. Sibling order inside every owning
// collection is a materialized order_index column: projection never sorts
// by anything else, and reorder/move endpoints renumber it.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS phases (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		start_date  TEXT,
		end_date    TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS task_lists (
		id          TEXT PRIMARY KEY,
		phase_id    TEXT NOT NULL REFERENCES phases(id) ON DELETE CASCADE,
		name        TEXT NOT NULL,
		access      TEXT NOT NULL DEFAULT 'public'
		            CHECK(access IN ('public','private')),
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id           TEXT PRIMARY KEY,
		task_list_id TEXT NOT NULL REFERENCES task_lists(id) ON DELETE CASCADE,
		parent_id    TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		title        TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'open',
		priority     INTEGER NOT NULL DEFAULT 3
		             CHECK(priority BETWEEN 1 AND 5),
		assignees    TEXT NOT NULL DEFAULT '[]',
		tags         TEXT NOT NULL DEFAULT '[]',
		due_date     TEXT,
		order_index  INTEGER NOT NULL DEFAULT 0,
		created_at   TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_task_lists_phase ON task_lists(phase_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_list ON tasks(task_list_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
}
