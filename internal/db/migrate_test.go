package db

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesTables(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	for _, table := range []string{"phases", "task_lists", "tasks"} {
		var name string
		err := database.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrateIsIdempotent(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	require.NoError(t, Migrate(database))
	require.NoError(t, Migrate(database))
}

func TestForeignKeyCascades(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	mustExec := func(q string, args ...any) {
		t.Helper()
		_, err := database.Exec(q, args...)
		require.NoError(t, err)
	}

	mustExec(`INSERT INTO phases (id, name, created_at, updated_at) VALUES ('p1', 'Build', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO task_lists (id, phase_id, name, created_at, updated_at) VALUES ('l1', 'p1', 'Backend', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO tasks (id, task_list_id, title, created_at, updated_at) VALUES ('t1', 'l1', 'Root', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	mustExec(`INSERT INTO tasks (id, task_list_id, parent_id, title, created_at, updated_at) VALUES ('t2', 'l1', 't1', 'Child', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)

	mustExec(`DELETE FROM phases WHERE id = 'p1'`)

	var count int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM tasks`).Scan(&count))
	assert.Zero(t, count, "deleting a phase must cascade through lists to tasks")
}

func TestForeignKeysEnforcedOnFreshConnections(t *testing.T) {
	database, err := OpenDB(filepath.Join(t.TempDir(), "board.db"))
	require.NoError(t, err)
	defer database.Close()

	// Drop idle connections so the next statement runs on a connection
	// the pool opens fresh; the pragma must hold there too.
	database.SetMaxIdleConns(0)

	_, err = database.Exec(`INSERT INTO task_lists (id, phase_id, name, created_at, updated_at) VALUES ('l1', 'ghost', 'X', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.Error(t, err, "referencing a missing phase must violate the foreign key")
}

func TestPriorityAndAccessChecksEnforced(t *testing.T) {
	database, err := OpenDB(":memory:")
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Exec(`INSERT INTO phases (id, name, created_at, updated_at) VALUES ('p1', 'Build', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO task_lists (id, phase_id, name, access, created_at, updated_at) VALUES ('l1', 'p1', 'X', 'secret', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "access outside public/private must be rejected")

	_, err = database.Exec(`INSERT INTO task_lists (id, phase_id, name, created_at, updated_at) VALUES ('l1', 'p1', 'X', '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	require.NoError(t, err)

	_, err = database.Exec(`INSERT INTO tasks (id, task_list_id, title, priority, created_at, updated_at) VALUES ('t1', 'l1', 'Y', 9, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`)
	assert.Error(t, err, "priority outside 1..5 must be rejected")
}
