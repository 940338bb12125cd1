package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"phaseboard/internal/db"
	"phaseboard/internal/domain"
)

const phaseColumns = `id, name, start_date, end_date, order_index, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo over a DBTX, so the same code
// serves both direct and transactional access.
type SQLitePhaseRepo struct {
	db db.DBTX
}

// NewSQLitePhaseRepo creates a new SQLitePhaseRepo.
func NewSQLitePhaseRepo(dbtx db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: dbtx}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (id, name, start_date, end_date, order_index, created_at, updated_at)
		VALUES (?, ?, ?, ?, (SELECT COALESCE(MAX(order_index), -1) + 1 FROM phases), ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.CreatedAt.Format(time.RFC3339),
		p.UpdatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+phaseColumns+` FROM phases WHERE id = ?`, id)
	p, err := scanPhase(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("phase %s: %w", id, ErrNotFound)
	}
	return p, err
}

func (r *SQLitePhaseRepo) List(ctx context.Context) ([]*domain.Phase, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+phaseColumns+` FROM phases ORDER BY order_index, created_at`)
	if err != nil {
		return nil, fmt.Errorf("listing phases: %w", err)
	}
	defer rows.Close()

	var phases []*domain.Phase
	for rows.Next() {
		p, err := scanPhase(rows)
		if err != nil {
			return nil, err
		}
		phases = append(phases, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET name = ?, start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.Name,
		nullableTimeToString(p.StartDate, dateLayout),
		nullableTimeToString(p.EndDate, dateLayout),
		p.UpdatedAt.Format(time.RFC3339),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	return requireRow(res, "phase", p.ID)
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return requireRow(res, "phase", id)
}

func (r *SQLitePhaseRepo) UpdateOrder(ctx context.Context, orderedIDs []string) error {
	now := time.Now().UTC().Format(time.RFC3339)
	for i, id := range orderedIDs {
		res, err := r.db.ExecContext(ctx,
			`UPDATE phases SET order_index = ?, updated_at = ? WHERE id = ?`, i, now, id)
		if err != nil {
			return fmt.Errorf("setting phase order: %w", err)
		}
		if err := requireRow(res, "phase", id); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLitePhaseRepo) NextOrderIndex(ctx context.Context) (int, error) {
	var next int
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(order_index), -1) + 1 FROM phases`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("computing next phase order index: %w", err)
	}
	return next, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanPhase(row rowScanner) (*domain.Phase, error) {
	var p domain.Phase
	var startStr, endStr sql.NullString
	var orderIndex int
	var createdStr, updatedStr string

	if err := row.Scan(&p.ID, &p.Name, &startStr, &endStr, &orderIndex, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	p.StartDate = parseNullableTime(startStr, dateLayout)
	p.EndDate = parseNullableTime(endStr, dateLayout)
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdStr)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedStr)
	return &p, nil
}

// requireRow converts a zero-row result into ErrNotFound.
func requireRow(res sql.Result, kind, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %s: %w", kind, id, ErrNotFound)
	}
	return nil
}
