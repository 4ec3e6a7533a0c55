package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// mapConstraint converts SQLite uniqueness violations into ErrDuplicate.
func mapConstraint(err error) error {
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return ErrDuplicate
	}
	return err
}

// SQLiteActivityRepo implements ActivityRepo on SQLite.
type SQLiteActivityRepo struct {
	db db.DBTX
}

// NewSQLiteActivityRepo creates a new SQLiteActivityRepo.
func NewSQLiteActivityRepo(db db.DBTX) *SQLiteActivityRepo {
	return &SQLiteActivityRepo{db: db}
}

func (r *SQLiteActivityRepo) Create(ctx context.Context, a *domain.Activity) error {
	query := `INSERT INTO activities (id, name, description, display_order, active)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.Name, a.Description, a.DisplayOrder, boolToInt(a.Active))
	if err != nil {
		return fmt.Errorf("inserting activity: %w", mapConstraint(err))
	}
	return nil
}

func (r *SQLiteActivityRepo) Update(ctx context.Context, a *domain.Activity) error {
	query := `UPDATE activities SET name = ?, description = ?, display_order = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, a.Name, a.Description, a.DisplayOrder, boolToInt(a.Active), a.ID)
	if err != nil {
		return fmt.Errorf("updating activity: %w", mapConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity: %w", ErrNotFound)
	}
	return nil
}

// Deactivate is the soft delete: the row stays for historical reports.
func (r *SQLiteActivityRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE activities SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating activity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("activity: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteActivityRepo) GetByID(ctx context.Context, id string) (*domain.Activity, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLiteActivityRepo) GetByName(ctx context.Context, name string) (*domain.Activity, error) {
	return r.getOne(ctx, `WHERE name = ?`, name)
}

func (r *SQLiteActivityRepo) getOne(ctx context.Context, where string, arg any) (*domain.Activity, error) {
	query := `SELECT id, name, description, display_order, active FROM activities ` + where
	var a domain.Activity
	var active int
	err := r.db.QueryRowContext(ctx, query, arg).Scan(&a.ID, &a.Name, &a.Description, &a.DisplayOrder, &active)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("activity: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning activity: %w", err)
	}
	a.Active = active != 0
	return &a, nil
}

func (r *SQLiteActivityRepo) ListActive(ctx context.Context) ([]*domain.Activity, error) {
	return r.list(ctx, `WHERE active = 1`)
}

func (r *SQLiteActivityRepo) ListAll(ctx context.Context) ([]*domain.Activity, error) {
	return r.list(ctx, ``)
}

func (r *SQLiteActivityRepo) list(ctx context.Context, where string) ([]*domain.Activity, error) {
	query := `SELECT id, name, description, display_order, active FROM activities ` +
		where + ` ORDER BY display_order, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	defer rows.Close()

	var out []*domain.Activity
	for rows.Next() {
		var a domain.Activity
		var active int
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.DisplayOrder, &active); err != nil {
			return nil, fmt.Errorf("scanning activity row: %w", err)
		}
		a.Active = active != 0
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating activities: %w", err)
	}
	return out, nil
}
