package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// SQLiteRoleRepo implements RoleRepo on SQLite.
type SQLiteRoleRepo struct {
	db db.DBTX
}

// NewSQLiteRoleRepo creates a new SQLiteRoleRepo.
func NewSQLiteRoleRepo(db db.DBTX) *SQLiteRoleRepo {
	return &SQLiteRoleRepo{db: db}
}

func (r *SQLiteRoleRepo) Create(ctx context.Context, role *domain.Role) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO roles (id, name, created_at) VALUES (?, ?, ?)`,
		role.ID, role.Name, formatTS(role.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting role: %w", mapConstraint(err))
	}
	return nil
}

func (r *SQLiteRoleRepo) Update(ctx context.Context, role *domain.Role) error {
	res, err := r.db.ExecContext(ctx, `UPDATE roles SET name = ? WHERE id = ?`, role.Name, role.ID)
	if err != nil {
		return fmt.Errorf("updating role: %w", mapConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("role: %w", ErrNotFound)
	}
	return nil
}

// Delete removes the row. The service checks CountUsers in the same
// transaction before calling this.
func (r *SQLiteRoleRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM roles WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting role: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("role: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteRoleRepo) GetByID(ctx context.Context, id string) (*domain.Role, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLiteRoleRepo) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.getOne(ctx, `WHERE name = ?`, name)
}

func (r *SQLiteRoleRepo) getOne(ctx context.Context, where string, arg any) (*domain.Role, error) {
	var role domain.Role
	var createdAt string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM roles `+where, arg).
		Scan(&role.ID, &role.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("role: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning role: %w", err)
	}
	role.CreatedAt, err = parseTS(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing role created_at: %w", err)
	}
	return &role, nil
}

func (r *SQLiteRoleRepo) List(ctx context.Context) ([]*domain.Role, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM roles ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing roles: %w", err)
	}
	defer rows.Close()

	var out []*domain.Role
	for rows.Next() {
		var role domain.Role
		var createdAt string
		if err := rows.Scan(&role.ID, &role.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning role row: %w", err)
		}
		role.CreatedAt, err = parseTS(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing role created_at: %w", err)
		}
		out = append(out, &role)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating roles: %w", err)
	}
	return out, nil
}

func (r *SQLiteRoleRepo) CountUsers(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE role_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting role users: %w", err)
	}
	return n, nil
}
