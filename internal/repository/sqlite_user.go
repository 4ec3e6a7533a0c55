package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// SQLiteUserRepo implements UserRepo on SQLite.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(db db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: db}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, username, password_hash, full_name, role_id, campaign_id, active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID, u.Username, u.PasswordHash, u.FullName,
		nullableStr(u.RoleID), nullableStr(u.CampaignID),
		boolToInt(u.Active), formatTS(u.CreatedAt), formatTS(u.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting user: %w", mapConstraint(err))
	}
	return nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET full_name = ?, role_id = ?, campaign_id = ?, active = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.FullName, nullableStr(u.RoleID), nullableStr(u.CampaignID),
		boolToInt(u.Active), nowUTC(), u.ID,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET active = ?, updated_at = ? WHERE id = ?`,
		boolToInt(active), nowUTC(), id)
	if err != nil {
		return fmt.Errorf("setting user active flag: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, nowUTC(), id)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getOne(ctx, `WHERE username = ?`, username)
}

func (r *SQLiteUserRepo) getOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `SELECT id, username, password_hash, full_name, role_id, campaign_id, active, created_at, updated_at
		FROM users ` + where
	var u domain.User
	var roleID, campaignID sql.NullString
	var active int
	var createdAt, updatedAt string
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName,
		&roleID, &campaignID, &active, &createdAt, &updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("user: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.RoleID = strFromNull(roleID)
	u.CampaignID = strFromNull(campaignID)
	u.Active = active != 0
	if u.CreatedAt, err = parseTS(createdAt); err != nil {
		return nil, fmt.Errorf("parsing user created_at: %w", err)
	}
	if u.UpdatedAt, err = parseTS(updatedAt); err != nil {
		return nil, fmt.Errorf("parsing user updated_at: %w", err)
	}
	return &u, nil
}

func (r *SQLiteUserRepo) UsernameExists(ctx context.Context, username string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE username = ?`, username).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("checking username: %w", err)
	}
	return n > 0, nil
}

// List returns all users with role and campaign names, ordered by full name.
func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.UserDetail, error) {
	query := `SELECT u.id, u.username, u.password_hash, u.full_name, u.role_id, u.campaign_id,
			u.active, u.created_at, u.updated_at, r.name, c.name
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.id
		LEFT JOIN campaigns c ON u.campaign_id = c.id
		ORDER BY u.full_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var out []*domain.UserDetail
	for rows.Next() {
		var d domain.UserDetail
		var roleID, campaignID, roleName, campaignName sql.NullString
		var active int
		var createdAt, updatedAt string
		err := rows.Scan(
			&d.ID, &d.Username, &d.PasswordHash, &d.FullName,
			&roleID, &campaignID, &active, &createdAt, &updatedAt,
			&roleName, &campaignName,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning user row: %w", err)
		}
		d.RoleID = strFromNull(roleID)
		d.CampaignID = strFromNull(campaignID)
		d.Active = active != 0
		if d.CreatedAt, err = parseTS(createdAt); err != nil {
			return nil, fmt.Errorf("parsing user created_at: %w", err)
		}
		if d.UpdatedAt, err = parseTS(updatedAt); err != nil {
			return nil, fmt.Errorf("parsing user updated_at: %w", err)
		}
		d.RoleName = strFromNull(roleName)
		d.CampaignName = strFromNull(campaignName)
		out = append(out, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return out, nil
}
