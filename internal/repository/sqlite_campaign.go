package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// SQLiteCampaignRepo implements CampaignRepo on SQLite.
type SQLiteCampaignRepo struct {
	db db.DBTX
}

// NewSQLiteCampaignRepo creates a new SQLiteCampaignRepo.
func NewSQLiteCampaignRepo(db db.DBTX) *SQLiteCampaignRepo {
	return &SQLiteCampaignRepo{db: db}
}

func (r *SQLiteCampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	query := `INSERT INTO campaigns (id, name, created_at) VALUES (?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, formatTS(c.CreatedAt))
	if err != nil {
		return fmt.Errorf("inserting campaign: %w", mapConstraint(err))
	}
	return nil
}

func (r *SQLiteCampaignRepo) Update(ctx context.Context, c *domain.Campaign) error {
	res, err := r.db.ExecContext(ctx, `UPDATE campaigns SET name = ? WHERE id = ?`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("updating campaign: %w", mapConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("campaign: %w", ErrNotFound)
	}
	return nil
}

// Delete removes the row. The service checks CountUsers in the same
// transaction before calling this.
func (r *SQLiteCampaignRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM campaigns WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting campaign: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("campaign: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteCampaignRepo) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	return r.getOne(ctx, `WHERE id = ?`, id)
}

func (r *SQLiteCampaignRepo) GetByName(ctx context.Context, name string) (*domain.Campaign, error) {
	return r.getOne(ctx, `WHERE name = ?`, name)
}

func (r *SQLiteCampaignRepo) getOne(ctx context.Context, where string, arg any) (*domain.Campaign, error) {
	var c domain.Campaign
	var createdAt string
	err := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM campaigns `+where, arg).
		Scan(&c.ID, &c.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("campaign: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning campaign: %w", err)
	}
	c.CreatedAt, err = parseTS(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing campaign created_at: %w", err)
	}
	return &c, nil
}

func (r *SQLiteCampaignRepo) List(ctx context.Context) ([]*domain.Campaign, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM campaigns ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing campaigns: %w", err)
	}
	defer rows.Close()

	var out []*domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		var createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning campaign row: %w", err)
		}
		c.CreatedAt, err = parseTS(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing campaign created_at: %w", err)
		}
		out = append(out, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating campaigns: %w", err)
	}
	return out, nil
}

func (r *SQLiteCampaignRepo) CountUsers(ctx context.Context, id string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE campaign_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting campaign users: %w", err)
	}
	return n, nil
}
