package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// SQLiteSubactivityRepo implements SubactivityRepo on SQLite.
type SQLiteSubactivityRepo struct {
	db db.DBTX
}

// NewSQLiteSubactivityRepo creates a new SQLiteSubactivityRepo.
func NewSQLiteSubactivityRepo(db db.DBTX) *SQLiteSubactivityRepo {
	return &SQLiteSubactivityRepo{db: db}
}

func (r *SQLiteSubactivityRepo) Create(ctx context.Context, s *domain.Subactivity) error {
	query := `INSERT INTO subactivities (id, activity_id, name, display_order, active)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.ActivityID, s.Name, s.DisplayOrder, boolToInt(s.Active))
	if err != nil {
		return fmt.Errorf("inserting subactivity: %w", mapConstraint(err))
	}
	return nil
}

func (r *SQLiteSubactivityRepo) Update(ctx context.Context, s *domain.Subactivity) error {
	query := `UPDATE subactivities SET name = ?, display_order = ?, active = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query, s.Name, s.DisplayOrder, boolToInt(s.Active), s.ID)
	if err != nil {
		return fmt.Errorf("updating subactivity: %w", mapConstraint(err))
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subactivity: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSubactivityRepo) Deactivate(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE subactivities SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deactivating subactivity: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("subactivity: %w", ErrNotFound)
	}
	return nil
}

func (r *SQLiteSubactivityRepo) GetByID(ctx context.Context, id string) (*domain.Subactivity, error) {
	query := `SELECT id, activity_id, name, display_order, active FROM subactivities WHERE id = ?`
	var s domain.Subactivity
	var active int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&s.ID, &s.ActivityID, &s.Name, &s.DisplayOrder, &active)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("subactivity: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning subactivity: %w", err)
	}
	s.Active = active != 0
	return &s, nil
}

func (r *SQLiteSubactivityRepo) ListActiveByActivity(ctx context.Context, activityID string) ([]*domain.Subactivity, error) {
	query := `SELECT id, activity_id, name, display_order, active FROM subactivities
		WHERE activity_id = ? AND active = 1
		ORDER BY display_order, name`
	rows, err := r.db.QueryContext(ctx, query, activityID)
	if err != nil {
		return nil, fmt.Errorf("listing subactivities: %w", err)
	}
	defer rows.Close()

	var out []*domain.Subactivity
	for rows.Next() {
		var s domain.Subactivity
		var active int
		if err := rows.Scan(&s.ID, &s.ActivityID, &s.Name, &s.DisplayOrder, &active); err != nil {
			return nil, fmt.Errorf("scanning subactivity row: %w", err)
		}
		s.Active = active != 0
		out = append(out, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subactivities: %w", err)
	}
	return out, nil
}

// ListAll returns every subactivity with its parent activity name, for the
// admin management view.
func (r *SQLiteSubactivityRepo) ListAll(ctx context.Context) ([]SubactivityDetail, error) {
	query := `SELECT s.id, s.activity_id, s.name, s.display_order, s.active, a.name
		FROM subactivities s
		JOIN activities a ON s.activity_id = a.id
		ORDER BY a.name, s.display_order`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing all subactivities: %w", err)
	}
	defer rows.Close()

	var out []SubactivityDetail
	for rows.Next() {
		var d SubactivityDetail
		var active int
		if err := rows.Scan(&d.ID, &d.ActivityID, &d.Name, &d.DisplayOrder, &active, &d.ActivityName); err != nil {
			return nil, fmt.Errorf("scanning subactivity detail: %w", err)
		}
		d.Active = active != 0
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating subactivity details: %w", err)
	}
	return out, nil
}
