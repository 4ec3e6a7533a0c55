package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// runningSec values an entry at query time: closed entries contribute their
// stored duration, open entries contribute now − start on the store clock.
// Applied uniformly to every aggregate, so a report run while an activity is
// in progress moves with the clock. That is intentional.
const runningSec = `CASE
		WHEN e.ended_at IS NULL THEN
			CAST(strftime('%s','now') AS INTEGER) - CAST(strftime('%s', e.started_at) AS INTEGER)
		ELSE COALESCE(e.duration_sec, 0)
	END`

// SQLiteReportRepo implements ReportRepo on SQLite.
type SQLiteReportRepo struct {
	db db.DBTX
}

// NewSQLiteReportRepo creates a new SQLiteReportRepo.
func NewSQLiteReportRepo(db db.DBTX) *SQLiteReportRepo {
	return &SQLiteReportRepo{db: db}
}

func (r *SQLiteReportRepo) DaySummary(ctx context.Context, userID string, day time.Time) ([]domain.ActivityTotal, error) {
	query := `SELECT a.name, CAST(SUM(` + runningSec + `) AS INTEGER)
		FROM ledger_entries e
		JOIN activities a ON e.activity_id = a.id
		WHERE e.user_id = ? AND e.day = ?
		GROUP BY a.id, a.name
		ORDER BY 2 DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, formatDay(day))
	if err != nil {
		return nil, fmt.Errorf("querying day summary: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivityTotal
	for rows.Next() {
		var t domain.ActivityTotal
		if err := rows.Scan(&t.ActivityName, &t.TotalSec); err != nil {
			return nil, fmt.Errorf("scanning day summary row: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) DayLog(ctx context.Context, userID string, day time.Time) ([]domain.DayLogRow, error) {
	query := `SELECT a.name, s.name, e.note, e.started_at, e.duration_sec, e.status
		FROM ledger_entries e
		JOIN activities a ON e.activity_id = a.id
		LEFT JOIN subactivities s ON e.subactivity_id = s.id
		WHERE e.user_id = ? AND e.day = ?
		ORDER BY e.started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, formatDay(day))
	if err != nil {
		return nil, fmt.Errorf("querying day log: %w", err)
	}
	defer rows.Close()

	var out []domain.DayLogRow
	for rows.Next() {
		var row domain.DayLogRow
		var sub, note sql.NullString
		var started, status string
		var duration sql.NullInt64
		if err := rows.Scan(&row.ActivityName, &sub, &note, &started, &duration, &status); err != nil {
			return nil, fmt.Errorf("scanning day log row: %w", err)
		}
		row.Status = domain.EntryStatus(status)
		if row.StartedAt, err = parseTS(started); err != nil {
			return nil, fmt.Errorf("parsing day log started_at: %w", err)
		}
		row.SubactivityName = strFromNull(sub)
		row.Note = strFromNull(note)
		row.DurationSec = intFromNull(duration)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) ActivityStats(ctx context.Context, userID string, from, to time.Time) ([]domain.ActivityStat, error) {
	query := `SELECT a.name, s.name,
			COUNT(*),
			CAST(SUM(` + runningSec + `) AS INTEGER),
			CAST(AVG(` + runningSec + `) AS INTEGER)
		FROM ledger_entries e
		JOIN activities a ON e.activity_id = a.id
		LEFT JOIN subactivities s ON e.subactivity_id = s.id
		WHERE e.user_id = ? AND e.day BETWEEN ? AND ?
		GROUP BY a.name, s.name
		ORDER BY 4 DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("querying activity stats: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivityStat
	for rows.Next() {
		var st domain.ActivityStat
		var sub sql.NullString
		if err := rows.Scan(&st.ActivityName, &sub, &st.EntryCount, &st.TotalSec, &st.AvgSec); err != nil {
			return nil, fmt.Errorf("scanning activity stat: %w", err)
		}
		st.SubactivityName = strFromNull(sub)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) ProductivitySummary(ctx context.Context, userID string, day time.Time) (*domain.ProductivitySummary, error) {
	query := `SELECT COUNT(*),
			COUNT(DISTINCT e.activity_id),
			MIN(e.started_at),
			MAX(COALESCE(e.ended_at, ` + storeNow + `)),
			CAST(COALESCE(SUM(` + runningSec + `), 0) AS INTEGER)
		FROM ledger_entries e
		WHERE e.user_id = ? AND e.day = ?`
	var s domain.ProductivitySummary
	var first, last sql.NullString
	err := r.db.QueryRowContext(ctx, query, userID, formatDay(day)).Scan(
		&s.EntryCount, &s.DistinctActivities, &first, &last, &s.WorkedSec,
	)
	if err != nil {
		return nil, fmt.Errorf("querying productivity summary: %w", err)
	}
	s.FirstStart = parseNullableTS(first)
	s.LastEnd = parseNullableTS(last)
	return &s, nil
}

func (r *SQLiteReportRepo) SupervisorDashboard(ctx context.Context, campaignID string, day time.Time) ([]domain.TeamMemberDay, error) {
	breakIn := strings.TrimSuffix(strings.Repeat("?,", len(domain.BreakActivityNames)), ",")
	query := `WITH spans AS (
			SELECT e.user_id,
				MIN(e.started_at) AS first_start,
				MAX(COALESCE(e.ended_at, ` + storeNow + `)) AS last_end
			FROM ledger_entries e
			WHERE e.day = ?
			GROUP BY e.user_id
		),
		effective AS (
			SELECT e.user_id, CAST(SUM(` + runningSec + `) AS INTEGER) AS effective_sec
			FROM ledger_entries e
			WHERE e.day = ?
			  AND e.activity_id NOT IN (
				SELECT id FROM activities WHERE name IN (` + breakIn + `)
			  )
			GROUP BY e.user_id
		)
		SELECT u.full_name,
			sp.first_start,
			sp.last_end,
			COALESCE(CAST(strftime('%s', sp.last_end) AS INTEGER) - CAST(strftime('%s', sp.first_start) AS INTEGER), 0),
			COALESCE(ef.effective_sec, 0),
			EXISTS (
				SELECT 1 FROM ledger_entries
				WHERE user_id = u.id AND day = ? AND ended_at IS NULL
			)
		FROM users u
		LEFT JOIN spans sp ON u.id = sp.user_id
		LEFT JOIN effective ef ON u.id = ef.user_id
		WHERE u.campaign_id = ?
		  AND u.role_id = (SELECT id FROM roles WHERE name = 'Asesor')
		ORDER BY u.full_name`
	d := formatDay(day)
	args := []any{d, d}
	for _, name := range domain.BreakActivityNames {
		args = append(args, name)
	}
	args = append(args, d, campaignID)
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying supervisor dashboard: %w", err)
	}
	defer rows.Close()

	var out []domain.TeamMemberDay
	for rows.Next() {
		var m domain.TeamMemberDay
		var first, last sql.NullString
		var running int
		if err := rows.Scan(&m.FullName, &first, &last, &m.SpanSec, &m.EffectiveSec, &running); err != nil {
			return nil, fmt.Errorf("scanning dashboard row: %w", err)
		}
		m.FirstStart = parseNullableTS(first)
		m.LastEnd = parseNullableTS(last)
		m.Running = running != 0
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) TeamBreakdown(ctx context.Context, campaignID string, day time.Time) ([]domain.TeamBreakdownRow, error) {
	query := `SELECT u.full_name, a.name, s.name,
			COUNT(*),
			CAST(SUM(` + runningSec + `) AS INTEGER)
		FROM ledger_entries e
		JOIN users u ON e.user_id = u.id
		JOIN activities a ON e.activity_id = a.id
		LEFT JOIN subactivities s ON e.subactivity_id = s.id
		WHERE u.campaign_id = ? AND e.day = ?
		GROUP BY u.full_name, a.name, s.name
		ORDER BY u.full_name, 5 DESC`
	rows, err := r.db.QueryContext(ctx, query, campaignID, formatDay(day))
	if err != nil {
		return nil, fmt.Errorf("querying team breakdown: %w", err)
	}
	defer rows.Close()

	var out []domain.TeamBreakdownRow
	for rows.Next() {
		var row domain.TeamBreakdownRow
		var sub sql.NullString
		if err := rows.Scan(&row.FullName, &row.ActivityName, &sub, &row.EntryCount, &row.TotalSec); err != nil {
			return nil, fmt.Errorf("scanning breakdown row: %w", err)
		}
		row.SubactivityName = strFromNull(sub)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) AdminKPIs(ctx context.Context, from, to time.Time, campaignID *string) (*domain.AdminKPIs, error) {
	query := `SELECT COUNT(DISTINCT u.id),
			COUNT(DISTINCT u.campaign_id),
			COUNT(DISTINCT e.id),
			CAST(COALESCE(SUM(` + runningSec + `), 0) AS INTEGER),
			CAST(COALESCE(AVG(` + runningSec + `), 0) AS INTEGER)
		FROM users u
		LEFT JOIN ledger_entries e ON u.id = e.user_id AND e.day BETWEEN ? AND ?
		WHERE u.role_id = (SELECT id FROM roles WHERE name = 'Asesor')`
	args := []any{formatDay(from), formatDay(to)}
	if campaignID != nil {
		query += ` AND u.campaign_id = ?`
		args = append(args, *campaignID)
	}
	var k domain.AdminKPIs
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&k.TotalAsesores, &k.TotalCampaigns, &k.TotalEntries, &k.TotalSec, &k.AvgEntrySec,
	)
	if err != nil {
		return nil, fmt.Errorf("querying admin KPIs: %w", err)
	}
	return &k, nil
}

func (r *SQLiteReportRepo) ByCampaign(ctx context.Context, from, to time.Time) ([]domain.CampaignSummary, error) {
	query := `SELECT c.name,
			COUNT(DISTINCT u.id),
			COUNT(DISTINCT e.id),
			CAST(COALESCE(SUM(` + runningSec + `), 0) AS INTEGER)
		FROM campaigns c
		LEFT JOIN users u ON c.id = u.campaign_id
			AND u.role_id = (SELECT id FROM roles WHERE name = 'Asesor')
		LEFT JOIN ledger_entries e ON u.id = e.user_id AND e.day BETWEEN ? AND ?
		GROUP BY c.name
		ORDER BY 4 DESC`
	rows, err := r.db.QueryContext(ctx, query, formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("querying campaign summary: %w", err)
	}
	defer rows.Close()

	var out []domain.CampaignSummary
	for rows.Next() {
		var s domain.CampaignSummary
		if err := rows.Scan(&s.CampaignName, &s.AsesorCount, &s.EntryCount, &s.TotalSec); err != nil {
			return nil, fmt.Errorf("scanning campaign summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) ByUser(ctx context.Context, from, to time.Time, campaignID *string) ([]domain.UserRangeSummary, error) {
	query := `SELECT u.full_name, c.name,
			COUNT(DISTINCT e.day),
			COUNT(e.id),
			CAST(COALESCE(SUM(` + runningSec + `), 0) AS INTEGER)
		FROM users u
		JOIN campaigns c ON u.campaign_id = c.id
		LEFT JOIN ledger_entries e ON u.id = e.user_id AND e.day BETWEEN ? AND ?
		WHERE u.role_id = (SELECT id FROM roles WHERE name = 'Asesor')`
	args := []any{formatDay(from), formatDay(to)}
	if campaignID != nil {
		query += ` AND u.campaign_id = ?`
		args = append(args, *campaignID)
	}
	query += ` GROUP BY u.full_name, c.name ORDER BY 5 DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying user summary: %w", err)
	}
	defer rows.Close()

	var out []domain.UserRangeSummary
	for rows.Next() {
		var s domain.UserRangeSummary
		if err := rows.Scan(&s.FullName, &s.CampaignName, &s.DaysWorked, &s.EntryCount, &s.TotalSec); err != nil {
			return nil, fmt.Errorf("scanning user summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) ActivityBreakdown(ctx context.Context, from, to time.Time, campaignID *string) ([]domain.ActivityBreakdownRow, error) {
	query := `SELECT a.name,
			COUNT(e.id),
			CAST(COALESCE(SUM(` + runningSec + `), 0) AS INTEGER),
			CAST(COALESCE(AVG(` + runningSec + `), 0) AS INTEGER)
		FROM activities a
		LEFT JOIN ledger_entries e ON a.id = e.activity_id AND e.day BETWEEN ? AND ?
		LEFT JOIN users u ON e.user_id = u.id`
	args := []any{formatDay(from), formatDay(to)}
	if campaignID != nil {
		query += ` WHERE u.campaign_id = ?`
		args = append(args, *campaignID)
	}
	query += ` GROUP BY a.name ORDER BY 3 DESC`
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity breakdown: %w", err)
	}
	defer rows.Close()

	var out []domain.ActivityBreakdownRow
	for rows.Next() {
		var row domain.ActivityBreakdownRow
		if err := rows.Scan(&row.ActivityName, &row.EntryCount, &row.TotalSec, &row.AvgSec); err != nil {
			return nil, fmt.Errorf("scanning activity breakdown: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *SQLiteReportRepo) UserLog(ctx context.Context, userID string, from, to time.Time) ([]domain.UserLogRow, error) {
	query := `SELECT e.day, a.name, s.name, e.note, e.started_at, e.ended_at, e.duration_sec
		FROM ledger_entries e
		JOIN activities a ON e.activity_id = a.id
		LEFT JOIN subactivities s ON e.subactivity_id = s.id
		WHERE e.user_id = ? AND e.day BETWEEN ? AND ?
		ORDER BY e.started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, formatDay(from), formatDay(to))
	if err != nil {
		return nil, fmt.Errorf("querying user log: %w", err)
	}
	defer rows.Close()

	var out []domain.UserLogRow
	for rows.Next() {
		var row domain.UserLogRow
		var sub, note, ended sql.NullString
		var started string
		var duration sql.NullInt64
		if err := rows.Scan(&row.Day, &row.ActivityName, &sub, &note, &started, &ended, &duration); err != nil {
			return nil, fmt.Errorf("scanning user log row: %w", err)
		}
		if row.StartedAt, err = parseTS(started); err != nil {
			return nil, fmt.Errorf("parsing user log started_at: %w", err)
		}
		row.SubactivityName = strFromNull(sub)
		row.Note = strFromNull(note)
		row.EndedAt = parseNullableTS(ended)
		row.DurationSec = intFromNull(duration)
		out = append(out, row)
	}
	return out, rows.Err()
}
