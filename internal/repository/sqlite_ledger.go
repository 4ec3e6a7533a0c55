package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dquispe/jornada/internal/db"
	"github.com/dquispe/jornada/internal/domain"
)

// storeNow is the SQL expression for the store clock in stored format.
// All start/stop timestamps come from here, never from the caller, so the
// display tier's clock can never skew the ledger.
const storeNow = `strftime('%Y-%m-%dT%H:%M:%SZ','now')`

// SQLiteLedgerRepo implements LedgerRepo on SQLite.
type SQLiteLedgerRepo struct {
	db db.DBTX
}

// NewSQLiteLedgerRepo creates a new SQLiteLedgerRepo.
func NewSQLiteLedgerRepo(db db.DBTX) *SQLiteLedgerRepo {
	return &SQLiteLedgerRepo{db: db}
}

func (r *SQLiteLedgerRepo) Create(ctx context.Context, e *domain.LedgerEntry) error {
	query := `INSERT INTO ledger_entries
		(id, user_id, activity_id, subactivity_id, day, started_at, ended_at, duration_sec, note, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	var endedAt interface{}
	if e.EndedAt != nil {
		endedAt = formatTS(*e.EndedAt)
	}
	var duration interface{}
	if e.DurationSec != nil {
		duration = *e.DurationSec
	}
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.ActivityID, nullableStr(e.SubactivityID),
		e.Day, formatTS(e.StartedAt), endedAt, duration,
		nullableStr(e.Note), string(e.Status),
	)
	if err != nil {
		return fmt.Errorf("inserting ledger entry: %w", err)
	}
	return nil
}

// Start inserts an open entry whose day and start timestamp come from the
// store clock, then reads the row back so the caller sees the authoritative
// values.
func (r *SQLiteLedgerRepo) Start(ctx context.Context, id, userID, activityID string, subactivityID, note *string) (*domain.LedgerEntry, error) {
	query := `INSERT INTO ledger_entries
		(id, user_id, activity_id, subactivity_id, day, started_at, note, status)
		VALUES (?, ?, ?, ?, date('now'), ` + storeNow + `, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		id, userID, activityID, nullableStr(subactivityID),
		nullableStr(note), string(domain.StatusStarted),
	)
	if err != nil {
		return nil, fmt.Errorf("starting ledger entry: %w", err)
	}
	return r.GetByID(ctx, id)
}

// CloseOpen closes every open entry for the user at the store clock,
// computing the duration in SQL. Returns the number of rows closed
// (0 when nothing was open, which is not an error).
func (r *SQLiteLedgerRepo) CloseOpen(ctx context.Context, userID string) (int, error) {
	query := `UPDATE ledger_entries
		SET ended_at = ` + storeNow + `,
		    duration_sec = CAST(strftime('%s','now') AS INTEGER) - CAST(strftime('%s', started_at) AS INTEGER),
		    status = ?
		WHERE user_id = ? AND ended_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, string(domain.StatusFinished), userID)
	if err != nil {
		return 0, fmt.Errorf("closing open entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

// CloseOpenAt force-closes the user's open entries for the given day with
// an explicit end timestamp. This is the day-rollover path: the caller
// supplies D1 23:59:59 because "now" already belongs to a later day.
func (r *SQLiteLedgerRepo) CloseOpenAt(ctx context.Context, userID string, day time.Time, endAt time.Time, status domain.EntryStatus) (int, error) {
	query := `UPDATE ledger_entries
		SET ended_at = ?,
		    duration_sec = CAST(strftime('%s', ?) AS INTEGER) - CAST(strftime('%s', started_at) AS INTEGER),
		    status = ?
		WHERE user_id = ? AND ended_at IS NULL AND day = ?`
	end := formatTS(endAt)
	res, err := r.db.ExecContext(ctx, query, end, end, string(status), userID, formatDay(day))
	if err != nil {
		return 0, fmt.Errorf("force-closing entries: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("reading rows affected: %w", err)
	}
	return int(n), nil
}

func (r *SQLiteLedgerRepo) GetByID(ctx context.Context, id string) (*domain.LedgerEntry, error) {
	query := `SELECT id, user_id, activity_id, subactivity_id, day, started_at, ended_at, duration_sec, note, status
		FROM ledger_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	e, err := scanEntry(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("ledger entry: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning ledger entry: %w", err)
	}
	return e, nil
}

// GetOpen returns the user's open entry for the given day joined with
// activity and subactivity names, or ErrNotFound.
func (r *SQLiteLedgerRepo) GetOpen(ctx context.Context, userID string, day time.Time) (*domain.EntryDetail, error) {
	query := `SELECT e.id, e.user_id, e.activity_id, e.subactivity_id, e.day,
			e.started_at, e.ended_at, e.duration_sec, e.note, e.status,
			a.name, s.name
		FROM ledger_entries e
		JOIN activities a ON e.activity_id = a.id
		LEFT JOIN subactivities s ON e.subactivity_id = s.id
		WHERE e.user_id = ? AND e.ended_at IS NULL AND e.day = ?
		ORDER BY e.started_at DESC
		LIMIT 1`
	row := r.db.QueryRowContext(ctx, query, userID, formatDay(day))
	d, err := scanEntryDetail(row.Scan)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("open ledger entry: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning open ledger entry: %w", err)
	}
	return d, nil
}

func (r *SQLiteLedgerRepo) CountOpen(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM ledger_entries WHERE user_id = ? AND ended_at IS NULL`,
		userID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting open entries: %w", err)
	}
	return n, nil
}

// OpenElapsedSec returns the authoritative elapsed seconds for a running
// entry, computed on the store clock. Used to baseline the display tier's
// ticking indicator.
func (r *SQLiteLedgerRepo) OpenElapsedSec(ctx context.Context, entryID string) (int, error) {
	var sec int
	err := r.db.QueryRowContext(ctx,
		`SELECT CAST(strftime('%s','now') AS INTEGER) - CAST(strftime('%s', started_at) AS INTEGER)
		 FROM ledger_entries WHERE id = ? AND ended_at IS NULL`,
		entryID,
	).Scan(&sec)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("open ledger entry: %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("reading open elapsed: %w", err)
	}
	if sec < 0 {
		sec = 0
	}
	return sec, nil
}

// ListDay lists a user's entries for a day, most recent first.
func (r *SQLiteLedgerRepo) ListDay(ctx context.Context, userID string, day time.Time) ([]*domain.EntryDetail, error) {
	query := `SELECT e.id, e.user_id, e.activity_id, e.subactivity_id, e.day,
			e.started_at, e.ended_at, e.duration_sec, e.note, e.status,
			a.name, s.name
		FROM ledger_entries e
		JOIN activities a ON e.activity_id = a.id
		LEFT JOIN subactivities s ON e.subactivity_id = s.id
		WHERE e.user_id = ? AND e.day = ?
		ORDER BY e.started_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID, formatDay(day))
	if err != nil {
		return nil, fmt.Errorf("listing day entries: %w", err)
	}
	defer rows.Close()

	var out []*domain.EntryDetail
	for rows.Next() {
		d, err := scanEntryDetail(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning day entry: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating day entries: %w", err)
	}
	return out, nil
}

// scanEntry scans the base ledger columns through any Scan function.
func scanEntry(scan func(...any) error) (*domain.LedgerEntry, error) {
	var e domain.LedgerEntry
	var subactivityID, endedAt, note sql.NullString
	var duration sql.NullInt64
	var startedAt, status string

	err := scan(
		&e.ID, &e.UserID, &e.ActivityID, &subactivityID, &e.Day,
		&startedAt, &endedAt, &duration, &note, &status,
	)
	if err != nil {
		return nil, err
	}

	e.StartedAt, err = parseTS(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at: %w", err)
	}
	e.SubactivityID = strFromNull(subactivityID)
	e.EndedAt = parseNullableTS(endedAt)
	e.DurationSec = intFromNull(duration)
	e.Note = strFromNull(note)
	e.Status = domain.EntryStatus(status)
	return &e, nil
}

// scanEntryDetail scans the base columns plus joined names.
func scanEntryDetail(scan func(...any) error) (*domain.EntryDetail, error) {
	var d domain.EntryDetail
	var subactivityID, endedAt, note, subName sql.NullString
	var duration sql.NullInt64
	var startedAt, status string

	err := scan(
		&d.ID, &d.UserID, &d.ActivityID, &subactivityID, &d.Day,
		&startedAt, &endedAt, &duration, &note, &status,
		&d.ActivityName, &subName,
	)
	if err != nil {
		return nil, err
	}

	d.StartedAt, err = parseTS(startedAt)
	if err != nil {
		return nil, fmt.Errorf("parsing started_at '%s': %w", startedAt, ErrCorruptTimestamp)
	}
	d.SubactivityID = strFromNull(subactivityID)
	d.EndedAt = parseNullableTS(endedAt)
	d.DurationSec = intFromNull(duration)
	d.Note = strFromNull(note)
	d.Status = domain.EntryStatus(status)
	d.SubactivityName = strFromNull(subName)
	return &d, nil
}
