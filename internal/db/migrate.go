package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are executed in order on every open. Statements are written to
// be re-runnable (CREATE IF NOT EXISTS); ALTER TABLE additions tolerate the
// duplicate-column error on re-run.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS roles (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS campaigns (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL UNIQUE,
		created_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		full_name     TEXT NOT NULL,
		role_id       TEXT REFERENCES roles(id),
		campaign_id   TEXT REFERENCES campaigns(id),
		active        INTEGER NOT NULL DEFAULT 1,
		created_at    TEXT NOT NULL,
		updated_at    TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS activities (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL UNIQUE,
		description   TEXT NOT NULL DEFAULT '',
		display_order INTEGER NOT NULL DEFAULT 0,
		active        INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS subactivities (
		id            TEXT PRIMARY KEY,
		activity_id   TEXT NOT NULL REFERENCES activities(id) ON DELETE CASCADE,
		name          TEXT NOT NULL,
		display_order INTEGER NOT NULL DEFAULT 0,
		active        INTEGER NOT NULL DEFAULT 1,
		UNIQUE(activity_id, name)
	)`,

	`CREATE TABLE IF NOT EXISTS ledger_entries (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL REFERENCES users(id),
		activity_id    TEXT NOT NULL REFERENCES activities(id),
		subactivity_id TEXT REFERENCES subactivities(id),
		day            TEXT NOT NULL,
		started_at     TEXT NOT NULL,
		ended_at       TEXT,
		duration_sec   INTEGER,
		note           TEXT,
		status         TEXT NOT NULL
		               CHECK(status IN ('Iniciado','Finalizado','Cerrado Automático'))
	)`,

	`CREATE INDEX IF NOT EXISTS idx_ledger_user_day ON ledger_entries(user_id, day)`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_open ON ledger_entries(user_id) WHERE ended_at IS NULL`,
	`CREATE INDEX IF NOT EXISTS idx_ledger_activity ON ledger_entries(activity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_subactivities_activity ON subactivities(activity_id)`,
	`CREATE INDEX IF NOT EXISTS idx_users_campaign ON users(campaign_id)`,
}

// Migrate runs all schema migrations.
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
