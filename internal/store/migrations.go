package store

import (
	"context"
	"database/sql"
	"strings"
)

// schema contains the DDL for the run history.
// Each statement uses IF NOT EXISTS for idempotency.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL DEFAULT '',
		algorithm     TEXT NOT NULL,
		modality      TEXT NOT NULL DEFAULT '',
		quantum       INTEGER NOT NULL DEFAULT 0,
		process_count INTEGER NOT NULL,
		duration      INTEGER NOT NULL,
		processes     TEXT NOT NULL,
		result        TEXT NOT NULL,
		created_at    TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_algorithm ON runs(algorithm)`,
}

// alterStatements add columns introduced after the first schema.
var alterStatements = []struct {
	table    string
	column   string
	alterSQL string
	indexSQL string
}{
	{
		table:    "runs",
		column:   "label",
		alterSQL: "ALTER TABLE runs ADD COLUMN label TEXT NOT NULL DEFAULT ''",
	},
	{
		table:    "runs",
		column:   "avg_waiting_time",
		alterSQL: "ALTER TABLE runs ADD COLUMN avg_waiting_time REAL",
		indexSQL: "CREATE INDEX IF NOT EXISTS idx_runs_avg_waiting ON runs(avg_waiting_time)",
	},
}

// migrate executes the schema DDL and then the column additions.
func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	for _, alter := range alterStatements {
		if err := addColumnIfNotExists(ctx, db, alter.table, alter.column, alter.alterSQL); err != nil {
			return err
		}
		if alter.indexSQL != "" {
			if _, err := db.ExecContext(ctx, alter.indexSQL); err != nil {
				return err
			}
		}
	}
	return nil
}

// addColumnIfNotExists runs alterSQL unless table already has column.
func addColumnIfNotExists(ctx context.Context, db *sql.DB, table, column, alterSQL string) error {
	rows, err := db.QueryContext(ctx, "PRAGMA table_info("+table+")")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dfltValue *string
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dfltValue, &pk); err != nil {
			return err
		}
		if strings.EqualFold(name, column) {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = db.ExecContext(ctx, alterSQL)
	return err
}
