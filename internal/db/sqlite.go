package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// ConnectSnapshot opens (creating if needed) a writable SQLite file that keeps
// the computed stats of every rebalance run.
func ConnectSnapshot(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open snapshot db: %w", err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma %s: %w", pragma, err)
		}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping snapshot db: %w", err)
	}

	for _, ddl := range []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			backup_path TEXT NOT NULL,
			updated INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS enemy_stats (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			enemy_id TEXT NOT NULL,
			stage_id TEXT NOT NULL DEFAULT '',
			grade INTEGER NOT NULL,
			level INTEGER NOT NULL,
			max_hp INTEGER NOT NULL,
			atk INTEGER NOT NULL,
			exp INTEGER NOT NULL,
			weakness TEXT NOT NULL,
			PRIMARY KEY (run_id, enemy_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_enemy_stats_stage ON enemy_stats(stage_id)`,
	} {
		if _, err := db.Exec(ddl); err != nil {
			db.Close()
			return nil, fmt.Errorf("create table: %w", err)
		}
	}

	return db, nil
}
