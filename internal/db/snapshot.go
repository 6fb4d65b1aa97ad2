package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/JustinWhittecar/proverb-rebalance/internal/models"
)

// WriteSnapshot records run and its rows in one transaction. Duplicate enemy
// ids within a run keep the last row.
func WriteSnapshot(ctx context.Context, db *sql.DB, run models.Run, rows []models.EnemyStats) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source_path, backup_path, updated, created_at) VALUES (?,?,?,?,?)`,
		run.ID.String(), run.SourcePath, run.BackupPath, run.Updated, run.CreatedAt.UTC(),
	); err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR REPLACE INTO enemy_stats (run_id, enemy_id, stage_id, grade, level, max_hp, atk, exp, weakness)
		 VALUES (?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return fmt.Errorf("prepare enemy_stats: %w", err)
	}
	defer stmt.Close()

	for _, r := range rows {
		if _, err := stmt.ExecContext(ctx,
			run.ID.String(), r.ID, r.StageID, r.Grade, r.Level, r.MaxHP, r.Atk, r.Exp, string(r.Weakness),
		); err != nil {
			return fmt.Errorf("insert enemy %s: %w", r.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
