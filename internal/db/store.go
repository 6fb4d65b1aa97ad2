package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JustinWhittecar/proverb-rebalance/internal/models"
)

// Store publishes rebalanced stats to the game's Postgres database.
type Store struct {
	Pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{Pool: pool}
}

// Connect opens a pool and verifies the server is reachable.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pg connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg ping: %w", err)
	}
	return pool, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.Pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS enemy_stats (
			enemy_id TEXT PRIMARY KEY,
			stage_id TEXT NOT NULL DEFAULT '',
			grade INTEGER NOT NULL,
			level INTEGER NOT NULL,
			max_hp INTEGER NOT NULL,
			atk INTEGER NOT NULL,
			exp INTEGER NOT NULL,
			weakness TEXT NOT NULL,
			run_id UUID NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("create enemy_stats: %w", err)
	}
	return nil
}

const upsertEnemyStats = `
	INSERT INTO enemy_stats (enemy_id, stage_id, grade, level, max_hp, atk, exp, weakness, run_id, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, now())
	ON CONFLICT (enemy_id) DO UPDATE SET
		stage_id = EXCLUDED.stage_id, grade = EXCLUDED.grade, level = EXCLUDED.level,
		max_hp = EXCLUDED.max_hp, atk = EXCLUDED.atk, exp = EXCLUDED.exp,
		weakness = EXCLUDED.weakness, run_id = EXCLUDED.run_id, updated_at = now()`

// PublishStats upserts every row of a run in a single transaction and returns
// the number of rows written.
func (s *Store) PublishStats(ctx context.Context, run models.Run, rows []models.EnemyStats) (int, error) {
	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin publish: %w", err)
	}
	defer tx.Rollback(ctx)

	batch := &pgx.Batch{}
	for _, r := range rows {
		batch.Queue(upsertEnemyStats,
			r.ID, r.StageID, r.Grade, r.Level, r.MaxHP, r.Atk, r.Exp, string(r.Weakness), run.ID)
	}

	br := tx.SendBatch(ctx, batch)
	written := 0
	for _, r := range rows {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return 0, fmt.Errorf("upsert enemy %s: %w", r.ID, err)
		}
		written++
	}
	if err := br.Close(); err != nil {
		return 0, fmt.Errorf("close batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit publish: %w", err)
	}
	return written, nil
}
