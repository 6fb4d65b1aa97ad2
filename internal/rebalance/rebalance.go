// Package rebalance runs the enemy table maintenance jobs end to end: backup,
// load, transform, write-back, then the optional snapshot and publish steps.
package rebalance

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/JustinWhittecar/proverb-rebalance/internal/datafile"
	"github.com/JustinWhittecar/proverb-rebalance/internal/db"
	"github.com/JustinWhittecar/proverb-rebalance/internal/enemy"
	"github.com/JustinWhittecar/proverb-rebalance/internal/models"
)

type Options struct {
	DataPath     string
	BackupSuffix string
	Rules        enemy.Rules
	DryRun       bool

	SnapshotPath string // empty skips the SQLite snapshot
	DSN          string // empty skips the Postgres publish

	// Out receives the human-readable status lines.
	Out io.Writer
}

type Report struct {
	Run       models.Run
	DryRun    bool
	Stats     []models.EnemyStats
	Snapshot  string
	Published int
}

// Runner carries the logger and the clock/id sources of a job.
type Runner struct {
	logger *zap.Logger
	now    func() time.Time
	newID  func() uuid.UUID
}

func NewRunner(logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{logger: logger, now: time.Now, newID: uuid.New}
}

// Rebalance backs up the enemy table, recomputes every in-scope enemy and
// overwrites the table. Nothing is written to the table if any step before
// the write fails.
func (r *Runner) Rebalance(ctx context.Context, opts Options) (Report, error) {
	start := r.now()
	report := Report{DryRun: opts.DryRun}
	report.Run = models.Run{
		ID:         r.newID(),
		SourcePath: opts.DataPath,
		CreatedAt:  start,
	}
	log := r.logger.With(zap.String("run_id", report.Run.ID.String()), zap.String("data", opts.DataPath))

	if !opts.DryRun {
		backup, err := datafile.Backup(opts.DataPath, opts.BackupSuffix)
		if err != nil {
			return report, fmt.Errorf("backup: %w", err)
		}
		report.Run.BackupPath = backup
		r.printf(opts.Out, "Backup created: %s\n", backup)
		log.Info("backup created", zap.String("backup", backup))
	}

	records, err := datafile.Load(opts.DataPath)
	if err != nil {
		return report, err
	}
	log.Debug("enemy table loaded", zap.Int("records", len(records)))

	res, err := opts.Rules.Transform(records)
	if err != nil {
		return report, fmt.Errorf("transform: %w", err)
	}
	report.Stats = res.Updated
	report.Run.Updated = len(res.Updated)

	if opts.DryRun {
		r.printf(opts.Out, "Dry run: %d enemies would be updated\n", report.Run.Updated)
		log.Info("dry run complete", zap.Int("updated", report.Run.Updated))
		return report, nil
	}

	if err := datafile.Save(opts.DataPath, res.Records); err != nil {
		return report, err
	}
	r.printf(opts.Out, "Updated stats for %d enemies\n", report.Run.Updated)
	log.Info("enemy table written",
		zap.Int("records", len(res.Records)),
		zap.Int("updated", report.Run.Updated),
		zap.Duration("elapsed", r.now().Sub(start)))

	if opts.SnapshotPath != "" {
		if err := r.snapshot(ctx, opts.SnapshotPath, report.Run, report.Stats); err != nil {
			return report, err
		}
		report.Snapshot = opts.SnapshotPath
		log.Info("snapshot written", zap.String("snapshot", opts.SnapshotPath))
	}

	if opts.DSN != "" {
		n, err := r.publish(ctx, opts.DSN, report.Run, report.Stats)
		if err != nil {
			return report, err
		}
		report.Published = n
		log.Info("stats published", zap.Int("rows", n))
	}

	return report, nil
}

func (r *Runner) snapshot(ctx context.Context, path string, run models.Run, rows []models.EnemyStats) error {
	sl, err := db.ConnectSnapshot(path)
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	defer sl.Close()
	if err := db.WriteSnapshot(ctx, sl, run, rows); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

func (r *Runner) publish(ctx context.Context, dsn string, run models.Run, rows []models.EnemyStats) (int, error) {
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		return 0, fmt.Errorf("publish: %w", err)
	}
	defer pool.Close()

	store := db.NewStore(pool)
	if err := store.EnsureSchema(ctx); err != nil {
		return 0, fmt.Errorf("publish: %w", err)
	}
	n, err := store.PublishStats(ctx, run, rows)
	if err != nil {
		return 0, fmt.Errorf("publish: %w", err)
	}
	return n, nil
}

func (r *Runner) printf(w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	fmt.Fprintf(w, format, args...)
}
