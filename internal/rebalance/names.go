package rebalance

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/JustinWhittecar/proverb-rebalance/internal/datafile"
	"github.com/JustinWhittecar/proverb-rebalance/internal/enemy"
)

type NamesOptions struct {
	Options
	ProverbsPath string
}

type NamesReport struct {
	BackupPath string
	Renamed    int
}

// RenameMonsters copies proverb monster names onto the matching enemies.
func (r *Runner) RenameMonsters(ctx context.Context, opts NamesOptions) (NamesReport, error) {
	var report NamesReport
	log := r.logger.With(zap.String("data", opts.DataPath), zap.String("proverbs", opts.ProverbsPath))

	proverbs, err := datafile.Load(opts.ProverbsPath)
	if err != nil {
		return report, fmt.Errorf("proverbs: %w", err)
	}
	names := enemy.MonsterNames(proverbs)
	log.Debug("monster names indexed", zap.Int("names", len(names)))

	if !opts.DryRun {
		backup, err := datafile.Backup(opts.DataPath, opts.BackupSuffix)
		if err != nil {
			return report, fmt.Errorf("backup: %w", err)
		}
		report.BackupPath = backup
		r.printf(opts.Out, "Backup created: %s\n", backup)
	}

	enemies, err := datafile.Load(opts.DataPath)
	if err != nil {
		return report, err
	}
	out, renamed, err := opts.Rules.ApplyMonsterNames(enemies, names)
	if err != nil {
		return report, fmt.Errorf("rename: %w", err)
	}
	report.Renamed = renamed

	if opts.DryRun {
		r.printf(opts.Out, "Dry run: %d monster names would be updated\n", renamed)
		return report, nil
	}
	if err := datafile.Save(opts.DataPath, out); err != nil {
		return report, err
	}
	r.printf(opts.Out, "Updated %d monster names\n", renamed)
	log.Info("monster names updated", zap.Int("renamed", renamed))
	return report, nil
}
