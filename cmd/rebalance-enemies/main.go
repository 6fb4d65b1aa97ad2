// Command rebalance-enemies recomputes level, maxHp, atk, exp and weakness for
// the proverb enemies in the game's enemy table, after backing the table up.
//
// Usage: go run ./cmd/rebalance-enemies [--data path] [--snapshot runs.db] [--db DSN]
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/JustinWhittecar/proverb-rebalance/internal/config"
	"github.com/JustinWhittecar/proverb-rebalance/internal/rebalance"
)

var (
	configPath   string
	dataPath     string
	snapshotPath string
	dsn          string
	dryRun       bool
	verbose      bool

	logger *zap.Logger
	level  = zap.NewAtomicLevel()
)

var rootCmd = &cobra.Command{
	Use:   "rebalance-enemies",
	Short: "Rebalance proverb enemy stats and weaknesses",
	Long: `Backs up the enemy table, then for every PRV-E1..PRV-E400 enemy recomputes
level, maxHp, atk and exp from its number and grade, and assigns a weakness
(onyomi, kunyomi, meaning) by the enemy's position within its stage.`,
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	PersistentPreRunE: initLogger,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runRebalance,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "rebalance.yaml", "YAML config file (missing file uses defaults)")
	rootCmd.Flags().StringVar(&dataPath, "data", "", "enemy table JSON (overrides config)")
	rootCmd.Flags().StringVar(&snapshotPath, "snapshot", "", "SQLite file to record this run in (overrides config)")
	rootCmd.Flags().StringVar(&dsn, "db", "", "Postgres connection string to publish stats to (overrides config)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "compute and report without writing anything")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func initLogger(cmd *cobra.Command, args []string) error {
	cfg := zap.NewProductionConfig()
	if verbose {
		level.SetLevel(zapcore.DebugLevel)
	}
	cfg.Level = level
	var err error
	logger, err = cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if snapshotPath != "" {
		cfg.Snapshot.Path = snapshotPath
	}
	if dsn != "" {
		cfg.Publish.DSN = dsn
	}
	if !verbose {
		lvl, err := zapcore.ParseLevel(cfg.Logging.Level)
		if err != nil {
			return nil, fmt.Errorf("logging.level: %w", err)
		}
		level.SetLevel(lvl)
	}
	return cfg, nil
}

func runRebalance(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	report, err := rebalance.NewRunner(logger).Rebalance(cmd.Context(), rebalance.Options{
		DataPath:     cfg.Data.Path,
		BackupSuffix: cfg.Data.BackupSuffix,
		Rules:        cfg.Rules(),
		DryRun:       dryRun,
		SnapshotPath: cfg.Snapshot.Path,
		DSN:          cfg.Publish.DSN,
		Out:          cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	if report.Snapshot != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Snapshot written: %s (run %s)\n", report.Snapshot, report.Run.ID)
	}
	if report.Published > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Published %d rows\n", report.Published)
	}
	return nil
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
