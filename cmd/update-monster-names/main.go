// Command update-monster-names copies monster names from the proverb table
// onto the matching PRV-E enemies, after backing the enemy table up.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/JustinWhittecar/proverb-rebalance/internal/config"
	"github.com/JustinWhittecar/proverb-rebalance/internal/rebalance"
)

var (
	configPath   string
	dataPath     string
	proverbsPath string
	dryRun       bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:          "update-monster-names",
	Short:        "Sync enemy names from proverbs_with_monsters.json",
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runUpdateNames,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "rebalance.yaml", "YAML config file (missing file uses defaults)")
	rootCmd.Flags().StringVar(&dataPath, "data", "", "enemy table JSON (overrides config)")
	rootCmd.Flags().StringVar(&proverbsPath, "proverbs", "", "proverb table JSON with monsterName fields (overrides config)")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "report without writing anything")
}

func runUpdateNames(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if dataPath != "" {
		cfg.Data.Path = dataPath
	}
	if proverbsPath != "" {
		cfg.Data.ProverbsPath = proverbsPath
	}

	_, err = rebalance.NewRunner(logger).RenameMonsters(cmd.Context(), rebalance.NamesOptions{
		Options: rebalance.Options{
			DataPath:     cfg.Data.Path,
			BackupSuffix: cfg.Data.BackupSuffix,
			Rules:        cfg.Rules(),
			DryRun:       dryRun,
			Out:          cmd.OutOrStdout(),
		},
		ProverbsPath: cfg.Data.ProverbsPath,
	})
	return err
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
