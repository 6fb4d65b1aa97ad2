package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JustinWhittecar/proverb-rebalance/internal/datafile"
	"github.com/JustinWhittecar/proverb-rebalance/internal/enemy"
)

// DefaultDataPath is where the game reads its enemy table, relative to the
// repository root of the game client.
const DefaultDataPath = "コード/public/data/enemies_proto.json"

// Config holds rebalance tool configuration.
type Config struct {
	// Enemy table
	Data DataConfig `yaml:"data"`

	// Which enemies are rebalanced
	Scope ScopeConfig `yaml:"scope"`

	// Optional SQLite snapshot of each run
	Snapshot SnapshotConfig `yaml:"snapshot"`

	// Optional Postgres publish of each run
	Publish PublishConfig `yaml:"publish"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

type DataConfig struct {
	Path         string `yaml:"path"`
	BackupSuffix string `yaml:"backup_suffix"`
	ProverbsPath string `yaml:"proverbs_path"`
}

type ScopeConfig struct {
	Prefix       string `yaml:"prefix"`
	MinNumber    int    `yaml:"min_number"`
	MaxNumber    int    `yaml:"max_number"`
	DefaultGrade int    `yaml:"default_grade"`
}

type SnapshotConfig struct {
	Path string `yaml:"path"` // empty disables the snapshot
}

type PublishConfig struct {
	DSN string `yaml:"dsn"` // empty disables publishing
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the configuration of the original one-shot run.
func DefaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path:         DefaultDataPath,
			BackupSuffix: datafile.DefaultBackupSuffix,
			ProverbsPath: "proverbs_with_monsters.json",
		},
		Scope: ScopeConfig{
			Prefix:       enemy.DefaultPrefix,
			MinNumber:    enemy.DefaultMinNumber,
			MaxNumber:    enemy.DefaultMaxNumber,
			DefaultGrade: enemy.DefaultGrade,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment overrides are applied last.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("REBALANCE_DATA_PATH"); v != "" {
		c.Data.Path = v
	}
	if v := os.Getenv("REBALANCE_SNAPSHOT_PATH"); v != "" {
		c.Snapshot.Path = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.Publish.DSN = v
	}
}

// Validate rejects configurations that cannot select any enemy.
func (c *Config) Validate() error {
	if c.Data.Path == "" {
		return fmt.Errorf("data.path is required")
	}
	if c.Data.BackupSuffix == "" {
		return fmt.Errorf("data.backup_suffix is required")
	}
	if c.Scope.Prefix == "" {
		return fmt.Errorf("scope.prefix is required")
	}
	if c.Scope.MinNumber > c.Scope.MaxNumber {
		return fmt.Errorf("scope.min_number %d exceeds scope.max_number %d", c.Scope.MinNumber, c.Scope.MaxNumber)
	}
	return nil
}

// Rules converts the scope section into transform rules.
func (c *Config) Rules() enemy.Rules {
	return enemy.Rules{
		Prefix:       c.Scope.Prefix,
		MinNumber:    c.Scope.MinNumber,
		MaxNumber:    c.Scope.MaxNumber,
		DefaultGrade: c.Scope.DefaultGrade,
	}
}
