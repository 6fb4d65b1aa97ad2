package models

import (
	"time"

	"github.com/google/uuid"
)

// Weakness is the answer type an enemy is vulnerable to in battle.
type Weakness string

const (
	WeaknessOnyomi  Weakness = "onyomi"
	WeaknessKunyomi Weakness = "kunyomi"
	WeaknessMeaning Weakness = "meaning"
)

// Weaknesses is the fixed assignment cycle.
var Weaknesses = []Weakness{WeaknessOnyomi, WeaknessKunyomi, WeaknessMeaning}

// EnemyStats is the set of fields recomputed for one in-scope enemy.
type EnemyStats struct {
	ID       string   `json:"id"`
	StageID  string   `json:"stageId"`
	Grade    int      `json:"grade"`
	Level    int      `json:"level"`
	MaxHP    int      `json:"maxHp"`
	Atk      int      `json:"atk"`
	Exp      int      `json:"exp"`
	Weakness Weakness `json:"weakness"`
}

// Run describes one rebalance of the enemy table.
type Run struct {
	ID         uuid.UUID `json:"id"`
	SourcePath string    `json:"source_path"`
	BackupPath string    `json:"backup_path"`
	Updated    int       `json:"updated"`
	CreatedAt  time.Time `json:"created_at"`
}
