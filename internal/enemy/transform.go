package enemy

import (
	"fmt"

	"github.com/JustinWhittecar/proverb-rebalance/internal/models"
)

// Result is the rebalanced table plus the rows that were rewritten.
type Result struct {
	Records []Record
	Updated []models.EnemyStats
}

// Transform rebalances records with the default rules.
func Transform(records []Record) (Result, error) {
	return DefaultRules().Transform(records)
}

// Transform returns a new slice in the original order where every in-scope
// record has level, maxHp, atk, exp and weakness overwritten. Out-of-scope
// records are returned as-is. The input slice is not modified.
func (r Rules) Transform(records []Record) (Result, error) {
	groups := r.GroupByStage(records)

	out := make([]Record, len(records))
	copy(out, records)

	var updated []models.EnemyStats
	inScope := 0
	for i, rec := range records {
		id, ok := rec.ID()
		if !ok {
			continue
		}
		n, ok := r.Number(id)
		if !ok {
			continue
		}

		grade := rec.Grade(r.DefaultGrade)
		stats := ComputeStats(n, grade)

		weakness, ok := groups.Weakness(rec.StageKey(), id)
		if !ok {
			weakness = WeaknessAt(inScope)
		}
		inScope++

		row := models.EnemyStats{
			ID:       id,
			StageID:  rec.StageID(),
			Grade:    grade,
			Level:    stats.Level,
			MaxHP:    stats.MaxHP,
			Atk:      stats.Atk,
			Exp:      stats.Exp,
			Weakness: weakness,
		}
		next, err := apply(rec, row)
		if err != nil {
			return Result{}, fmt.Errorf("enemy %s: %w", id, err)
		}
		out[i] = next
		updated = append(updated, row)
	}

	return Result{Records: out, Updated: updated}, nil
}

func apply(rec Record, row models.EnemyStats) (Record, error) {
	var err error
	for _, f := range []struct {
		key   string
		value any
	}{
		{"level", row.Level},
		{"maxHp", row.MaxHP},
		{"atk", row.Atk},
		{"exp", row.Exp},
		{"weakness", string(row.Weakness)},
	} {
		if rec, err = rec.Set(f.key, f.value); err != nil {
			return rec, err
		}
	}
	return rec, nil
}
