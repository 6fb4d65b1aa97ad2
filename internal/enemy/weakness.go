package enemy

import "github.com/JustinWhittecar/proverb-rebalance/internal/models"

// StageGroups maps a stage key to the in-scope enemy ids of that stage in file
// order. It is built from the unmodified records before any field is rewritten.
type StageGroups struct {
	size  map[string]int
	first map[string]map[string]int
}

// GroupByStage scans records once and collects in-scope ids per stage.
func (r Rules) GroupByStage(records []Record) StageGroups {
	g := StageGroups{
		size:  make(map[string]int),
		first: make(map[string]map[string]int),
	}
	for _, rec := range records {
		id, ok := rec.ID()
		if !ok {
			continue
		}
		if _, ok := r.Number(id); !ok {
			continue
		}
		g.add(rec.StageKey(), id)
	}
	return g
}

func (g StageGroups) add(stage, id string) {
	pos := g.size[stage]
	g.size[stage]++
	if g.first[stage] == nil {
		g.first[stage] = make(map[string]int)
	}
	// Duplicate ids keep the position of their first appearance.
	if _, seen := g.first[stage][id]; !seen {
		g.first[stage][id] = pos
	}
}

// Position returns the zero-based index of id within its stage.
func (g StageGroups) Position(stage, id string) (int, bool) {
	ids, ok := g.first[stage]
	if !ok {
		return 0, false
	}
	pos, ok := ids[id]
	return pos, ok
}

// WeaknessAt cycles onyomi, kunyomi, meaning by position.
func WeaknessAt(pos int) models.Weakness {
	return models.Weaknesses[pos%len(models.Weaknesses)]
}

// Weakness returns the stage-position weakness of id, and false when the id
// was not grouped.
func (g StageGroups) Weakness(stage, id string) (models.Weakness, bool) {
	pos, ok := g.Position(stage, id)
	if !ok {
		return "", false
	}
	return WeaknessAt(pos), true
}
