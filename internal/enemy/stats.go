package enemy

// Stats are the numeric fields derived from an enemy's number and grade.
type Stats struct {
	Level int
	MaxHP int
	Atk   int
	Exp   int
}

// ComputeStats applies the grade-7 baseline formulas. Grade shifts the base of
// every stat; the enemy number adds a small periodic variation on top.
func ComputeStats(n, grade int) Stats {
	delta := grade - 7

	baseLevel := 20 + delta*2
	level := baseLevel + n%5

	baseHP := 350 + delta*30
	maxHP := baseHP + (n%10)*5

	baseAtk := 50 + delta*5
	atk := baseAtk + (n%8)*2

	return Stats{
		Level: level,
		MaxHP: maxHP,
		Atk:   atk,
		Exp:   Exp(level, maxHP),
	}
}

// Exp is level*30 + maxHP*0.5 truncated toward zero.
func Exp(level, maxHP int) int {
	return int(float64(level*30) + float64(maxHP)*0.5)
}
