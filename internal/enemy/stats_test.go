package enemy

import "testing"

func TestNumber(t *testing.T) {
	r := DefaultRules()
	tests := []struct {
		id   string
		want int
		ok   bool
	}{
		{"PRV-E1", 1, true},
		{"PRV-E400", 400, true},
		{"PRV-E007", 7, true},
		{"PRV-E0", 0, false},
		{"PRV-E401", 0, false},
		{"PRV-E", 0, false},
		{"PRV-E12a", 0, false},
		{"PRV-E+5", 0, false},
		{"PRV-E 5", 0, false},
		{"PRV-E99999999999999999999", 0, false},
		{"XYZ-E1", 0, false},
		{"prv-e1", 0, false},
	}
	for _, tt := range tests {
		got, ok := r.Number(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Number(%q) = %d, %v, want %d, %v", tt.id, got, ok, tt.want, tt.ok)
		}
	}
}

func TestComputeStats(t *testing.T) {
	tests := []struct {
		n, grade int
		want     Stats
	}{
		{1, 7, Stats{Level: 21, MaxHP: 355, Atk: 52, Exp: 807}},
		{2, 7, Stats{Level: 22, MaxHP: 360, Atk: 54, Exp: 840}},
		{10, 7, Stats{Level: 20, MaxHP: 350, Atk: 54, Exp: 775}},
		{5, 9, Stats{Level: 24, MaxHP: 435, Atk: 70, Exp: 937}},
		{3, 1, Stats{Level: 11, MaxHP: 185, Atk: 26, Exp: 422}},
		{400, 7, Stats{Level: 20, MaxHP: 350, Atk: 50, Exp: 775}},
	}
	for _, tt := range tests {
		got := ComputeStats(tt.n, tt.grade)
		if got != tt.want {
			t.Errorf("ComputeStats(%d,%d) = %+v, want %+v", tt.n, tt.grade, got, tt.want)
		}
	}
}

func TestExpTruncatesTowardZero(t *testing.T) {
	tests := []struct {
		level, maxHP int
		want         int
	}{
		{20, 350, 775},
		{21, 355, 807}, // 807.5
		{1, -5, 27},    // 27.5
		{0, -5, -2},    // -2.5
		{-1, -1, -30},  // -30.5
	}
	for _, tt := range tests {
		if got := Exp(tt.level, tt.maxHP); got != tt.want {
			t.Errorf("Exp(%d,%d) = %d, want %d", tt.level, tt.maxHP, got, tt.want)
		}
	}
}

func TestExpInvariant(t *testing.T) {
	for grade := 1; grade <= 10; grade++ {
		for n := 1; n <= 400; n++ {
			s := ComputeStats(n, grade)
			want := int(float64(s.Level)*30 + float64(s.MaxHP)*0.5)
			if s.Exp != want {
				t.Fatalf("n=%d grade=%d: exp %d, want %d", n, grade, s.Exp, want)
			}
		}
	}
}

func TestInScope(t *testing.T) {
	r := DefaultRules()
	for raw, want := range map[string]bool{
		`{"id":"PRV-E1"}`:   true,
		`{"id":"PRV-E401"}`: false,
		`{"id":"XYZ-E1"}`:   false,
		`{"id":1}`:          false,
		`{}`:                false,
	} {
		if got := r.InScope(NewRecord([]byte(raw))); got != want {
			t.Errorf("InScope(%s) = %v, want %v", raw, got, want)
		}
	}
}
