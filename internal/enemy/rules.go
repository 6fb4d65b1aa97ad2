// Package enemy holds the pure rebalance logic for the proverb enemy table:
// id eligibility, stat formulas, stage-position weakness assignment and the
// record transform that applies them.
package enemy

import (
	"strconv"
	"strings"
)

const (
	DefaultPrefix    = "PRV-E"
	DefaultMinNumber = 1
	DefaultMaxNumber = 400
	DefaultGrade     = 7
)

// Rules selects which records are rebalanced and how absent grades are read.
type Rules struct {
	Prefix       string
	MinNumber    int
	MaxNumber    int
	DefaultGrade int
}

func DefaultRules() Rules {
	return Rules{
		Prefix:       DefaultPrefix,
		MinNumber:    DefaultMinNumber,
		MaxNumber:    DefaultMaxNumber,
		DefaultGrade: DefaultGrade,
	}
}

// Number returns the numeric suffix of id when id is <prefix><digits> and the
// suffix lies in [MinNumber, MaxNumber].
func (r Rules) Number(id string) (int, bool) {
	digits, ok := strings.CutPrefix(id, r.Prefix)
	if !ok || digits == "" {
		return 0, false
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	if n < r.MinNumber || n > r.MaxNumber {
		return 0, false
	}
	return n, true
}

// InScope reports whether the record is rebalanced under r.
func (r Rules) InScope(rec Record) bool {
	id, ok := rec.ID()
	if !ok {
		return false
	}
	_, ok = r.Number(id)
	return ok
}
