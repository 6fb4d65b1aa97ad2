package enemy

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

// MonsterNames indexes proverb monster names by proverb id. Entries with an
// empty or zero id, or without a monster name, are skipped.
func MonsterNames(proverbs []Record) map[string]string {
	names := make(map[string]string)
	for _, p := range proverbs {
		key, ok := proverbKey(p.get("id"))
		if !ok {
			continue
		}
		name := p.get("monsterName")
		if name.Type != gjson.String || name.Str == "" {
			continue
		}
		names[key] = name.Str
	}
	return names
}

func proverbKey(v gjson.Result) (string, bool) {
	switch v.Type {
	case gjson.Number:
		if v.Float() == 0 {
			return "", false
		}
		return strconv.FormatFloat(v.Float(), 'f', -1, 64), true
	case gjson.String:
		if v.Str == "" {
			return "", false
		}
		return v.Str, true
	default:
		return "", false
	}
}

// leadingInt parses an optional sign and the leading decimal digits of s,
// ignoring anything after them.
func leadingInt(s string) (int, bool) {
	s = strings.TrimLeft(s, " \t\n\r")
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	start := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == start {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// ApplyMonsterNames renames every prefixed enemy whose number has a proverb
// monster name different from its current name. It returns the new slice and
// the number of renamed enemies. The id range of r is not applied here.
func (r Rules) ApplyMonsterNames(enemies []Record, names map[string]string) ([]Record, int, error) {
	out := make([]Record, len(enemies))
	copy(out, enemies)

	renamed := 0
	for i, rec := range enemies {
		id, ok := rec.ID()
		if !ok || !strings.HasPrefix(id, r.Prefix) {
			continue
		}
		n, ok := leadingInt(id[len(r.Prefix):])
		if !ok {
			continue
		}
		name, ok := names[strconv.Itoa(n)]
		if !ok {
			continue
		}
		if current, ok := rec.Name(); ok && current == name {
			continue
		}
		next, err := rec.Set("name", name)
		if err != nil {
			return nil, 0, fmt.Errorf("enemy %s: %w", id, err)
		}
		out[i] = next
		renamed++
	}
	return out, renamed, nil
}
