package enemy

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Record is one raw JSON object from the enemy array. Fields that are not
// rewritten keep their original bytes and key order.
type Record struct {
	raw []byte
}

func NewRecord(raw []byte) Record {
	return Record{raw: raw}
}

func (r Record) Raw() []byte {
	return r.raw
}

func (r Record) get(key string) gjson.Result {
	return gjson.GetBytes(r.raw, key)
}

// ID returns the record id when it is a JSON string.
func (r Record) ID() (string, bool) {
	v := r.get("id")
	if v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// StageID returns the stage id as stored in snapshots: the string value, ""
// when absent or null, or the JSON text of any other value.
func (r Record) StageID() string {
	v := r.get("stageId")
	switch {
	case v.Type == gjson.String:
		return v.Str
	case !v.Exists(), v.Type == gjson.Null:
		return ""
	default:
		return v.Raw
	}
}

// StageKey returns the key enemies are grouped by. An absent stage id groups
// with the empty string; null, numbers and other values each keep their own
// group, apart from any string of the same text.
func (r Record) StageKey() string {
	v := r.get("stageId")
	switch {
	case v.Type == gjson.String:
		return "s:" + v.Str
	case !v.Exists():
		return "s:"
	default:
		return v.Type.String() + ":" + v.Raw
	}
}

// Grade returns the numeric grade, or def when absent or not a number.
func (r Record) Grade(def int) int {
	v := r.get("grade")
	if v.Type != gjson.Number {
		return def
	}
	return int(v.Int())
}

// Name returns the display name when it is a JSON string.
func (r Record) Name() (string, bool) {
	v := r.get("name")
	if v.Type != gjson.String {
		return "", false
	}
	return v.Str, true
}

// Set returns a copy of r with key overwritten, or appended when absent.
func (r Record) Set(key string, value any) (Record, error) {
	val, err := encodeValue(value)
	if err != nil {
		return r, fmt.Errorf("encode %s: %w", key, err)
	}
	raw, err := sjson.SetRawBytes(append([]byte(nil), r.raw...), key, val)
	if err != nil {
		return r, fmt.Errorf("set %s: %w", key, err)
	}
	return Record{raw: raw}, nil
}

// encodeValue marshals without HTML escaping so kana and kanji names are
// written literally.
func encodeValue(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
