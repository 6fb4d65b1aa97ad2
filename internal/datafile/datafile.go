// Package datafile reads and writes the enemy table: a single UTF-8 JSON file
// holding a top-level array of enemy objects.
package datafile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tidwall/gjson"

	"github.com/JustinWhittecar/proverb-rebalance/internal/enemy"
)

const DefaultBackupSuffix = "_backup"

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrNotArray    = errors.New("top-level JSON value is not an array")
	ErrBackupPath  = errors.New("backup path is the source path")
)

// BackupPath inserts suffix before the extension: enemies.json -> enemies_backup.json.
func BackupPath(path, suffix string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + suffix + ext
}

// Backup copies src byte-for-byte to its backup path and carries over the
// file mode and modification time. It returns the backup path.
func Backup(src, suffix string) (string, error) {
	dst := BackupPath(src, suffix)
	if filepath.Clean(dst) == filepath.Clean(src) {
		return "", fmt.Errorf("backup %s: %w", src, ErrBackupPath)
	}

	info, err := os.Stat(src)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", src, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", src, err)
	}

	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return "", fmt.Errorf("write backup %s: %w", dst, err)
	}
	if err := os.Chtimes(dst, info.ModTime(), info.ModTime()); err != nil {
		return "", fmt.Errorf("set backup times %s: %w", dst, err)
	}
	return dst, nil
}

// Load reads path and splits its top-level array into records.
func Load(path string) ([]enemy.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	records, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return records, nil
}

// Decode splits a JSON array into raw element records.
func Decode(data []byte) ([]enemy.Record, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, ErrNotArray
	}

	var records []enemy.Record
	root.ForEach(func(_, v gjson.Result) bool {
		records = append(records, enemy.NewRecord([]byte(v.Raw)))
		return true
	})
	return records, nil
}

// Encode renders records as a JSON array indented by two spaces. Non-ASCII
// text is written literally, including text the input held as \uXXXX escapes.
func Encode(records []enemy.Record) ([]byte, error) {
	var compact bytes.Buffer
	compact.WriteByte('[')
	for i, r := range records {
		if i > 0 {
			compact.WriteByte(',')
		}
		compact.Write(r.Raw())
	}
	compact.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	return unescapeNonASCII(out.Bytes()), nil
}

// unescapeNonASCII rewrites \uXXXX escapes inside strings that decode to a
// non-ASCII code point (surrogate pairs included) as UTF-8. ASCII escapes and
// lone surrogates are kept. src must be valid JSON.
func unescapeNonASCII(src []byte) []byte {
	if !bytes.Contains(src, []byte(`\u`)) {
		return src
	}
	out := make([]byte, 0, len(src))
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if !inString {
			if c == '"' {
				inString = true
			}
			out = append(out, c)
			continue
		}
		switch c {
		case '"':
			inString = false
			out = append(out, c)
		case '\\':
			if src[i+1] != 'u' {
				out = append(out, c, src[i+1])
				i++
				continue
			}
			r, n := decodeEscape(src[i:])
			if n == 0 {
				out = append(out, src[i:i+6]...)
				i += 5
				continue
			}
			out = utf8.AppendRune(out, r)
			i += n - 1
		default:
			out = append(out, c)
		}
	}
	return out
}

// decodeEscape decodes the \uXXXX escape (or surrogate pair) at the start of
// b. It returns n == 0 when the escape must be kept as written.
func decodeEscape(b []byte) (rune, int) {
	r1, ok := hex4(b)
	if !ok {
		return 0, 0
	}
	switch {
	case r1 < utf8.RuneSelf:
		return 0, 0
	case utf16.IsSurrogate(r1):
		if r1 >= 0xDC00 || len(b) < 12 || b[6] != '\\' || b[7] != 'u' {
			return 0, 0
		}
		r2, ok := hex4(b[6:])
		if !ok {
			return 0, 0
		}
		r := utf16.DecodeRune(r1, r2)
		if r == utf8.RuneError {
			return 0, 0
		}
		return r, 12
	default:
		return r1, 6
	}
}

func hex4(b []byte) (rune, bool) {
	if len(b) < 6 || b[0] != '\\' || b[1] != 'u' {
		return 0, false
	}
	v, err := strconv.ParseUint(string(b[2:6]), 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

// Save encodes the whole table before touching path, then overwrites it.
func Save(path string, records []enemy.Record) error {
	data, err := Encode(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
