package config

import (
	"encoding/json"
	"math"
	"os"
	"strings"
)

// ExpandEnv replaces ${NAME} references in s with the value of the
// environment variable NAME. "$${" yields a literal "${"; every other "$"
// is kept as written.
func ExpandEnv(s string) string { return expand(s, os.Getenv) }

// EscapeLiteral protects every "${" in s from expansion.
func EscapeLiteral(s string) string { return strings.ReplaceAll(s, "${", "$${") }

func expand(s string, mapping func(string) string) string {
	if !strings.Contains(s, "${") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		rest := s[i:]
		if strings.HasPrefix(rest, "$${") {
			b.WriteString("${")
			i += 3
			continue
		}
		if strings.HasPrefix(rest, "${") {
			if end := strings.IndexByte(rest, '}'); end > 2 && envName(rest[2:end]) {
				b.WriteString(mapping(rest[2:end]))
				i += end + 1
				continue
			}
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String()
}

func envName(s string) bool {
	for i, r := range s {
		switch {
		case r == '_', r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return s != ""
}

// plainNumbers turns json.Number values into int when they are whole and
// fit, float64 otherwise, matching what the YAML decoder produces.
func plainNumbers(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil && n >= math.MinInt && n <= math.MaxInt {
			return int(n)
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, e := range t {
			t[k] = plainNumbers(e)
		}
		return t
	case []any:
		for i, e := range t {
			t[i] = plainNumbers(e)
		}
		return t
	}
	return v
}
