// Package jslit encodes Go values as JavaScript object literals in the style
// of hand-written Astro configuration: single-quoted strings, unquoted keys
// where possible, trailing commas on multi-line collections.
package jslit

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// Raw is emitted verbatim, for expressions such as function calls.
type Raw string

// Encoder formats values. Prefix is prepended to every line after the
// first; Indent is added per nesting level.
type Encoder struct {
	Prefix string
	Indent string
}

// Encode uses two-space indentation and no prefix.
func Encode(v any) (string, error) {
	return Encoder{Indent: "  "}.Encode(v)
}

// Encode returns the literal for v.
func (e Encoder) Encode(v any) (string, error) {
	var b strings.Builder
	if err := e.write(&b, reflect.ValueOf(v), 0); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e Encoder) newline(b *strings.Builder, depth int) {
	b.WriteByte('\n')
	b.WriteString(e.Prefix)
	b.WriteString(strings.Repeat(e.Indent, depth))
}

func (e Encoder) write(b *strings.Builder, v reflect.Value, depth int) error {
	if !v.IsValid() {
		b.WriteString("null")
		return nil
	}
	switch x := v.Interface().(type) {
	case Raw:
		b.WriteString(string(x))
		return nil
	case json.Number:
		b.WriteString(x.String())
		return nil
	}

	switch v.Kind() {
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			b.WriteString("null")
			return nil
		}
		return e.write(b, v.Elem(), depth)
	case reflect.Bool:
		b.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.String:
		b.WriteString(Quote(v.String()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		b.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return fmt.Errorf("jslit: unsupported number %v", f)
		}
		b.WriteString(strconv.FormatFloat(f, 'g', -1, 64))
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() || v.Len() == 0 {
			b.WriteString("[]")
			return nil
		}
		b.WriteByte('[')
		for i := range v.Len() {
			e.newline(b, depth+1)
			if err := e.write(b, v.Index(i), depth+1); err != nil {
				return err
			}
			b.WriteByte(',')
		}
		e.newline(b, depth)
		b.WriteByte(']')
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return fmt.Errorf("jslit: map key type %s is not a string", v.Type().Key())
		}
		return e.writeObject(b, v, depth)
	default:
		return fmt.Errorf("jslit: unsupported type %s", v.Type())
	}
	return nil
}

// writeObject emits map entries in sorted key order.
func (e Encoder) writeObject(b *strings.Builder, v reflect.Value, depth int) error {
	if v.IsNil() || v.Len() == 0 {
		b.WriteString("{}")
		return nil
	}
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	slices.Sort(keys)
	b.WriteByte('{')
	for _, k := range keys {
		e.newline(b, depth+1)
		b.WriteString(Key(k))
		b.WriteString(": ")
		if err := e.write(b, v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key())), depth+1); err != nil {
			return err
		}
		b.WriteByte(',')
	}
	e.newline(b, depth)
	b.WriteByte('}')
	return nil
}

// Object is an ordered list of entries, for objects whose key order matters.
type Object []Entry

// Entry is one key of an Object.
type Entry struct {
	Key   string
	Value any
}

// EncodeObject emits entries in the given order.
func (e Encoder) EncodeObject(o Object) (string, error) {
	var b strings.Builder
	if len(o) == 0 {
		return "{}", nil
	}
	b.WriteByte('{')
	for _, en := range o {
		e.newline(&b, 1)
		b.WriteString(Key(en.Key))
		b.WriteString(": ")
		if err := e.write(&b, reflect.ValueOf(en.Value), 1); err != nil {
			return "", err
		}
		b.WriteByte(',')
	}
	e.newline(&b, 0)
	b.WriteByte('}')
	return b.String(), nil
}

// Quote returns s as a single-quoted JavaScript string.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('\'')
	for _, r := range s {
		switch r {
		case '\'':
			b.WriteString(`\'`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&b, `\u%04x`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&b, `\x%02x`, r)
				continue
			}
			b.WriteRune(r)
		}
	}
	b.WriteByte('\'')
	return b.String()
}

// Key returns k unquoted when it is a plain identifier.
func Key(k string) string {
	if Identifier(k) {
		return k
	}
	return Quote(k)
}

// Identifier reports whether s is a valid ASCII JavaScript identifier.
func Identifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || r == '$', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case i > 0 && r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
