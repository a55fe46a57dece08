// Package canon produces deterministic JSON for action field maps.
//
// Output properties:
//   - Object keys sorted by UTF-16 code units (RFC 8785 ordering)
//   - Strings NFC normalized at the serialization boundary
//   - No HTML escaping (<, >, & stay literal)
//   - U+2028 and U+2029 stay literal
//
// Unlike a hashing-grade canonical form, action payloads are arbitrary
// caller values, so floats and nulls are admitted and numbers render the
// way encoding/json renders them.
//
// The journal stores entries in this form so equal actions always persist
// as byte-equal rows, and golden tests compare traces against it.
package canon

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// Marshal serializes v deterministically. Supported inputs are the JSON
// value kinds: nil, bool, string, integers, floats, json.Number, []any,
// and map[string]any. Anything else (structs, channels, custom types) is
// first round-tripped through encoding/json.
func Marshal(v any) ([]byte, error) {
	return marshal(v)
}

// MarshalTagged serializes a tag plus field map as a two-key object,
// {"fields":{...},"tag":"..."}, the persisted form of an action.
func MarshalTagged(tag string, fields map[string]any) ([]byte, error) {
	if fields == nil {
		fields = map[string]any{}
	}
	return marshal(map[string]any{"tag": tag, "fields": fields})
}

func marshal(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return []byte("null"), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case string:
		return marshalString(val)
	case int:
		return json.Marshal(val)
	case int32:
		return json.Marshal(val)
	case int64:
		return json.Marshal(val)
	case uint:
		return json.Marshal(val)
	case uint64:
		return json.Marshal(val)
	case float32:
		return json.Marshal(val)
	case float64:
		return json.Marshal(val)
	case json.Number:
		return []byte(val.String()), nil
	case []any:
		return marshalArray(val)
	case map[string]any:
		return marshalObject(val)
	default:
		return marshalForeign(v)
	}
}

// marshalForeign handles values outside the JSON kinds by round-tripping
// them through encoding/json, then re-canonicalizing.
func marshalForeign(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("canon: unsupported value %T: %w", v, err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var plain any
	if err := dec.Decode(&plain); err != nil {
		return nil, fmt.Errorf("canon: reparse %T: %w", v, err)
	}
	return marshal(plain)
}

func marshalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := marshal(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := marshalString(k)
		if err != nil {
			return nil, fmt.Errorf("object key %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := marshal(obj[k])
		if err != nil {
			return nil, fmt.Errorf("object[%q]: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// marshalString encodes s NFC-normalized, without HTML escaping, and with
// U+2028/U+2029 kept literal. Go's encoder escapes the latter two for
// JavaScript embedding; RFC 8785 ordering semantics want them literal, and
// nothing here is embedded in script tags.
func marshalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	out := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return unescapeLineSeparators(out), nil
}

// unescapeLineSeparators rewrites \u2028 and \u2029 escape sequences back
// to their literal characters. A sequence preceded by an odd number of
// backslashes is a literal backslash followed by the text "u2028" and must
// stay escaped.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		if isLineSeparatorEscape(data, i) && precedingBackslashes(out)%2 == 0 {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 6
			continue
		}
		out = append(out, data[i])
		i++
	}
	return out
}

func isLineSeparatorEscape(data []byte, i int) bool {
	return i+6 <= len(data) &&
		data[i] == '\\' && data[i+1] == 'u' &&
		data[i+2] == '2' && data[i+3] == '0' && data[i+4] == '2' &&
		(data[i+5] == '8' || data[i+5] == '9')
}

func precedingBackslashes(out []byte) int {
	n := 0
	for j := len(out) - 1; j >= 0 && out[j] == '\\'; j-- {
		n++
	}
	return n
}

// compareUTF16 orders strings by UTF-16 code units as RFC 8785 requires.
// Go's native string comparison is UTF-8 byte order, which differs for
// characters outside the BMP.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))

	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}

	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	default:
		return 0
	}
}
