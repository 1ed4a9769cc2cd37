package segmenter

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// object is a decoded JSON object that remembers key order. Go maps do not,
// and several extraction rules depend on which key comes first.
type object struct {
	keys    []string
	values  map[string]any
	ordered []string
}

func newObject() *object {
	return &object{values: make(map[string]any)}
}

// set keeps the position of the first occurrence and the value of the last one.
func (o *object) set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
		o.ordered = nil
	}
	o.values[key] = value
}

func (o *object) get(key string) (any, bool) {
	v, ok := o.values[key]
	return v, ok
}

func (o *object) has(key string) bool {
	_, ok := o.values[key]
	return ok
}

type indexedKey struct {
	key   string
	index uint64
}

// orderedKeys enumerates keys the way the editor's JavaScript did:
// array-index keys ascending, then the remaining keys in source order.
// The result is cached until a new key is added; callers must not modify it.
func (o *object) orderedKeys() []string {
	if o.ordered != nil || len(o.keys) == 0 {
		return o.ordered
	}
	var indexKeys []indexedKey
	var others []string
	for _, k := range o.keys {
		if n, ok := arrayIndex(k); ok {
			indexKeys = append(indexKeys, indexedKey{key: k, index: n})
			continue
		}
		others = append(others, k)
	}
	slices.SortStableFunc(indexKeys, func(a, b indexedKey) int {
		return cmp.Compare(a.index, b.index)
	})

	ordered := make([]string, 0, len(o.keys))
	for _, k := range indexKeys {
		ordered = append(ordered, k.key)
	}
	o.ordered = append(ordered, others...)
	return o.ordered
}

func (o *object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range o.orderedKeys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := encodeJSON(o.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// arrayIndex reports whether k is a canonical array index ("0", "17", never "017").
func arrayIndex(k string) (uint64, bool) {
	if k == "" || (len(k) > 1 && k[0] == '0') {
		return 0, false
	}
	n, err := strconv.ParseUint(k, 10, 32)
	if err != nil || n == 1<<32-1 {
		return 0, false
	}
	return n, true
}

// isNumericKey accepts any key that converts to a number, e.g. "2", "1.5", " 3 ", "1e3".
func isNumericKey(k string) bool {
	trimmed := strings.TrimSpace(k)
	if trimmed == "" || strings.Contains(trimmed, "_") {
		return false
	}
	switch trimmed {
	case "Infinity", "+Infinity", "-Infinity":
		return true
	}
	lower := strings.ToLower(trimmed)
	if strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return false
	}
	for prefix, base := range map[string]int{"0x": 16, "0o": 8, "0b": 2} {
		if strings.HasPrefix(lower, prefix) {
			_, err := strconv.ParseUint(lower[2:], base, 64)
			return err == nil || errors.Is(err, strconv.ErrRange)
		}
	}
	_, err := strconv.ParseFloat(trimmed, 64)
	return err == nil || errors.Is(err, strconv.ErrRange)
}

// parseTree decodes a JSON document into *object, []any, string, json.Number, bool or nil.
func parseTree(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	root, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err = dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected data after top-level value")
	}
	return root, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}

	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := newObject()
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected object key %v", keyTok)
			}
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.set(key, val)
		}
		if _, err = dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := make([]any, 0)
		for dec.More() {
			val, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, val)
		}
		if _, err = dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

// stringify never rejects a value: scalars keep their JSON text, containers become compact JSON.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	case nil:
		return "null"
	default:
		b, err := encodeJSON(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}

// encodeJSON is json.Marshal without HTML escaping, so "<" stays "<" as in the model's text.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
