package fixture

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/dbsmedya/erpfixture/internal/types"
)

// Fields is an insertion-ordered mapping of field name to value.
// Values are expected to be JSON scalars: string, int64, float64, bool or nil.
type Fields struct {
	m *orderedmap.OrderedMap[string, interface{}]
}

// NewFields returns an empty field mapping.
func NewFields() *Fields {
	return &Fields{m: orderedmap.NewOrderedMap[string, interface{}]()}
}

// Set stores value under key and returns f so calls can be chained.
// Setting an existing key replaces its value but keeps its position.
func (f *Fields) Set(key string, value interface{}) *Fields {
	if f.m == nil {
		f.m = orderedmap.NewOrderedMap[string, interface{}]()
	}
	f.m.Set(key, value)
	return f
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (interface{}, bool) {
	if f == nil || f.m == nil {
		return nil, false
	}
	return f.m.Get(key)
}

// Int64 returns the value under key as an int64. It reports false when the key
// is missing or does not hold an integral number.
func (f *Fields) Int64(key string) (int64, bool) {
	v, ok := f.Get(key)
	if !ok {
		return 0, false
	}
	return types.AsInt64(v)
}

// Keys returns the field names in insertion order.
func (f *Fields) Keys() []string {
	if f == nil || f.m == nil {
		return nil
	}
	return f.m.Keys()
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	if f == nil || f.m == nil {
		return 0
	}
	return f.m.Len()
}

// MarshalJSON writes the fields as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := encodeJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')

		v, _ := f.Get(k)
		val, err := encodeJSON(v)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, keeping key order. Integral numbers are
// decoded as int64.
func (f *Fields) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("fields: expected JSON object, got %v", tok)
	}

	m := orderedmap.NewOrderedMap[string, interface{}]()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("fields: expected object key, got %v", tok)
		}

		var v interface{}
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		m.Set(key, types.NormalizeJSON(v))
	}

	if _, err := dec.Token(); err != nil {
		return err
	}

	f.m = m
	return nil
}

// encodeJSON marshals v without HTML escaping and without the trailing newline
// json.Encoder appends.
func encodeJSON(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
