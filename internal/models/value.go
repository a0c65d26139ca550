// Package models defines the domain types for Ansuz.
package models

import (
	"bytes"
)

// TypeTag classifies a frontmatter value for schema reporting.
type TypeTag string

// Known type tags.
const (
	TypeString  TypeTag = "string"
	TypeNumber  TypeTag = "number"
	TypeBoolean TypeTag = "boolean"
	TypeArray   TypeTag = "array"
	TypeObject  TypeTag = "object"
	TypeNull    TypeTag = "null"
)

// CanonicalValue is a frontmatter value reduced to the pair used at the
// relational boundary: a type tag (kept for schema reporting) and a string
// form (the table cell). Text is meaningless when Type is TypeNull.
type CanonicalValue struct {
	Type TypeTag
	Text string
}

// IsNull reports whether the value maps to SQL NULL.
func (v CanonicalValue) IsNull() bool {
	return v.Type == TypeNull
}

// Fields is an ordered field map: a YAML mapping with insertion order
// preserved. Values are nil, bool, string, json.Number, []any, or *Fields.
type Fields struct {
	keys []string
	vals map[string]any
}

// NewFields returns an empty ordered field map.
func NewFields() *Fields {
	return &Fields{vals: make(map[string]any)}
}

// Set stores a value under key, appending to the key order on first insert.
func (f *Fields) Set(key string, value any) {
	if _, ok := f.vals[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.vals[key] = value
}

// Get returns the value stored under key.
func (f *Fields) Get(key string) (any, bool) {
	v, ok := f.vals[key]
	return v, ok
}

// Keys returns the field names in insertion order. The returned slice is
// owned by the map and must not be mutated.
func (f *Fields) Keys() []string {
	return f.keys
}

// Len returns the number of fields.
func (f *Fields) Len() int {
	return len(f.keys)
}

// MarshalJSON encodes the mapping as a JSON object in insertion order.
func (f *Fields) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range f.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := EncodeJSON(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := EncodeJSON(f.vals[k])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
