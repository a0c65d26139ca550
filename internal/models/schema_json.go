package models

import (
	"bytes"
	"fmt"
)

// MarshalJSON renders the summary as
//
//	{"file_count": N, "schema": {field: {type, count, nullable, sample_values}}}
//
// with schema keys in first-seen field order.
func (s *SchemaSummary) MarshalJSON() ([]byte, error) {
	schema, err := s.MarshalSchemaJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `{"file_count":%d,"schema":`, s.FileCount)
	buf.Write(schema)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalSchemaJSON renders just the ordered schema object, for callers
// that wrap the summary in a larger response payload.
func (s *SchemaSummary) MarshalSchemaJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range s.Order {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := EncodeJSON(name)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := EncodeJSON(s.Columns[name])
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
