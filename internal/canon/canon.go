// Package canon reduces decoded frontmatter values to their canonical
// relational form: a type tag plus a string cell.
package canon

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/starford/ansuz/internal/models"
)

// Canonicalize maps one decoded value to a CanonicalValue. It is a pure
// function of its input: scalars keep their literal text, sequences and
// mappings become JSON text held in a single string cell.
func Canonicalize(v any) models.CanonicalValue {
	switch val := v.(type) {
	case nil:
		return models.CanonicalValue{Type: models.TypeNull}
	case bool:
		return models.CanonicalValue{Type: models.TypeBoolean, Text: strconv.FormatBool(val)}
	case json.Number:
		return models.CanonicalValue{Type: models.TypeNumber, Text: val.String()}
	case string:
		return models.CanonicalValue{Type: models.TypeString, Text: val}
	case []any:
		return models.CanonicalValue{Type: models.TypeArray, Text: encode(val)}
	case *models.Fields:
		return models.CanonicalValue{Type: models.TypeObject, Text: encode(val)}
	default:
		return models.CanonicalValue{Type: models.TypeString, Text: fmt.Sprintf("%v", val)}
	}
}

// Record canonicalizes every field of a raw record, preserving the file's
// own field order.
func Record(raw models.RawRecord) models.FileRecord {
	rec := models.FileRecord{
		Path:   raw.Path,
		Fields: make(map[string]models.CanonicalValue, raw.Fields.Len()),
		Order:  raw.Fields.Keys(),
	}
	for _, key := range raw.Fields.Keys() {
		v, _ := raw.Fields.Get(key)
		rec.Fields[key] = Canonicalize(v)
	}
	return rec
}

func encode(v any) string {
	out, err := models.EncodeJSON(v)
	if err != nil {
		// The value trees produced by the parser cannot fail to encode;
		// fall back to Go syntax rather than dropping the cell.
		return fmt.Sprintf("%v", v)
	}
	return string(out)
}
