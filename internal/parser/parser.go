// Package parser extracts the YAML frontmatter block from Markdown content
// and decodes it into an ordered field map with original scalar literals
// preserved.
package parser

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/ansuz/internal/models"
)

func jsonNumber(s string) json.Number { return json.Number(s) }

// Result holds the output of parsing a file's frontmatter.
type Result struct {
	// Fields is never nil; files without a frontmatter block yield an
	// empty map.
	Fields *models.Fields
	// Degraded is set when the block failed structured parsing and its
	// fields were salvaged as opaque strings.
	Degraded bool
}

// Parse extracts and decodes the frontmatter block from raw file bytes.
// It never fails: absent or unterminated blocks yield zero fields, and
// blocks that are not valid YAML degrade to string-valued fields.
func Parse(data []byte) *Result {
	block, ok := splitBlock(data)
	if !ok {
		return &Result{Fields: models.NewFields()}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(block, &doc); err != nil {
		return &Result{Fields: salvage(block), Degraded: true}
	}
	root := documentRoot(&doc)
	if root == nil || root.Kind != yaml.MappingNode {
		// Frontmatter that is not a mapping (a lone scalar or list)
		// carries no addressable fields.
		return &Result{Fields: models.NewFields()}
	}
	return &Result{Fields: decodeMapping(root)}
}

// splitBlock isolates the frontmatter block between leading --- delimiters.
// The opening delimiter must be the first line; the closing delimiter must
// sit on its own line. Returns ok=false when either is missing.
func splitBlock(data []byte) ([]byte, bool) {
	const delim = "---"
	trimmed := bytes.TrimLeft(data, "\n\r")
	if !bytes.HasPrefix(trimmed, []byte(delim)) {
		return nil, false
	}
	rest := trimmed[len(delim):]
	if nl := bytes.IndexByte(rest, '\n'); nl < 0 {
		return nil, false
	} else {
		rest = rest[nl+1:]
	}

	// Scan for a line that is exactly the closing delimiter.
	offset := 0
	for offset <= len(rest) {
		end := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		if end < 0 {
			line = rest[offset:]
			end = len(rest) - offset
		} else {
			line = rest[offset : offset+end]
		}
		if string(bytes.TrimRight(line, "\r")) == delim {
			return rest[:offset], true
		}
		offset += end + 1
	}
	return nil, false
}

func documentRoot(doc *yaml.Node) *yaml.Node {
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		return doc.Content[0]
	}
	return nil
}

// decodeMapping converts a YAML mapping node into an ordered field map.
func decodeMapping(n *yaml.Node) *models.Fields {
	out := models.NewFields()
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		out.Set(key, decodeNode(n.Content[i+1]))
	}
	return out
}

// decodeNode converts a YAML node into nil, bool, json.Number, string,
// []any, or *models.Fields. Scalar literals are kept verbatim where the
// literal is already a faithful representation (strings, timestamps, and
// JSON-compatible numbers).
func decodeNode(n *yaml.Node) any {
	switch n.Kind {
	case yaml.ScalarNode:
		return decodeScalar(n)
	case yaml.SequenceNode:
		items := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			items = append(items, decodeNode(c))
		}
		return items
	case yaml.MappingNode:
		return decodeMapping(n)
	case yaml.AliasNode:
		if n.Alias != nil {
			return decodeNode(n.Alias)
		}
	}
	return nil
}

func decodeScalar(n *yaml.Node) any {
	switch n.Tag {
	case "!!null":
		return nil
	case "!!bool":
		b, err := strconv.ParseBool(strings.ToLower(n.Value))
		if err != nil {
			return n.Value
		}
		return b
	case "!!int", "!!float":
		return decodeNumber(n.Value)
	case "!!timestamp":
		// Dates stay strings at the relational boundary; the literal
		// form (e.g. 2025-11-01) is what callers filter against.
		return n.Value
	default:
		return n.Value
	}
}

var jsonNumberRe = regexp.MustCompile(`^-?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)?$`)

// decodeNumber returns a json.Number carrying the original literal when it
// is already valid JSON, otherwise a minimal round-trip-safe re-encoding.
// YAML-only forms that cannot be re-encoded (.inf, .nan) degrade to strings.
func decodeNumber(raw string) any {
	if jsonNumberRe.MatchString(raw) {
		return jsonNumber(raw)
	}
	cleaned := strings.ReplaceAll(raw, "_", "")
	if i, err := strconv.ParseInt(cleaned, 0, 64); err == nil {
		return jsonNumber(strconv.FormatInt(i, 10))
	}
	if f, err := strconv.ParseFloat(cleaned, 64); err == nil {
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if jsonNumberRe.MatchString(s) {
			return jsonNumber(s)
		}
	}
	return raw
}

var fieldLineRe = regexp.MustCompile(`^([^\s:][^:]*):\s*(.*)$`)

// salvage recovers fields from a block that failed YAML parsing. Each
// top-level "key: value" line is retried as a standalone YAML document;
// lines that still fail keep their raw value as an opaque string. Nested
// structure under an offending line is lost, which matches the
// degrade-to-string contract.
func salvage(block []byte) *models.Fields {
	out := models.NewFields()
	for _, line := range strings.Split(string(block), "\n") {
		m := fieldLineRe.FindStringSubmatch(strings.TrimRight(line, "\r"))
		if m == nil {
			continue
		}
		key := strings.TrimSpace(m[1])
		rawValue := m[2]

		var doc yaml.Node
		if err := yaml.Unmarshal([]byte(line), &doc); err == nil {
			if root := documentRoot(&doc); root != nil && root.Kind == yaml.MappingNode && len(root.Content) == 2 {
				out.Set(key, decodeNode(root.Content[1]))
				continue
			}
		}
		if rawValue == "" {
			continue
		}
		out.Set(key, rawValue)
	}
	return out
}
