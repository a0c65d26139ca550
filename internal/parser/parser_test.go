package parser

import (
	"encoding/json"
	"testing"

	"github.com/starford/ansuz/internal/models"
)

func field(t *testing.T, f *models.Fields, key string) any {
	t.Helper()
	v, ok := f.Get(key)
	if !ok {
		t.Fatalf("field %q missing (have %v)", key, f.Keys())
	}
	return v
}

func TestParse_ScalarTypes(t *testing.T) {
	input := []byte("---\ntitle: Hello\ncount: 42\nratio: 3.14\ndraft: true\nnothing:\n---\nBody.\n")
	r := Parse(input)
	if r.Degraded {
		t.Fatal("unexpected degradation")
	}
	if got := field(t, r.Fields, "title"); got != "Hello" {
		t.Errorf("title = %#v", got)
	}
	if got := field(t, r.Fields, "count"); got != json.Number("42") {
		t.Errorf("count = %#v", got)
	}
	if got := field(t, r.Fields, "ratio"); got != json.Number("3.14") {
		t.Errorf("ratio = %#v", got)
	}
	if got := field(t, r.Fields, "draft"); got != true {
		t.Errorf("draft = %#v", got)
	}
	if got := field(t, r.Fields, "nothing"); got != nil {
		t.Errorf("nothing = %#v, want nil", got)
	}
}

func TestParse_FieldOrderPreserved(t *testing.T) {
	input := []byte("---\nzulu: 1\nalpha: 2\nmike: 3\n---\n")
	r := Parse(input)
	keys := r.Fields.Keys()
	want := []string{"zulu", "alpha", "mike"}
	if len(keys) != len(want) {
		t.Fatalf("keys = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}

func TestParse_DateKeepsLiteral(t *testing.T) {
	r := Parse([]byte("---\ndate: 2025-11-01\n---\n"))
	if got := field(t, r.Fields, "date"); got != "2025-11-01" {
		t.Errorf("date = %#v, want the literal string", got)
	}
}

func TestParse_NoFrontmatter(t *testing.T) {
	r := Parse([]byte("# Just a heading\nSome text.\n"))
	if r.Fields.Len() != 0 {
		t.Errorf("expected zero fields, got %v", r.Fields.Keys())
	}
	if r.Degraded {
		t.Error("absence of frontmatter is not degradation")
	}
}

func TestParse_UnterminatedBlock(t *testing.T) {
	r := Parse([]byte("---\ndate: 2025-11-01\nno closing delimiter here\n"))
	if r.Fields.Len() != 0 {
		t.Errorf("expected zero fields, got %v", r.Fields.Keys())
	}
}

func TestParse_TemplatingPassesThroughAsString(t *testing.T) {
	r := Parse([]byte("---\ndate: <% tp.date.now(\"YYYY-MM-DD\") %>\n---\n"))
	got := field(t, r.Fields, "date")
	if got != `<% tp.date.now("YYYY-MM-DD") %>` {
		t.Errorf("date = %#v", got)
	}
}

func TestParse_InvalidYAMLSalvagesFields(t *testing.T) {
	input := []byte("---\ntitle: ok\nweird: {{ unclosed\ntags: [a, b]\n---\n")
	r := Parse(input)
	if !r.Degraded {
		t.Fatal("expected degraded result")
	}
	if got := field(t, r.Fields, "title"); got != "ok" {
		t.Errorf("title = %#v", got)
	}
	if got := field(t, r.Fields, "weird"); got != "{{ unclosed" {
		t.Errorf("weird = %#v, want the raw string", got)
	}
	if got, ok := field(t, r.Fields, "tags").([]any); !ok || len(got) != 2 {
		t.Errorf("tags = %#v, want salvaged list", got)
	}
}

func TestParse_NestedStructures(t *testing.T) {
	input := []byte("---\ntags:\n  - ai\n  - python\nmeta:\n  author: ada\n  year: 2025\n---\n")
	r := Parse(input)

	tags, ok := field(t, r.Fields, "tags").([]any)
	if !ok || len(tags) != 2 || tags[0] != "ai" || tags[1] != "python" {
		t.Errorf("tags = %#v", tags)
	}

	meta, ok := field(t, r.Fields, "meta").(*models.Fields)
	if !ok {
		t.Fatalf("meta = %#v", field(t, r.Fields, "meta"))
	}
	if v, _ := meta.Get("author"); v != "ada" {
		t.Errorf("meta.author = %#v", v)
	}
	if v, _ := meta.Get("year"); v != json.Number("2025") {
		t.Errorf("meta.year = %#v", v)
	}
}

func TestParse_NonMappingFrontmatter(t *testing.T) {
	r := Parse([]byte("---\njust a scalar\n---\n"))
	if r.Fields.Len() != 0 {
		t.Errorf("expected zero fields, got %v", r.Fields.Keys())
	}
}

func TestDecodeNumber_NonJSONForms(t *testing.T) {
	cases := []struct {
		raw  string
		want any
	}{
		{"42", json.Number("42")},
		{"0x1A", json.Number("26")},
		{"1_000", json.Number("1000")},
		{".5", json.Number("0.5")},
		{"1e3", json.Number("1e3")},
		{".inf", ".inf"},
	}
	for _, c := range cases {
		if got := decodeNumber(c.raw); got != c.want {
			t.Errorf("decodeNumber(%q) = %#v, want %#v", c.raw, got, c.want)
		}
	}
}
