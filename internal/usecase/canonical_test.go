package usecase

import (
	"encoding/json"
	"reflect"
	"testing"
)

func asMap(t *testing.T, v any) map[string]any {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return m
}

func TestInjectIfAbsentAddsMissingKey(t *testing.T) {
	doc := mustParse(t, `{"motivation":"Announce","object":"http://x"}`)

	out := InjectIfAbsent(doc, "@context", "http://www.w3.org/ns/ldp")

	got := asMap(t, out)
	want := map[string]any{
		"@context":   "http://www.w3.org/ns/ldp",
		"motivation": "Announce",
		"object":     "http://x",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v got %v", want, got)
	}
	if keys := out.Keys(); keys[0] != "@context" {
		t.Fatalf("expected injected key first, got %v", keys)
	}
	if _, ok := doc.Get("@context"); ok {
		t.Fatalf("input document must not be modified")
	}
}

func TestInjectIfAbsentKeepsExistingValue(t *testing.T) {
	doc := mustParse(t, `{"@context":"http://custom","motivation":"Announce"}`)

	out := InjectIfAbsent(doc, "@context", "http://www.w3.org/ns/ldp")

	if v := out.StringField("@context"); v != "http://custom" {
		t.Fatalf("expected original context to survive, got %s", v)
	}
}

func TestInjectIfAbsentReplacesEmptyValue(t *testing.T) {
	doc := mustParse(t, `{"@context":"","motivation":"Announce"}`)

	out := InjectIfAbsent(doc, "@context", "http://www.w3.org/ns/ldp")

	if v := out.StringField("@context"); v != "http://www.w3.org/ns/ldp" {
		t.Fatalf("expected default context, got %s", v)
	}
}

func TestInjectIfAbsentIsIdempotent(t *testing.T) {
	doc := mustParse(t, `{"motivation":"Announce"}`)

	once := InjectIfAbsent(doc, "k", "v")
	twice := InjectIfAbsent(once, "k", "v")

	if !reflect.DeepEqual(asMap(t, once), asMap(t, twice)) {
		t.Fatalf("expected idempotent injection, got %v and %v", asMap(t, once), asMap(t, twice))
	}
}

func TestInjectOrOverwrite(t *testing.T) {
	doc := mustParse(t, `{"a":1,"@id":"http://old","b":2}`)

	out := InjectOrOverwrite(doc, "@id", "http://new")

	if v := out.StringField("@id"); v != "http://new" {
		t.Fatalf("expected overwritten id, got %s", v)
	}
	keys := out.Keys()
	want := []string{"@id", "a", "b"}
	if !reflect.DeepEqual(keys, want) {
		t.Fatalf("expected order %v got %v", want, keys)
	}
	if v := doc.StringField("@id"); v != "http://old" {
		t.Fatalf("input document must not be modified, got %s", v)
	}
}
