package usecase

import (
	"testing"

	"github.com/totegamma/rerum-inbox"
	"github.com/totegamma/rerum-inbox/internal/domain"
)

func TestBuildStoreQuery(t *testing.T) {
	cases := []struct {
		name  string
		query inbox.Query
		want  domain.StoreQuery
	}{
		{"empty", inbox.Query{}, domain.StoreQuery{}},
		{"motivation only", inbox.Query{Motivation: "supplement"}, domain.StoreQuery{}},
		{"type", inbox.Query{Type: "Announce"}, domain.StoreQuery{Field: "@type", Value: "Announce"}},
		{"target", inbox.Query{Target: "http://m"}, domain.StoreQuery{Field: "target", Value: "http://m"}},
		{"type over target", inbox.Query{Type: "A", Target: "B"}, domain.StoreQuery{Field: "@type", Value: "A"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := BuildStoreQuery(tc.query); got != tc.want {
				t.Fatalf("expected %+v got %+v", tc.want, got)
			}
		})
	}
}

func TestBuildPostFilter(t *testing.T) {
	doc := mustParse(t, `{"motivation":"iiif:supplement:range"}`)
	missing := mustParse(t, `{"object":"http://x"}`)
	nonString := mustParse(t, `{"motivation":["supplement"]}`)

	if !BuildPostFilter(inbox.Query{})(doc) {
		t.Fatalf("empty motivation must accept everything")
	}
	if !BuildPostFilter(inbox.Query{})(missing) {
		t.Fatalf("empty motivation must accept documents without motivation")
	}
	if !BuildPostFilter(inbox.Query{Motivation: "supplement"})(doc) {
		t.Fatalf("expected substring match")
	}
	if BuildPostFilter(inbox.Query{Motivation: "zzz"})(doc) {
		t.Fatalf("expected no match for zzz")
	}
	if BuildPostFilter(inbox.Query{Motivation: "supplement"})(missing) {
		t.Fatalf("missing motivation must not match")
	}
	if BuildPostFilter(inbox.Query{Motivation: "supplement"})(nonString) {
		t.Fatalf("non string motivation must not match")
	}
}

func TestMatches(t *testing.T) {
	doc := mustParse(t, `{"@type":"Announce","target":"http://m","motivation":"iiif:supplement"}`)

	if !Matches(inbox.Query{Type: "Announce", Motivation: "supplement"}, doc) {
		t.Fatalf("expected match")
	}
	if Matches(inbox.Query{Target: "http://other"}, doc) {
		t.Fatalf("expected target mismatch")
	}
	if Matches(inbox.Query{Type: "Offer", Target: "http://m"}, doc) {
		t.Fatalf("type must take precedence over target")
	}
}
