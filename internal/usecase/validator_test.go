package usecase

import (
	"errors"
	"testing"

	"github.com/totegamma/rerum-inbox/internal/domain"
)

func mustParse(t *testing.T, s string) domain.Announcement {
	t.Helper()
	doc, err := domain.ParseAnnouncement([]byte(s))
	if err != nil {
		t.Fatalf("parse %s: %v", s, err)
	}
	return doc
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{"valid", `{"motivation":"Announce","object":"http://x"}`, nil},
		{"identifier", `{"@id":"http://already","motivation":"Announce"}`, domain.ErrDuplicateIdentifier},
		{"identifier wins", `{"@id":"http://already"}`, domain.ErrDuplicateIdentifier},
		{"non string identifier", `{"@id":{"x":1},"motivation":"Announce"}`, domain.ErrDuplicateIdentifier},
		{"empty identifier", `{"@id":"","motivation":"Announce"}`, nil},
		{"null identifier", `{"@id":null,"motivation":"Announce"}`, nil},
		{"no motivation", `{"object":"http://x"}`, domain.ErrMissingMotivation},
		{"empty motivation", `{"motivation":""}`, domain.ErrMissingMotivation},
		{"null motivation", `{"motivation":null}`, domain.ErrMissingMotivation},
		{"false motivation", `{"motivation":false}`, domain.ErrMissingMotivation},
		{"zero motivation", `{"motivation":0}`, domain.ErrMissingMotivation},
		{"zero float motivation", `{"motivation":0.0}`, domain.ErrMissingMotivation},
		{"empty object motivation", `{"motivation":{}}`, domain.ErrMissingMotivation},
		{"empty array motivation", `{"motivation":[]}`, domain.ErrMissingMotivation},
		{"true motivation", `{"motivation":true}`, nil},
		{"object motivation", `{"motivation":{"@id":"oa:linking"}}`, nil},
		{"false identifier", `{"@id":false,"motivation":"Announce"}`, nil},
		{"empty document", `{}`, domain.ErrMissingMotivation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(mustParse(t, tc.body))
			if tc.want == nil {
				if err != nil {
					t.Fatalf("expected no error got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v got %v", tc.want, err)
			}
		})
	}
}

func TestValidateReportsDistinctMessages(t *testing.T) {
	idErr := Validate(mustParse(t, `{"@id":"x"}`))
	motivationErr := Validate(mustParse(t, `{}`))

	if idErr.Error() != "Property '@id' indicates this is not a new announcement." {
		t.Fatalf("unexpected message %q", idErr.Error())
	}
	if motivationErr.Error() != "Annoucements without 'motivation' are not allowed on this server." {
		t.Fatalf("unexpected message %q", motivationErr.Error())
	}
	if errors.Is(idErr, domain.ErrMissingMotivation) {
		t.Fatalf("identifier error must not match missing motivation")
	}
}
