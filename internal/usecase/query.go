package usecase

import (
	"strings"

	"github.com/totegamma/rerum-inbox"
	"github.com/totegamma/rerum-inbox/internal/domain"
)

// BuildStoreQuery picks the one equality clause the store evaluates. type
// wins over target, the two are never combined. A type query names the
// "@type" field; a store holding documents keyed by a bare "type" maps it
// itself (see gateway.NewFirebaseGateway).
func BuildStoreQuery(q inbox.Query) domain.StoreQuery {
	switch {
	case q.Type != "":
		return domain.StoreQuery{Field: domain.KeyType, Value: q.Type}
	case q.Target != "":
		return domain.StoreQuery{Field: domain.KeyTarget, Value: q.Target}
	default:
		return domain.StoreQuery{}
	}
}

// BuildPostFilter returns the in-memory motivation filter. It matches by
// substring and rejects documents without a string motivation.
func BuildPostFilter(q inbox.Query) func(domain.Announcement) bool {
	if q.Motivation == "" {
		return func(domain.Announcement) bool { return true }
	}
	return func(doc domain.Announcement) bool {
		motivation := doc.StringField(domain.KeyMotivation)
		if motivation == "" {
			return false
		}
		return strings.Contains(motivation, q.Motivation)
	}
}

// Matches applies both halves of the query to a single document.
func Matches(q inbox.Query, doc domain.Announcement) bool {
	return BuildStoreQuery(q).Matches(doc) && BuildPostFilter(q)(doc)
}
