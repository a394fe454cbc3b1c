package gateway

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/totegamma/rerum-inbox/client"
	"github.com/totegamma/rerum-inbox/internal/domain"
	"github.com/totegamma/rerum-inbox/internal/usecase"
	"github.com/totegamma/rerum-inbox/internal/utils"
)

// FirebaseGateway stores announcements as children of a single collection in
// a remote JSON key-value store.
type FirebaseGateway struct {
	client    *client.Client
	typeField string
}

// NewFirebaseGateway builds the gateway. typeField names the child field a
// type query orders by; collections written by older deployments use "type".
// An empty typeField means "@type".
func NewFirebaseGateway(cl *client.Client, typeField string) *FirebaseGateway {
	if typeField == "" {
		typeField = domain.KeyType
	}
	return &FirebaseGateway{client: cl, typeField: typeField}
}

func (g *FirebaseGateway) Create(ctx context.Context, doc domain.Announcement) (domain.StoredAnnouncement, error) {
	key, err := g.client.Push(ctx, "", doc)
	if err != nil {
		return domain.StoredAnnouncement{}, errors.Wrap(err, "FirebaseGateway.Create")
	}
	return domain.StoredAnnouncement{Key: key, Document: doc}, nil
}

// Read returns an empty announcement when the store answers null.
func (g *FirebaseGateway) Read(ctx context.Context, key string) (domain.Announcement, error) {
	var doc domain.Announcement
	err := g.client.Get(ctx, key, client.Options{}, &doc)
	if err != nil {
		return domain.Announcement{}, errors.Wrap(err, "FirebaseGateway.Read")
	}
	return doc, nil
}

func (g *FirebaseGateway) List(ctx context.Context, query domain.StoreQuery) ([]domain.StoredAnnouncement, error) {
	opts := client.Options{}
	if !query.IsZero() {
		opts.OrderBy = query.Field
		if query.Field == domain.KeyType {
			opts.OrderBy = g.typeField
		}
		opts.EqualTo = query.Value
	}

	var children utils.OrderedKVMap[json.RawMessage]
	err := g.client.Get(ctx, "", opts, &children)
	if err != nil {
		return nil, errors.Wrap(err, "FirebaseGateway.List")
	}

	result := make([]domain.StoredAnnouncement, 0, len(children))
	for _, key := range children.Keys() {
		raw, _ := children.Get(key)
		doc, err := domain.ParseAnnouncement(raw)
		if err != nil || doc.OrderedKVMap == nil {
			slog.WarnContext(
				ctx, "skipping malformed child",
				slog.String("key", key),
				slog.String("module", "gateway"),
			)
			continue
		}
		result = append(result, domain.StoredAnnouncement{Key: key, Document: doc})
	}
	return result, nil
}

var _ usecase.AnnouncementStore = (*FirebaseGateway)(nil)
