package usecase

import (
	"context"

	"github.com/totegamma/rerum-inbox/internal/domain"
)

// AnnouncementStore is the backing document store.
type AnnouncementStore interface {
	// Create persists doc under a fresh key.
	Create(ctx context.Context, doc domain.Announcement) (domain.StoredAnnouncement, error)
	// Read returns domain.ErrNotFound (or an empty document) when key is absent.
	Read(ctx context.Context, key string) (domain.Announcement, error)
	// List returns the matching documents in store order.
	List(ctx context.Context, query domain.StoreQuery) ([]domain.StoredAnnouncement, error)
}

// AnnouncementNotifier is told about every announcement once it is stored.
type AnnouncementNotifier interface {
	Publish(ctx context.Context, announcement domain.Announcement) error
}
