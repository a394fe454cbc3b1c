package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/totegamma/rerum-inbox/internal/domain"
	"github.com/totegamma/rerum-inbox/internal/usecase"
)

// Store keeps announcements in process memory, in insertion order.
type Store struct {
	mu   sync.RWMutex
	keys []string
	docs map[string]domain.Announcement
}

func NewStore() *Store {
	return &Store{
		docs: make(map[string]domain.Announcement),
	}
}

func (s *Store) Create(ctx context.Context, doc domain.Announcement) (domain.StoredAnnouncement, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return domain.StoredAnnouncement{}, errors.Wrap(err, "memory.Store.Create: key generation failed")
	}
	key := id.String()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	s.docs[key] = doc

	return domain.StoredAnnouncement{Key: key, Document: doc}, nil
}

func (s *Store) Read(ctx context.Context, key string) (domain.Announcement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[key]
	if !ok {
		return domain.Announcement{}, domain.NotFoundError{Resource: "announcement"}
	}
	return doc, nil
}

func (s *Store) List(ctx context.Context, query domain.StoreQuery) ([]domain.StoredAnnouncement, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.StoredAnnouncement, 0, len(s.keys))
	for _, key := range s.keys {
		doc := s.docs[key]
		if !query.Matches(doc) {
			continue
		}
		result = append(result, domain.StoredAnnouncement{Key: key, Document: doc})
	}
	return result, nil
}

var _ usecase.AnnouncementStore = (*Store)(nil)
