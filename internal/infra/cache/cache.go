package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	gocache "github.com/patrickmn/go-cache"

	"github.com/totegamma/rerum-inbox/internal/domain"
	"github.com/totegamma/rerum-inbox/internal/usecase"
)

// Cache is a byte oriented key-value cache.
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte)
}

// LocalCache keeps entries inside the process.
type LocalCache struct {
	cache *gocache.Cache
}

func NewLocalCache(ttl time.Duration) *LocalCache {
	return &LocalCache{cache: gocache.New(ttl, ttl+ttl/2)}
}

func (c *LocalCache) Get(key string) ([]byte, bool) {
	v, found := c.cache.Get(key)
	if !found {
		return nil, false
	}
	return v.([]byte), true
}

func (c *LocalCache) Set(key string, value []byte) {
	c.cache.Set(key, value, gocache.DefaultExpiration)
}

// MemcacheCache shares entries between replicas through memcached.
type MemcacheCache struct {
	client *memcache.Client
	ttl    int32
}

// MaxMemcacheTTL is the longest relative expiration memcached accepts. Larger
// values are read as absolute unix times.
const MaxMemcacheTTL = 30 * 24 * time.Hour

func NewMemcacheCache(client *memcache.Client, ttl time.Duration) *MemcacheCache {
	return &MemcacheCache{client: client, ttl: memcacheExpiration(ttl)}
}

func memcacheExpiration(ttl time.Duration) int32 {
	switch {
	case ttl <= 0:
		return 0
	case ttl > MaxMemcacheTTL:
		ttl = MaxMemcacheTTL
	case ttl < time.Second:
		ttl = time.Second
	}
	return int32(ttl / time.Second)
}

func (c *MemcacheCache) Get(key string) ([]byte, bool) {
	item, err := c.client.Get(key)
	if err != nil {
		if err != memcache.ErrCacheMiss {
			slog.Warn(
				"memcache get failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
				slog.String("module", "cache"),
			)
		}
		return nil, false
	}
	return item.Value, true
}

func (c *MemcacheCache) Set(key string, value []byte) {
	err := c.client.Set(&memcache.Item{Key: key, Value: value, Expiration: c.ttl})
	if err != nil {
		slog.Warn(
			"memcache set failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

// CachedStore serves single reads from a cache. Announcements never change
// after creation, so entries are never invalidated.
type CachedStore struct {
	usecase.AnnouncementStore
	cache Cache
}

func NewCachedStore(store usecase.AnnouncementStore, cache Cache) *CachedStore {
	return &CachedStore{AnnouncementStore: store, cache: cache}
}

func cacheKey(key string) string {
	return "inbox:announcement:" + key
}

func (s *CachedStore) put(key string, doc domain.Announcement) {
	b, err := json.Marshal(doc)
	if err != nil {
		return
	}
	s.cache.Set(cacheKey(key), b)
}

func (s *CachedStore) Create(ctx context.Context, doc domain.Announcement) (domain.StoredAnnouncement, error) {
	stored, err := s.AnnouncementStore.Create(ctx, doc)
	if err != nil {
		return stored, err
	}
	s.put(stored.Key, stored.Document)
	return stored, nil
}

func (s *CachedStore) Read(ctx context.Context, key string) (domain.Announcement, error) {
	if b, ok := s.cache.Get(cacheKey(key)); ok {
		doc, err := domain.ParseAnnouncement(b)
		if err == nil {
			return doc, nil
		}
	}

	doc, err := s.AnnouncementStore.Read(ctx, key)
	if err != nil {
		return doc, err
	}
	if doc.Len() > 0 {
		s.put(key, doc)
	}
	return doc, nil
}

var _ usecase.AnnouncementStore = (*CachedStore)(nil)
