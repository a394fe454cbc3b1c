package database

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// NewMemcached returns a client for a comma separated server list.
func NewMemcached(servers ...string) *memcache.Client {
	client := memcache.New(servers...)
	client.Timeout = 500 * time.Millisecond
	return client
}
