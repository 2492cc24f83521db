package cache

import (
	"time"

	"github.com/bradfitz/gomemcache/memcache"
)

// Memcache implements Cache on a memcached server
type Memcache struct {
	client *memcache.Client
}

// NewMemcache creates a cache backed by the given memcached address
func NewMemcache(addr string) *Memcache {
	return &Memcache{client: memcache.New(addr)}
}

// Get retrieves a value; a cache miss is returned as memcache.ErrCacheMiss
func (m *Memcache) Get(key string) ([]byte, error) {
	item, err := m.client.Get(key)
	if err != nil {
		return nil, err
	}
	return item.Value, nil
}

// Set stores a value with the given TTL
func (m *Memcache) Set(key string, value []byte, ttl time.Duration) error {
	return m.client.Set(&memcache.Item{
		Key:        key,
		Value:      value,
		Expiration: int32(ttl.Seconds()),
	})
}
