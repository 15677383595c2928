package production

import (
	"encoding/json"
	"github.com/Odunjoy/NaijaStoic-props/discord"
	"sync"
	"time"
)

// Cache memoizes fetch for ttl, keeping the JSON form next to the value for
// handlers that serve it as is.
type Cache[T any] struct {
	data        T
	marshalled  []byte
	lastFetched time.Time
	ttl         time.Duration
	fetch       func() (T, error)
	mutex       sync.Mutex
}

func (c *Cache[T]) refresh(force bool) error {
	if !force && time.Now().Before(c.lastFetched.Add(c.ttl)) {
		return nil
	}
	discord.Infof("Cache expired, fetching new data")
	data, err := c.fetch()
	if err != nil {
		return err
	}
	marshalled, err := json.Marshal(data)
	if err != nil {
		return err
	}
	c.data = data
	c.marshalled = marshalled
	c.lastFetched = time.Now()
	return nil
}

// Get returns the cached value, fetching when stale or forced. On a failed
// fetch the previous value is returned with the error.
func (c *Cache[T]) Get(force bool) (T, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	err := c.refresh(force)
	return c.data, err
}

func (c *Cache[T]) GetJSON(force bool) ([]byte, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	err := c.refresh(force)
	return c.marshalled, err
}

// Invalidate makes the next read fetch.
func (c *Cache[T]) Invalidate() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.lastFetched = time.Time{}
}

func CreateCache[T any](ttl time.Duration, fetch func() (T, error)) *Cache[T] {
	return &Cache[T]{ttl: ttl, fetch: fetch}
}
