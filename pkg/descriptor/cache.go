package descriptor

import "sync"

// HashCache maps absolute paths to content hashes for one run.
type HashCache struct {
	mu     sync.RWMutex
	hashes map[string]string
}

func NewHashCache() *HashCache {
	return &HashCache{hashes: make(map[string]string)}
}

func (c *HashCache) Get(path string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sum, ok := c.hashes[path]
	return sum, ok
}

func (c *HashCache) Put(path, sum string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hashes[path] = sum
}

func (c *HashCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.hashes)
}
