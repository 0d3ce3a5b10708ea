package schema

import (
	"reflect"
	"sync"

	"github.com/spaolacci/murmur3"
)

// cacheShardCount must be a power of 2.
const cacheShardCount = 16

// descriptors caches reflected descriptors for the whole process.
var descriptors = newDescriptorCache()

// descriptorCache is a sharded, RW-locked map from struct type to descriptor.
type descriptorCache struct {
	shards [cacheShardCount]*cacheShard
}

type cacheShard struct {
	mu    sync.RWMutex
	items map[reflect.Type]*Descriptor
}

func newDescriptorCache() *descriptorCache {
	c := &descriptorCache{}
	for i := range c.shards {
		c.shards[i] = &cacheShard{items: make(map[reflect.Type]*Descriptor)}
	}
	return c
}

// shardFor picks a shard from the fully qualified type name.
func (c *descriptorCache) shardFor(t reflect.Type) *cacheShard {
	h := murmur3.Sum32([]byte(t.PkgPath() + "." + t.String()))
	return c.shards[h&(cacheShardCount-1)]
}

// getOrBuild returns the cached descriptor of t, building and storing it on
// first use. Build errors are not cached.
func (c *descriptorCache) getOrBuild(t reflect.Type, buildFn func(reflect.Type) (*Descriptor, error)) (*Descriptor, error) {
	s := c.shardFor(t)

	s.mu.RLock()
	d, ok := s.items[t]
	s.mu.RUnlock()
	if ok {
		return d, nil
	}

	d, err := buildFn(t)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.items[t]; ok {
		return existing, nil
	}
	s.items[t] = d
	return d, nil
}

// len returns the number of cached descriptors.
func (c *descriptorCache) len() int {
	n := 0
	for _, s := range c.shards {
		s.mu.RLock()
		n += len(s.items)
		s.mu.RUnlock()
	}
	return n
}
