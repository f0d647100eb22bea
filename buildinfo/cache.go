package buildinfo

import lru "github.com/hashicorp/golang-lru/v2"

type resolved struct {
	info Info
	ok   bool
}

type cachedResolver struct {
	resolver Resolver
	cache    *lru.Cache[string, resolved]
}

// Cached wraps resolver with an LRU cache of the given size. Misses are
// cached too.
func Cached(resolver Resolver, size int) (Resolver, error) {
	cache, err := lru.New[string, resolved](size)
	if err != nil {
		return nil, err
	}
	return &cachedResolver{resolver: resolver, cache: cache}, nil
}

func (c *cachedResolver) Resolve(packagePath string) (Info, bool) {
	if value, ok := c.cache.Get(packagePath); ok {
		return value.info, value.ok
	}
	info, ok := c.resolver.Resolve(packagePath)
	c.cache.Add(packagePath, resolved{info: info, ok: ok})
	return info, ok
}
