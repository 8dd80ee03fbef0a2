package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/dmarchuk/flightroster/internal/domain"
	gocache "github.com/patrickmn/go-cache"
)

// MemoryCache is the in-process fallback used when no redis address is
// configured. Same keyspace and semantics as RedisCache.
type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(ttl, 2*ttl)}
}

func (c *MemoryCache) GetFlightPage(_ context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	v, ok := c.cache.Get(pageKey(page))
	if !ok {
		return nil, nil
	}
	result, ok := v.(domain.Page[domain.Flight])
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T", v)
	}
	return &result, nil
}

func (c *MemoryCache) SetFlightPage(_ context.Context, page domain.PageRequest, value *domain.Page[domain.Flight]) error {
	c.cache.SetDefault(pageKey(page), *value)
	return nil
}

func (c *MemoryCache) GetFlightDetails(_ context.Context, flightNumber string) (*domain.FlightDetails, error) {
	v, ok := c.cache.Get(detailsKey(flightNumber))
	if !ok {
		return nil, nil
	}
	details, ok := v.(domain.FlightDetails)
	if !ok {
		return nil, fmt.Errorf("unexpected cache entry type %T", v)
	}
	return &details, nil
}

func (c *MemoryCache) SetFlightDetails(_ context.Context, details *domain.FlightDetails) error {
	c.cache.SetDefault(detailsKey(details.FlightNumber), *details)
	return nil
}

func (c *MemoryCache) InvalidateFlights(_ context.Context) error {
	c.cache.Flush()
	return nil
}
