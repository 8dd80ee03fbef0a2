package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmarchuk/flightroster/config"
	"github.com/dmarchuk/flightroster/internal/domain"
	"github.com/redis/go-redis/v9"
)

// RedisCache keeps flight pages and flight details with a shared TTL.
// Any flight mutation invalidates the whole flight keyspace.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(cfg config.RedisConfig, ttl time.Duration) *RedisCache {
	return &RedisCache{
		client: redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		ttl:    ttl,
	}
}

func (c *RedisCache) GetFlightPage(ctx context.Context, page domain.PageRequest) (*domain.Page[domain.Flight], error) {
	data, err := c.client.Get(ctx, pageKey(page)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var result domain.Page[domain.Flight]
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *RedisCache) SetFlightPage(ctx context.Context, page domain.PageRequest, value *domain.Page[domain.Flight]) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pageKey(page), payload, c.ttl).Err()
}

func (c *RedisCache) GetFlightDetails(ctx context.Context, flightNumber string) (*domain.FlightDetails, error) {
	data, err := c.client.Get(ctx, detailsKey(flightNumber)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var details domain.FlightDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

func (c *RedisCache) SetFlightDetails(ctx context.Context, details *domain.FlightDetails) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, detailsKey(details.FlightNumber), payload, c.ttl).Err()
}

// InvalidateFlights drops every flight key.
func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "cache:flight*", 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func pageKey(page domain.PageRequest) string {
	return fmt.Sprintf("cache:flights:p%d:n%d", page.Page, page.PerPage)
}

func detailsKey(flightNumber string) string {
	return "cache:flight:" + flightNumber
}
