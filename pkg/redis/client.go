package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyNamespace = "diamondlab"

// ErrNotFound reports a cache miss.
var ErrNotFound = errors.New("redis: key not found")

// Client wraps the go-redis connection behind namespaced keys.
type Client struct {
	rdb *goredis.Client
}

// New parses the redis URL and verifies connectivity.
func New(ctx context.Context, url string) (*Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}

	rdb := goredis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// PriceQuoteKey builds the cache key for one (product, weight) quote.
func PriceQuoteKey(productID, caratWeight string) string {
	return fmt.Sprintf("%s:price:%s:%s", keyNamespace, productID, caratWeight)
}

// PriceQuotePrefix covers every cached quote for one product.
func PriceQuotePrefix(productID string) string {
	return fmt.Sprintf("%s:price:%s:", keyNamespace, productID)
}

// AllPriceQuotesPrefix covers every cached quote across products.
func AllPriceQuotesPrefix() string {
	return keyNamespace + ":price:"
}

// Get returns the value at key, or ErrNotFound on a miss.
func (c *Client) Get(ctx context.Context, key string) (string, error) {
	val, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Set stores value at key with the given TTL.
func (c *Client) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	return c.rdb.Set(ctx, key, value, ttl).Err()
}

// Del removes the given keys.
func (c *Client) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

// DelByPrefix removes every key sharing the namespaced prefix. Used to
// drop cached quotes when pricing inputs change.
func (c *Client) DelByPrefix(ctx context.Context, prefix string) error {
	iter := c.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Del(ctx, keys...)
}

// Ping checks connectivity.
func (c *Client) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}

// Close releases the underlying connection pool.
func (c *Client) Close() error {
	return c.rdb.Close()
}
