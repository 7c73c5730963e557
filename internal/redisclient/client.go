package redisclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Karatsuyu/delicious-food-app/internal/models"

	"github.com/go-redis/redis/v8"
)

const (
	productListKey = "catalog:products"
	statsKeyFmt    = "stats:orders:%d"
)

type Client struct {
	rdb *redis.Client
}

// NewClient creates a new Redis client
func NewClient(addr, password string, db int) (*Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{rdb: rdb}, nil
}

// GetClient returns the underlying Redis client
func (c *Client) GetClient() *redis.Client {
	return c.rdb
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.rdb.Close()
}

// GetProductList returns the cached catalog, or (nil, nil) on a miss.
func (c *Client) GetProductList(ctx context.Context) ([]models.Product, error) {
	raw, err := c.rdb.Get(ctx, productListKey).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var products []models.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("corrupt product cache: %w", err)
	}
	return products, nil
}

// SetProductList caches the catalog with a TTL
func (c *Client) SetProductList(ctx context.Context, products []models.Product, ttl time.Duration) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productListKey, raw, ttl).Err()
}

// InvalidateProductList drops the cached catalog after an admin write
func (c *Client) InvalidateProductList(ctx context.Context) error {
	return c.rdb.Del(ctx, productListKey).Err()
}

// GetOrderStats returns cached per-user order statistics, or (nil, nil) on a miss.
func (c *Client) GetOrderStats(ctx context.Context, userID int64) (*models.OrderStats, error) {
	raw, err := c.rdb.Get(ctx, fmt.Sprintf(statsKeyFmt, userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats models.OrderStats
	if err := json.Unmarshal(raw, &stats); err != nil {
		return nil, fmt.Errorf("corrupt stats cache: %w", err)
	}
	return &stats, nil
}

// SetOrderStats caches per-user order statistics with a TTL
func (c *Client) SetOrderStats(ctx context.Context, userID int64, stats *models.OrderStats, ttl time.Duration) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, fmt.Sprintf(statsKeyFmt, userID), raw, ttl).Err()
}

// InvalidateOrderStats drops a user's cached statistics. The order-event
// worker calls this whenever an order is placed or changes state.
func (c *Client) InvalidateOrderStats(ctx context.Context, userID int64) error {
	return c.rdb.Del(ctx, fmt.Sprintf(statsKeyFmt, userID)).Err()
}
