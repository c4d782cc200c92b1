package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache TTLs
const (
	TTLUnreadCount   = 1 * time.Minute // unread badge, near-realtime
	TTLAnnouncements = 2 * time.Minute // announcement board
	TTLUser          = 10 * time.Minute
	TTLDefault       = 5 * time.Minute
)

// Cache key prefixes
const (
	PrefixUnread        = "unread:"
	PrefixAnnouncements = "announcements:"
	PrefixUser          = "user:"
)

// Service is the Redis cache interface used by the messaging services.
// All operations degrade gracefully when Redis is unavailable.
type Service interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Unread message counter
	GetUnreadCount(ctx context.Context, userID int64) (int64, bool)
	SetUnreadCount(ctx context.Context, userID int64, count int64) error
	InvalidateUnreadCount(ctx context.Context, userID int64) error

	// Announcement list
	GetAnnouncements(ctx context.Context, page, pageSize int) ([]byte, error)
	SetAnnouncements(ctx context.Context, page, pageSize int, data interface{}) error
	InvalidateAnnouncements(ctx context.Context) error

	IsAvailable() bool
	Ping(ctx context.Context) error
}

type redisCache struct {
	client *redis.Client
}

// NewService creates a new cache service
func NewService(client *redis.Client) Service {
	return &redisCache{client: client}
}

func (c *redisCache) IsAvailable() bool {
	return c.client != nil
}

func (c *redisCache) Ping(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	return c.client.Ping(ctx).Err()
}

func (c *redisCache) Get(ctx context.Context, key string, dest interface{}) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return err
	}

	return json.Unmarshal(data, dest)
}

func (c *redisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if c.client == nil {
		return fmt.Errorf("redis not available")
	}

	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *redisCache) Delete(ctx context.Context, keys ...string) error {
	if c.client == nil || len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

func (c *redisCache) Exists(ctx context.Context, key string) (bool, error) {
	if c.client == nil {
		return false, nil
	}
	n, err := c.client.Exists(ctx, key).Result()
	return n > 0, err
}

func unreadKey(userID int64) string {
	return PrefixUnread + strconv.FormatInt(userID, 10)
}

// GetUnreadCount returns the cached unread count and whether it was present.
func (c *redisCache) GetUnreadCount(ctx context.Context, userID int64) (int64, bool) {
	if c.client == nil {
		return 0, false
	}
	n, err := c.client.Get(ctx, unreadKey(userID)).Int64()
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *redisCache) SetUnreadCount(ctx context.Context, userID int64, count int64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Set(ctx, unreadKey(userID), count, TTLUnreadCount).Err()
}

// InvalidateUnreadCount drops the cached counter. Counters are recomputed from
// the store on the next read, never decremented in place.
func (c *redisCache) InvalidateUnreadCount(ctx context.Context, userID int64) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, unreadKey(userID)).Err()
}

func announcementsKey(page, pageSize int) string {
	return fmt.Sprintf("%slist:%d:%d", PrefixAnnouncements, page, pageSize)
}

func (c *redisCache) GetAnnouncements(ctx context.Context, page, pageSize int) ([]byte, error) {
	if c.client == nil {
		return nil, fmt.Errorf("redis not available")
	}
	return c.client.Get(ctx, announcementsKey(page, pageSize)).Bytes()
}

func (c *redisCache) SetAnnouncements(ctx context.Context, page, pageSize int, data interface{}) error {
	if c.client == nil {
		return nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, announcementsKey(page, pageSize), raw, TTLAnnouncements).Err()
}

func (c *redisCache) InvalidateAnnouncements(ctx context.Context) error {
	if c.client == nil {
		return nil
	}
	iter := c.client.Scan(ctx, 0, PrefixAnnouncements+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	return c.Delete(ctx, keys...)
}
