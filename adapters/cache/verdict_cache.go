package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"goverdict/domain/core"
	"goverdict/internal/errors"
	"goverdict/models"
	"goverdict/ports"

	"github.com/redis/go-redis/v9"
)

type verdictCache struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

// NewVerdictCache creates a Redis-backed verdict cache
func NewVerdictCache(client *redis.Client, ttl time.Duration, prefix string) ports.VerdictCache {
	if prefix == "" {
		prefix = "verdict:"
	}
	return &verdictCache{
		client: client,
		ttl:    ttl,
		prefix: prefix,
	}
}

// NewClient connects to the Redis instance at url and pings it
func NewClient(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrap(err, "invalid REDIS_URL"))
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.CacheError("failed to ping redis", err)
	}
	return client, nil
}

func (c *verdictCache) key(fp core.InputFingerprint, cfg core.ConfigHash) string {
	return fmt.Sprintf("%s%s:%s", c.prefix, cfg.String(), fp.String())
}

func (c *verdictCache) Get(ctx context.Context, fp core.InputFingerprint, cfg core.ConfigHash) (*models.VerdictRecord, error) {
	data, err := c.client.Get(ctx, c.key(fp, cfg)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.CacheError("failed to read cached verdict", err)
	}
	var record models.VerdictRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errors.CacheError("failed to decode cached verdict", err)
	}
	return &record, nil
}

func (c *verdictCache) Set(ctx context.Context, record *models.VerdictRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key(record.Fingerprint, record.ConfigHash), data, c.ttl).Err(); err != nil {
		return errors.CacheError("failed to cache verdict", err)
	}
	return nil
}
