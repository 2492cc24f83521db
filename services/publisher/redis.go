package publisher

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"gpupricewatcher/internal/scraper"
)

// RedisPublisher implements Publisher on a capped Redis stream
type RedisPublisher struct {
	client *redis.Client
	stream string
	maxLen int64
}

// NewRedisPublisher creates a publisher writing to one stream, trimmed
// to approximately maxLen entries
func NewRedisPublisher(addr string, db int, stream string, maxLen int) *RedisPublisher {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	return &RedisPublisher{
		client: client,
		stream: stream,
		maxLen: int64(maxLen),
	}
}

// Publish appends the record as JSON to the stream
func (p *RedisPublisher) Publish(ctx context.Context, rec scraper.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		MaxLen: p.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"record": data,
		},
	}).Err()
}

// Close closes the Redis connection
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
