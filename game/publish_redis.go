package game

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const redisPublishTimeout = 2 * time.Second

// RedisEventPublisher mirrors the table log to Redis pub/sub channels and
// keeps the latest entry of each match under its own key.
type RedisEventPublisher struct {
	rdclient *redis.Client
	prefix   string
}

func NewRedisEventPublisher(redisURL string, redisPW string, redisDB int, prefix string) *RedisEventPublisher {
	rdclient := redis.NewClient(&redis.Options{
		Addr:     redisURL,
		Password: redisPW,
		DB:       redisDB,
	})
	return &RedisEventPublisher{
		rdclient: rdclient,
		prefix:   prefix,
	}
}

func (r *RedisEventPublisher) channel(matchID string) string {
	if matchID == "" {
		matchID = "table"
	}
	return fmt.Sprintf("%s.%s.log", r.prefix, matchID)
}

func (r *RedisEventPublisher) Publish(entry LogEntry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return errors.Wrap(err, "Unable to encode log entry")
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisPublishTimeout)
	defer cancel()

	channel := r.channel(entry.MatchID)
	err = r.rdclient.Publish(ctx, channel, data).Err()
	if err != nil {
		return errors.Wrapf(err, "Unable to publish to redis channel %s", channel)
	}
	err = r.rdclient.Set(ctx, channel+".last", data, 0).Err()
	if err != nil {
		return errors.Wrapf(err, "Unable to save last entry for %s", channel)
	}
	return nil
}

func (r *RedisEventPublisher) Close() error {
	return r.rdclient.Close()
}
