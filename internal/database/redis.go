package database

import (
	"context"

	"drawing-tutor-backend/config"

	"github.com/go-redis/redis/v8"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// ConnectRedis connects the optional response cache. Like the primary
// store, an unreachable redis leaves RedisClient nil and the service
// runs without caching.
func ConnectRedis(cfg *config.Config) error {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisFullAddr(),
		Password: cfg.RedisPassword,
		DB:       0, // use default DB
	})

	if _, err := client.Ping(Ctx).Result(); err != nil {
		RedisClient = nil
		return err
	}

	RedisClient = client
	return nil
}
