package redis

import (
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/shareclass/accounts/internal/logging"
)

// Redis wraps an optional redis client. A nil client disables every rate
// limit, so the server runs without redis in development and in tests.
type Redis struct {
	client *redis.Client
}

type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	Options  string
}

func NewRedis(options Options) *Redis {
	var client *redis.Client

	if len(options.Host) > 0 {
		redisOptions, err := redis.ParseURL(fmt.Sprintf("redis://%s:%d?%s", options.Host, options.Port, options.Options))
		if err != nil {
			logging.Warnf("invalid redis options: %#v", options)
			return nil
		}

		redisOptions.Username = options.Username
		redisOptions.Password = options.Password

		client = redis.NewClient(redisOptions)
	}

	return &Redis{
		client: client,
	}
}
