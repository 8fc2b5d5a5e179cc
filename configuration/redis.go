package configuration

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

// Client caches the public doctor list. A nil Client means the cache is
// disabled and every read goes to the database.
var Client *redis.Client

// InitRedis connects to the redis server named by REDIS_ADDR. The cache is
// optional, so after the retries run out the service keeps going without it.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	var err error
	MaxRetries := 5
	RetryDelay := time.Second * 5
	for i := 0; i < MaxRetries; i++ {
		Client = redis.NewClient(&redis.Options{
			Network:  "tcp",
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       0,
		})

		_, err = Client.Ping(ctx).Result()
		if err == nil {
			return
		}

		fmt.Printf("Failed to connect to Redis (Attempt %d/%d): %s\n", i+1, MaxRetries, err.Error())
		time.Sleep(RetryDelay)
	}
	fmt.Println("Redis unavailable, doctor list cache disabled")
	Client = nil
}

// SetRedis stores a key with an expiry.
func SetRedis(key string, value any, expirationTime time.Duration) error {
	if err := Client.Set(context.Background(), key, value, expirationTime).Err(); err != nil {
		return err
	}
	return nil
}

// GetRedis fetches the value stored under key.
func GetRedis(key string) (string, error) {
	jsonData, err := Client.Get(context.Background(), key).Result()
	if err != nil {
		return "", err
	}
	return jsonData, nil
}

// DelRedis drops a cached key, used when doctor data changes.
func DelRedis(key string) error {
	return Client.Del(context.Background(), key).Err()
}
