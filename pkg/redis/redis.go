package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// IRedis is the token-revocation set backing logout. Keys are token jtis,
// values are the subject that revoked them, TTL equals the token's
// remaining lifetime so the set cleans itself up.
type IRedis interface {
	RevokeToken(ctx context.Context, jti string, subject string, ttl time.Duration) error
	IsTokenRevoked(ctx context.Context, jti string) (bool, error)
}

type redisClient struct {
	client *redis.Client
}

func New() IRedis {
	db, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	redisAddr := os.Getenv("REDIS_ADDRESS")
	redisPassword := os.Getenv("REDIS_PASSWORD")

	logrus.Info(fmt.Sprintf("Connecting to Redis at %s...", redisAddr))

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		logrus.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		logrus.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client}
}

func revocationKey(jti string) string {
	return "revoked_token:" + jti
}

func (r *redisClient) RevokeToken(ctx context.Context, jti string, subject string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired, nothing to revoke.
		return nil
	}

	if err := r.client.Set(ctx, revocationKey(jti), subject, ttl).Err(); err != nil {
		logrus.Error(fmt.Sprintf("Error revoking token %s: %v", jti, err))
		return err
	}
	return nil
}

func (r *redisClient) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	_, err := r.client.Get(ctx, revocationKey(jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		logrus.Error(fmt.Sprintf("Error checking revocation for token %s: %v", jti, err))
		return false, err
	}
	return true, nil
}
