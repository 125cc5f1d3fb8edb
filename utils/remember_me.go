// utils/remember_me.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RememberedSession is the payload stored in Redis for "Remember Me"
// logins.
type RememberedSession struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

const rememberMeKeyPrefix = "remember_me:"

// GenerateRememberMeToken generates an opaque token for "Remember Me".
func GenerateRememberMeToken() string {
	return uuid.NewString()
}

// StoreRememberedSession stores the session in Redis with expiration.
func StoreRememberedSession(redisClient *redis.Client, token string, session RememberedSession, expiration time.Duration) error {
	if redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	key := rememberMeKeyPrefix + token
	return redisClient.Set(context.Background(), key, data, expiration).Err()
}

// RetrieveRememberedSession retrieves a stored session from Redis.
func RetrieveRememberedSession(redisClient *redis.Client, token string) (*RememberedSession, error) {
	if redisClient == nil {
		return nil, fmt.Errorf("redis client not available")
	}

	ctx := context.Background()
	key := rememberMeKeyPrefix + token

	data, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("remember me token not found or expired")
		}
		return nil, err
	}

	var session RememberedSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		redisClient.Del(ctx, key)
		return nil, fmt.Errorf("remember me token expired")
	}

	return &session, nil
}

// RemoveRememberedSession deletes a stored session from Redis.
func RemoveRememberedSession(redisClient *redis.Client, token string) error {
	if redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	return redisClient.Del(context.Background(), rememberMeKeyPrefix+token).Err()
}
