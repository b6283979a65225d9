package layouts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"venuelayout/internal/shared/constants"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

func SetCache(ctx context.Context, redisClient *redis.Client, key string, value interface{}, ttl time.Duration) error {
	if redisClient == nil {
		return nil // Skip caching if Redis not available
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache data: %w", err)
	}

	return redisClient.Set(ctx, key, data, ttl).Err()
}

func GetCache(ctx context.Context, redisClient *redis.Client, key string, dest interface{}) error {
	if redisClient == nil {
		return fmt.Errorf("redis client not available")
	}

	data, err := redisClient.Get(ctx, key).Result()
	if err != nil {
		return err
	}

	return json.Unmarshal([]byte(data), dest)
}

func DeleteCache(ctx context.Context, redisClient *redis.Client, keys ...string) error {
	if redisClient == nil || len(keys) == 0 {
		return nil
	}

	return redisClient.Del(ctx, keys...).Err()
}

// InvalidateLayoutCache drops the cached layout and every cached listing.
func InvalidateLayoutCache(ctx context.Context, redisClient *redis.Client, layoutID *uuid.UUID) error {
	if redisClient == nil {
		return nil
	}

	if layoutID != nil {
		if err := DeleteCache(ctx, redisClient, constants.BuildLayoutDetailKey(layoutID.String())); err != nil {
			return err
		}
	}

	keys, err := redisClient.Keys(ctx, constants.PATTERN_INVALIDATE_LAYOUTS_LIST).Result()
	if err != nil {
		return err
	}
	return DeleteCache(ctx, redisClient, keys...)
}
