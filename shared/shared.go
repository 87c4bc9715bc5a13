package shared

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"resalab/shared/cache"
	"resalab/shared/constant"
	"resalab/shared/dto"
	"resalab/shared/failure"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

const cacheKeySeparator = ":"

func BuildCacheKey(prefix string, parts ...string) string {
	return strings.Join(append([]string{prefix}, parts...), cacheKeySeparator)
}

func BuildCacheKeyWithQuery(prefix string, params dto.QueryParams) string {
	return BuildCacheKey(prefix, params.Encode())
}

// InvalidateCaches removes every key under prefix. Failures are logged, a stale entry expires with its TTL.
func InvalidateCaches(ctx context.Context, redisCache cache.RedisCache, prefix string) {
	if err := redisCache.Clear(ctx, prefix+cacheKeySeparator+constant.Asterix); err != nil {
		log.Error().Err(err).Str("prefix", prefix).Msg("failed to invalidate caches")
	}
}

// ReadCache loads key into value and reports a hit. Errors other than a miss are logged and count as a miss.
func ReadCache(ctx context.Context, redisCache cache.RedisCache, key string, value any) bool {
	err := redisCache.Get(ctx, key, value)
	if err == nil {
		return true
	}

	if !errors.Is(err, cache.Nil) {
		log.Warn().Err(err).Str("key", key).Msg("cache read failed, falling back to database")
	}

	return false
}

func WriteCache(ctx context.Context, redisCache cache.RedisCache, key string, value any, ttl int) {
	if err := redisCache.Save(ctx, key, value, ttl); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to save cache")
	}
}

func EvictCache(ctx context.Context, redisCache cache.RedisCache, key string) {
	if err := redisCache.Delete(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to evict cache")
	}
}

func FilterByID(id int64, fieldID, table string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    fieldID,
				Value:    id,
				Operator: dto.FilterOperatorEq,
				Table:    table,
			},
		},
	}
}

// ParseID parses a path identifier into a positive int64.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", failure.InvalidIDParam, raw)
	}

	return id, nil
}

// BuildLocation returns the path of a single resource, e.g. /api/reservations/1.
func BuildLocation(prefix, resource string, id int64) (string, error) {
	location, err := url.JoinPath(prefix, resource, strconv.FormatInt(id, 10))
	if err != nil {
		return "", fmt.Errorf("%w: %w", failure.ErrLocationBuild, err)
	}

	if !strings.HasPrefix(location, "/") {
		location = "/" + location
	}

	return location, nil
}
