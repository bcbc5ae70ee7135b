package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	errx "github.com/wayfarer-core-poc/server/internal/core/error"
	"github.com/wayfarer-core-poc/server/internal/planner/model"
	logx "github.com/wayfarer-core-poc/server/pkg/logger"
)

// RedisPlanRepository stores the whole travel document as one JSON string under a single key.
type RedisPlanRepository struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

// NewRedisPlanRepository uses key for the document; a zero ttl keeps it forever.
func NewRedisPlanRepository(rdb redis.Cmdable, key string, ttl time.Duration) *RedisPlanRepository {
	return &RedisPlanRepository{rdb: rdb, key: key, ttl: ttl}
}

func (r *RedisPlanRepository) Load(ctx context.Context) (*model.TravelData, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewTravelData(), nil
	}
	if err != nil {
		logx.Error().Err(err).Str("key", r.key).Msg("failed to load travel data from redis")
		return nil, errx.WrapRedis(err)
	}

	data := model.NewTravelData()
	if err := json.Unmarshal(raw, data); err != nil {
		logx.Error().Err(err).Str("key", r.key).Msg("failed to unmarshal travel data")
		return nil, errx.WrapStorage(fmt.Errorf("decode %s: %w", r.key, err))
	}
	return normalize(data), nil
}

func (r *RedisPlanRepository) Save(ctx context.Context, data *model.TravelData) error {
	b, err := json.Marshal(data)
	if err != nil {
		logx.Error().Err(err).Str("key", r.key).Msg("failed to marshal travel data")
		return errx.WrapStorage(fmt.Errorf("encode travel data: %w", err))
	}
	if err := r.rdb.Set(ctx, r.key, b, r.ttl).Err(); err != nil {
		logx.Error().Err(err).Str("key", r.key).Msg("failed to save travel data to redis")
		return errx.WrapRedis(err)
	}
	return nil
}

var _ model.PlanRepository = (*RedisPlanRepository)(nil)
