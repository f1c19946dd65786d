package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/KotFed0t/portfolio_dashboard/utils"
	"github.com/redis/go-redis/v9"
)

var ErrCacheMiss = errors.New("cache miss")

const dividendKeyPrefix = "dividend:"

type RedisCache struct {
	redis *redis.Client
	cfg   *config.Config
}

func NewRedisCache(redisClient *redis.Client, cfg *config.Config) *RedisCache {
	return &RedisCache{redis: redisClient, cfg: cfg}
}

func dividendKey(symbol string) string {
	return dividendKeyPrefix + strings.ToUpper(strings.TrimSpace(symbol))
}

// SetDividendMetas stores metas in one pipeline round trip.
func (r *RedisCache) SetDividendMetas(ctx context.Context, metas []model.DividendMeta) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "RedisCache.SetDividendMetas"
	slog.Debug("SetDividendMetas start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("count", len(metas)))

	if len(metas) == 0 {
		return nil
	}

	pipe := r.redis.Pipeline()
	for _, meta := range metas {
		metaJson, err := json.Marshal(meta)
		if err != nil {
			slog.Error(
				"can't marshall dividend meta",
				slog.String("rqID", rqID),
				slog.String("op", op),
				slog.String("err", err.Error()),
				slog.String("symbol", meta.Symbol),
			)
			return errors.New("can't marshall dividend meta")
		}

		pipe.Set(ctx, dividendKey(meta.Symbol), metaJson, r.cfg.Cache.DividendExpiration)
	}

	_, err := pipe.Exec(ctx)
	if err != nil {
		slog.Error("failed on pipe.Exec", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	slog.Debug("SetDividendMetas completed", slog.String("rqID", rqID), slog.String("op", op))

	return nil
}

func (r *RedisCache) GetDividendMeta(ctx context.Context, symbol string) (model.DividendMeta, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "RedisCache.GetDividendMeta"
	slog.Debug("GetDividendMeta start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))

	res, err := r.redis.Get(ctx, dividendKey(symbol)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return model.DividendMeta{}, ErrCacheMiss
		}
		slog.Error("failed on redis.Get", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()), slog.String("symbol", symbol))
		return model.DividendMeta{}, err
	}

	meta := model.DividendMeta{}
	err = json.Unmarshal([]byte(res), &meta)
	if err != nil {
		slog.Error(
			"can't unmarshall dividend meta",
			slog.String("rqID", rqID),
			slog.String("op", op),
			slog.String("err", err.Error()),
			slog.String("resultFromRedis", res),
		)
		return model.DividendMeta{}, errors.New("can't unmarshall dividend meta")
	}

	slog.Debug("GetDividendMeta finished", slog.String("rqID", rqID), slog.String("op", op))

	return meta, nil
}
