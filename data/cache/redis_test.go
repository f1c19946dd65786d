package cache

import (
	"context"
	"testing"
	"time"

	"github.com/KotFed0t/portfolio_dashboard/config"
	"github.com/KotFed0t/portfolio_dashboard/internal/model"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{}
	cfg.Cache.DividendExpiration = time.Hour
	return NewRedisCache(rdb, cfg), mr
}

func TestDividendMeta_RoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	last := time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC)
	next := time.Date(2026, 12, 12, 0, 0, 0, 0, time.UTC)
	err := c.SetDividendMetas(ctx, []model.DividendMeta{{
		Symbol:         "ko",
		AnnualPerShare: decimal.RequireFromString("2.04"),
		Frequency:      model.FrequencyQuarterly,
		Currency:       "USD",
		LastDate:       &last,
		NextDate:       &next,
		Source:         "finnhub",
	}})
	require.NoError(t, err)

	assert.True(t, mr.Exists("dividend:KO"))
	assert.Equal(t, time.Hour, mr.TTL("dividend:KO"))

	meta, err := c.GetDividendMeta(ctx, "KO")
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("2.04").Equal(meta.AnnualPerShare))
	assert.Equal(t, model.FrequencyQuarterly, meta.Frequency)
	require.NotNil(t, meta.NextDate)
	assert.True(t, next.Equal(*meta.NextDate))
}

func TestDividendMeta_Miss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	_, err := c.GetDividendMeta(ctx, "NOPE")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.SetDividendMetas(ctx, []model.DividendMeta{{Symbol: "T"}}))
	mr.FastForward(2 * time.Hour)

	_, err = c.GetDividendMeta(ctx, "T")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestDividendMeta_Corrupted(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("dividend:BAD", "{not json"))

	_, err := c.GetDividendMeta(context.Background(), "BAD")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
}
