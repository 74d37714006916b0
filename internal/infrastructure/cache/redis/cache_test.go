package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brickfield/sitecast/internal/infrastructure/monitoring/logging"
	"github.com/brickfield/sitecast/pkg/errors"
)

func TestFullKeyUsesPrefix(t *testing.T) {
	c := NewCache(&Client{logger: logging.NewNop()}, logging.NewNop(), WithPrefix("sc:test:")).(*resultCache)
	assert.Equal(t, "sc:test:forecast:abc", c.fullKey("forecast:abc"))
}

func TestJitterTTLStaysWithinTenPercent(t *testing.T) {
	c := NewCache(&Client{logger: logging.NewNop()}, logging.NewNop()).(*resultCache)
	base := 10 * time.Minute
	for i := 0; i < 200; i++ {
		got := c.jitterTTL(base)
		assert.GreaterOrEqual(t, got, 9*time.Minute)
		assert.LessOrEqual(t, got, 11*time.Minute)
	}
	assert.Equal(t, time.Duration(0), c.jitterTTL(0))
}

func TestNoopCacheAlwaysMisses(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()

	var out string
	err := c.Get(ctx, "anything", &out)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	require.NoError(t, c.Set(ctx, "anything", "v", time.Minute))
	err = c.Get(ctx, "anything", &out)
	assert.Error(t, err)
}

func TestNoopGetOrSetRunsLoaderEveryTime(t *testing.T) {
	ctx := context.Background()
	c := NewNoop()

	calls := 0
	loader := func(context.Context) (interface{}, error) {
		calls++
		return map[string]float64{"january2025": 3333.33}, nil
	}

	for i := 0; i < 3; i++ {
		var out map[string]float64
		require.NoError(t, c.GetOrSet(ctx, "k", &out, time.Minute, loader))
		assert.Equal(t, 3333.33, out["january2025"])
	}
	assert.Equal(t, 3, calls)
}

func TestNoopGetOrSetPropagatesLoaderError(t *testing.T) {
	c := NewNoop()
	want := errors.New(errors.ErrCodeProjectNotFound, "project not found")

	var out struct{}
	err := c.GetOrSet(context.Background(), "k", &out, time.Minute, func(context.Context) (interface{}, error) {
		return nil, want
	})
	assert.True(t, errors.IsCode(err, errors.ErrCodeProjectNotFound))
}

func TestAssignJSONCopies(t *testing.T) {
	src := map[string]int{"a": 1}
	var dst map[string]int
	require.NoError(t, assignJSON(src, &dst))
	dst["a"] = 99
	assert.Equal(t, 1, src["a"])
}
