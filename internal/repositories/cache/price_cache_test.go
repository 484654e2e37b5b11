package cache_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/dual_price_app/internal/core/domain"
	"github.com/SscSPs/dual_price_app/internal/repositories/cache"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCache(t *testing.T) (*cache.RedisPriceCache, *miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewRedisPriceCache(client, time.Minute), mr, client
}

func TestFetchJSON_CachesLoaderResult(t *testing.T) {
	c, mr, _ := newCache(t)
	ctx := context.Background()
	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return domain.ProductPrice{ProductID: 1, Price: "25.00", Currency: domain.BGN, SecondaryPrice: "12.78", SecondaryCurrency: domain.EUR}, nil
	}

	var first, second domain.ProductPrice
	require.NoError(t, c.FetchJSON(ctx, "price:BGN:smart:1", &first, loader))
	require.NoError(t, c.FetchJSON(ctx, "price:BGN:smart:1", &second, loader))

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.Equal(t, "12.78", second.SecondaryPrice)
	assert.True(t, mr.Exists("dpa:price:BGN:smart:1:v1"))
	assert.Equal(t, time.Minute, mr.TTL("dpa:price:BGN:smart:1:v1"))
}

func TestFetchJSON_LoaderErrorIsNotCached(t *testing.T) {
	c, mr, _ := newCache(t)
	loaderErr := errors.New("boom")

	var dest domain.ProductPrice
	err := c.FetchJSON(context.Background(), "price:BGN:smart:2", &dest, func(context.Context) (any, error) {
		return nil, loaderErr
	})

	assert.ErrorIs(t, err, loaderErr)
	assert.False(t, mr.Exists("dpa:price:BGN:smart:2:v1"))
}

func TestFetchJSON_RequiresLoader(t *testing.T) {
	c, _, _ := newCache(t)
	var dest domain.ProductPrice
	assert.Error(t, c.FetchJSON(context.Background(), "k", &dest, nil))
}

func TestInvalidate_BumpsVersionAndPublishes(t *testing.T) {
	c, _, client := newCache(t)
	ctx := context.Background()

	sub := client.Subscribe(ctx, cache.BumpChannel)
	defer sub.Close()
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	calls := 0
	loader := func(context.Context) (any, error) {
		calls++
		return map[string]int{"calls": calls}, nil
	}
	var got map[string]int
	require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))

	require.NoError(t, c.Invalidate(ctx))

	ver, err := c.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), ver)

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2", msg.Payload)

	got = nil
	require.NoError(t, c.FetchJSON(ctx, "k", &got, loader))
	assert.Equal(t, 2, calls)
	assert.Equal(t, 2, got["calls"])
}

func TestFetchJSON_RedisDown(t *testing.T) {
	c, mr, _ := newCache(t)
	mr.Close()

	var dest domain.ProductPrice
	err := c.FetchJSON(context.Background(), "k", &dest, func(context.Context) (any, error) {
		return domain.ProductPrice{}, nil
	})
	assert.Error(t, err)
}
