package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billbook/internal/cache"
)

func TestReferenceKey(t *testing.T) {
	assert.Equal(t, "billbook:refs:IN", cache.ReferenceKey("IN"))
	assert.Equal(t, "billbook:refs:", cache.ReferenceKey(""))
}

func TestReferenceCache_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := cache.NewReferenceCache(client, time.Minute)
	refs, hit, err := c.Get(context.Background(), "IN")
	require.Error(t, err)
	assert.False(t, hit)
	assert.Nil(t, refs)
}
