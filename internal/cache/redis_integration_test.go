//go:build integration

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jonathan/job-assistant/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration_RedisCacheRoundTrip(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("TEST_REDIS_URL not set, skipping integration test")
	}

	ctx := context.Background()
	client, err := NewRedisClient(ctx, redisURL)
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	c := NewRedisCache(client, time.Minute)
	url := "https://example.com/jobs/integration"
	t.Cleanup(func() { _ = c.Delete(ctx, url) })

	_, ok, err := c.Get(ctx, url)
	require.NoError(t, err)
	assert.False(t, ok)

	posting := &types.JobPosting{Success: true, Content: "Build APIs", Title: "Backend", URL: url}
	require.NoError(t, c.Set(ctx, posting))

	got, ok, err := c.Get(ctx, url)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, posting, got)
}
