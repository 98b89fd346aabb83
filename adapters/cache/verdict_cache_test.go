package cache

import (
	"context"
	"testing"
	"time"

	"goverdict/domain/core"
	"goverdict/domain/verdict"
	"goverdict/internal/errors"
	"goverdict/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestVerdictCache_RoundTrip(t *testing.T) {
	mr, client := newTestCache(t)
	c := NewVerdictCache(client, time.Hour, "test:")
	ctx := context.Background()

	record := &models.VerdictRecord{
		ID:          core.NewVerdictID(),
		Mode:        models.ModeFull,
		Fingerprint: "fp1",
		ConfigHash:  "cfg1",
		Verdict:     verdict.ViabilityVerdict{OverallScore: 7.3, Verdict: verdict.TierMixed},
	}

	miss, err := c.Get(ctx, "fp1", "cfg1")
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.Set(ctx, record))
	assert.True(t, mr.Exists("test:cfg1:fp1"))
	assert.Equal(t, time.Hour, mr.TTL("test:cfg1:fp1"))

	hit, err := c.Get(ctx, "fp1", "cfg1")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.Equal(t, record.ID, hit.ID)
	assert.Equal(t, 7.3, hit.Verdict.OverallScore)

	other, err := c.Get(ctx, "fp1", "cfg2")
	require.NoError(t, err)
	assert.Nil(t, other, "a different threshold set must miss")
}

func TestVerdictCache_Expires(t *testing.T) {
	mr, client := newTestCache(t)
	c := NewVerdictCache(client, time.Minute, "")
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, &models.VerdictRecord{Fingerprint: "fp", ConfigHash: "cfg"}))
	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, "fp", "cfg")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestVerdictCache_CorruptEntry(t *testing.T) {
	mr, client := newTestCache(t)
	c := NewVerdictCache(client, time.Minute, "v:")
	require.NoError(t, mr.Set("v:cfg:fp", "{not json"))

	_, err := c.Get(context.Background(), "fp", "cfg")
	require.Error(t, err)
	assert.Equal(t, errors.CodeCacheError, errors.GetCode(err))
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	client.Close()

	_, err = NewClient(context.Background(), "not-a-url")
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
