package redis

import (
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnects(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := Config{URL: "redis://" + mr.Addr() + "/0", ReadTimeout: 1, WriteTimeout: 1, DialTimeout: 1}

	client, err := cfg.New()
	require.NoError(t, err)
	defer client.Close()
	assert.Equal(t, mr.Addr(), client.Options().Addr)
}

func TestNewRequiresURL(t *testing.T) {
	_, err := (&Config{}).New()
	assert.EqualError(t, err, "REDIS_URL is not set")
}

func TestNewRejectsBadURL(t *testing.T) {
	_, err := (&Config{URL: "http://not-redis"}).New()
	assert.Error(t, err)
}
