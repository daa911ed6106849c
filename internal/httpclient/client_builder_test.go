package httpclient

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClientBuilder(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).
		WithTimeout(15 * time.Second).
		WithUserAgent("test-agent").
		WithFollowRedirects(false).
		WithInsecureSkipVerify(true).
		WithMaxRedirects(5).
		WithHTTP2(false).
		WithConnectionPooling(50, 5, 20).
		Build()
	require.NoError(t, err)

	cfg := client.Config()
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.False(t, cfg.FollowRedirects)
	assert.True(t, cfg.InsecureSkipVerify)
	assert.Equal(t, 5, cfg.MaxRedirects)
	assert.Equal(t, 20, client.Transport().MaxConnsPerHost)
	assert.True(t, client.Transport().TLSClientConfig.InsecureSkipVerify)
	assert.Nil(t, client.retryHandler)
}

func TestHTTPClientBuilder_Defaults(t *testing.T) {
	client, err := NewHTTPClientBuilder(zerolog.Nop()).Build()
	require.NoError(t, err)

	cfg := client.Config()
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.FollowRedirects)
	assert.Zero(t, cfg.Retry.MaxRetries)
}
