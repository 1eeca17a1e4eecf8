package natsconn

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptions_Defaults(t *testing.T) {
	o := Options{}.withDefaults()
	assert.Equal(t, defaultURL, o.URL)
	assert.Equal(t, 5, o.MaxReconnects)
	assert.Equal(t, 2*time.Second, o.ReconnectWait)
	assert.NotNil(t, o.Logger)
}

func TestOptions_KeepsExplicitValues(t *testing.T) {
	o := Options{URL: "nats://localhost:4222", MaxReconnects: 9, ReconnectWait: time.Second}.withDefaults()
	assert.Equal(t, "nats://localhost:4222", o.URL)
	assert.Equal(t, 9, o.MaxReconnects)
	assert.Equal(t, time.Second, o.ReconnectWait)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(Options{
		URL:           "nats://127.0.0.1:19999",
		ReconnectWait: 10 * time.Millisecond,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nats connect nats://127.0.0.1:19999")
}
