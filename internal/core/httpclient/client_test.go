package httpclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_Timeout(t *testing.T) {
	client := NewClient(5 * time.Second)
	assert.Equal(t, 5*time.Second, client.Timeout)

	_, ok := client.Transport.(*LoggingRoundTripper)
	assert.True(t, ok, "transport should be the logging round tripper")
}

func TestLoggingRoundTripper_PassesThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := NewClient(2 * time.Second)
	resp, err := client.Get(server.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusTeapot, resp.StatusCode)
}

func TestLoggingRoundTripper_PropagatesError(t *testing.T) {
	client := NewClient(500 * time.Millisecond)
	// Unroutable port on localhost
	_, err := client.Get("http://127.0.0.1:1")
	assert.Error(t, err)
}
