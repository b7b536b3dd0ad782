package foursquare

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/convenuence/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClient returns a client pointed at server with a retry delay short
// enough for tests.
func testClient(serverURL string, maxRetries int) *Client {
	return NewClient(Config{
		APIKey:     "test-api-key",
		BaseURL:    serverURL,
		MaxRetries: maxRetries,
		RetryDelay: 5 * time.Millisecond,
	})
}

// dropConnection hijacks and closes the connection so the client observes a
// transport-level failure instead of an HTTP response.
func dropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		panic("response writer does not support hijacking")
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		panic(err)
	}
	conn.Close()
}

func TestGetJSON_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-api-key", r.Header.Get("Authorization"))
		assert.Equal(t, "bar", r.URL.Query().Get("foo"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name":"Pizza Bar"}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	var dest struct {
		Name string `json:"name"`
	}
	err := client.getJSON(context.Background(), server.URL, url.Values{"foo": {"bar"}}, &dest)

	require.NoError(t, err)
	assert.Equal(t, "Pizza Bar", dest.Name)
}

func TestGetJSON_RetryBound(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		dropConnection(w)
	}))
	defer server.Close()

	const maxRetries = 2
	client := testClient(server.URL, maxRetries)
	var dest any
	err := client.getJSON(context.Background(), server.URL, nil, &dest)

	assert.ErrorIs(t, err, domain.ErrMaxRetriesExceeded)
	assert.Equal(t, maxRetries+1, attempts)
}

func TestGetJSON_RecoversAfterTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			dropConnection(w)
			return
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	var dest struct {
		OK bool `json:"ok"`
	}
	err := client.getJSON(context.Background(), server.URL, nil, &dest)

	require.NoError(t, err)
	assert.True(t, dest.OK)
	assert.Equal(t, 3, attempts)
}

func TestGetJSON_Non200IsTerminal(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid key"}`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	var dest any
	err := client.getJSON(context.Background(), server.URL, nil, &dest)

	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Equal(t, 1, attempts) // non-200 is never retried

	var invalidResponse *domain.InvalidResponseError
	require.ErrorAs(t, err, &invalidResponse)
	assert.Equal(t, http.StatusUnauthorized, invalidResponse.StatusCode)
	assert.Contains(t, invalidResponse.Body, "invalid key")
}

func TestGetJSON_DecodeFailureIsTerminal(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := testClient(server.URL, 3)
	var dest struct{}
	err := client.getJSON(context.Background(), server.URL, nil, &dest)

	assert.ErrorIs(t, err, domain.ErrDecoding)
	assert.Equal(t, 1, attempts) // decode failure is never retried
}

func TestGetJSON_BackoffBetweenAttempts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dropConnection(w)
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:     "test-api-key",
		BaseURL:    server.URL,
		MaxRetries: 2,
		RetryDelay: 50 * time.Millisecond,
	})

	start := time.Now()
	var dest any
	err := client.getJSON(context.Background(), server.URL, nil, &dest)
	elapsed := time.Since(start)

	assert.ErrorIs(t, err, domain.ErrMaxRetriesExceeded)
	// two retries -> two enforced delays
	assert.GreaterOrEqual(t, elapsed, 100*time.Millisecond)
}

func TestGetJSON_CancelledContextStopsRetrying(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dropConnection(w)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := testClient(server.URL, 3)
	var dest any
	err := client.getJSON(ctx, server.URL, nil, &dest)

	assert.ErrorIs(t, err, domain.ErrNetwork)
}

func TestDefaultRetryPolicy(t *testing.T) {
	client := NewClient(Config{APIKey: "key"})

	assert.Equal(t, defaultMaxRetries, client.maxRetries)
	assert.Equal(t, 1*time.Second, client.retryDelay)
	assert.Equal(t, defaultBaseURL, client.baseURL)
}
