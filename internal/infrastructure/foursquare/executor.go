package foursquare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"time"

	"github.com/convenuence/backend/internal/domain"
)

// getJSON executes one authenticated GET against the places API and decodes
// the body into dest. Transient transport failures are retried with a fixed
// backoff up to the client's retry budget; every other failure is terminal:
//   - non-200 status -> domain.InvalidResponseError, no retry
//   - undecodable body -> domain.ErrDecoding, no retry
//   - non-transient transport failure -> domain.ErrNetwork, no retry
//   - budget exhausted -> domain.ErrMaxRetriesExceeded
func (c *Client) getJSON(ctx context.Context, reqURL string, params url.Values, dest any) error {
	if len(params) > 0 {
		reqURL = reqURL + "?" + params.Encode()
	}

	var lastErr error
	for attempt := 1; attempt <= c.maxRetries+1; attempt++ {
		if attempt > 1 {
			log.Printf("[Foursquare] Transient failure (attempt %d/%d), retrying in %s: %v",
				attempt-1, c.maxRetries+1, c.retryDelay, lastErr)
			select {
			case <-time.After(c.retryDelay):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", domain.ErrNetwork, ctx.Err())
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", domain.ErrNetwork, err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}
		req.Header.Set("Authorization", c.apiKey)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if isTransient(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}

		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			// Connection dropped mid-body counts as a transport failure.
			if isTransient(err) {
				lastErr = err
				continue
			}
			return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}

		if resp.StatusCode != http.StatusOK {
			log.Printf("[Foursquare] GET %s -> status %d", req.URL.Path, resp.StatusCode)
			return &domain.InvalidResponseError{StatusCode: resp.StatusCode, Body: string(body)}
		}

		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("%w: %v", domain.ErrDecoding, err)
		}
		return nil
	}

	return fmt.Errorf("%w after %d attempts: %v", domain.ErrMaxRetriesExceeded, c.maxRetries+1, lastErr)
}

// isTransient reports whether a transport error is worth retrying: timeouts
// and dropped connections. Context cancellation is never retried.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ECONNABORTED),
		errors.Is(err, syscall.EPIPE):
		return true
	}
	return false
}
