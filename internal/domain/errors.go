package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNetwork is returned when a request fails at the transport level
	ErrNetwork = errors.New("network request failed")

	// ErrInvalidResponse is returned when the places API answers with a non-200 status
	ErrInvalidResponse = errors.New("invalid response from places API")

	// ErrDecoding is returned when a response body does not match the expected schema
	ErrDecoding = errors.New("failed to decode places API response")

	// ErrMaxRetriesExceeded is returned when the transient-failure retry budget runs out
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")

	// ErrVenueAPI is the generic bucket for places API failures that carry no transport detail
	ErrVenueAPI = errors.New("places API request failed")

	// ErrCacheMiss is returned when no search-result index exists for a query
	ErrCacheMiss = errors.New("cache miss")

	// ErrSaveFailed is returned when the local store or serialization fails on write
	ErrSaveFailed = errors.New("persistence save failed")

	// ErrFetchFailed is returned when the local store or deserialization fails on read
	ErrFetchFailed = errors.New("persistence fetch failed")

	// ErrDeleteFailed is returned when the local store fails on delete
	ErrDeleteFailed = errors.New("persistence delete failed")
)

const maxBodyPreview = 800

// InvalidResponseError carries the HTTP status and raw body of a non-200 answer.
// It unwraps to ErrInvalidResponse so callers can classify with errors.Is.
type InvalidResponseError struct {
	StatusCode int
	Body       string
}

func (e *InvalidResponseError) Error() string {
	msg := fmt.Sprintf("%s: status %d", ErrInvalidResponse.Error(), e.StatusCode)
	if body := compactBodyPreview(e.Body); body != "" {
		msg += fmt.Sprintf(", body %q", body)
	}
	return msg
}

func (e *InvalidResponseError) Unwrap() error {
	return ErrInvalidResponse
}

func compactBodyPreview(body string) string {
	body = strings.Join(strings.Fields(body), " ")
	if len(body) > maxBodyPreview {
		return body[:maxBodyPreview] + "..."
	}
	return body
}
