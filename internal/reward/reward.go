// Package reward submits qualifying scores to an external coupon service.
// Failures never affect a run; hosts show them as messages.
package reward

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/mail"
	"strings"
	"sync"
	"time"
)

var (
	// ErrInvalidEmail is returned for addresses that do not parse.
	ErrInvalidEmail = errors.New("reward: invalid email address")
	// ErrNotEligible is returned when the score is below the threshold.
	ErrNotEligible = errors.New("reward: score below reward threshold")
	// ErrDisabled is returned when no reward service is configured.
	ErrDisabled = errors.New("reward: service not configured")
)

// Client redeems a score for a coupon code.
type Client interface {
	Redeem(ctx context.Context, email string, score int) (string, error)
}

// Request is the JSON body sent to the reward service.
type Request struct {
	Email string `json:"email"`
	Score int    `json:"score"`
}

// Response is the JSON body returned by the reward service.
type Response struct {
	Coupon string `json:"coupon"`
	Error  string `json:"error,omitempty"`
}

// HTTPClient posts redemption requests to a reward service.
type HTTPClient struct {
	url       string
	threshold int
	http      *http.Client
}

// NewHTTPClient creates a client for the service at url. Scores below
// threshold are rejected locally without a request.
func NewHTTPClient(url string, threshold int, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		url:       url,
		threshold: threshold,
		http:      &http.Client{Timeout: timeout},
	}
}

// Redeem submits the email and score and returns the coupon code.
func (c *HTTPClient) Redeem(ctx context.Context, email string, score int) (string, error) {
	if c.url == "" {
		return "", ErrDisabled
	}
	addr, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	if score < c.threshold {
		return "", ErrNotEligible
	}

	body, err := json.Marshal(Request{Email: addr, Score: score})
	if err != nil {
		return "", fmt.Errorf("reward: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("reward: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("reward: submit: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return "", fmt.Errorf("reward: read response: %w", err)
	}

	var out Response
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("reward: decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		if out.Error != "" {
			return "", fmt.Errorf("reward: service error (status %d): %s", resp.StatusCode, out.Error)
		}
		return "", fmt.Errorf("reward: service error (status %d)", resp.StatusCode)
	}
	if out.Coupon == "" {
		return "", errors.New("reward: response has no coupon")
	}
	return out.Coupon, nil
}

// normalizeEmail validates an address and returns it trimmed and lower-cased.
func normalizeEmail(email string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Name != "" {
		return "", ErrInvalidEmail
	}
	return strings.ToLower(addr.Address), nil
}

// Stub is an in-memory Client for tests and offline play.
type Stub struct {
	Coupon    string
	Err       error
	Threshold int

	mu    sync.Mutex
	calls []Request
}

// Redeem records the call and returns the configured coupon or error.
func (s *Stub) Redeem(_ context.Context, email string, score int) (string, error) {
	addr, err := normalizeEmail(email)
	if err != nil {
		return "", err
	}
	if score < s.Threshold {
		return "", ErrNotEligible
	}

	s.mu.Lock()
	s.calls = append(s.calls, Request{Email: addr, Score: score})
	s.mu.Unlock()

	if s.Err != nil {
		return "", s.Err
	}
	return s.Coupon, nil
}

// Calls returns the requests received so far.
func (s *Stub) Calls() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.calls))
	copy(out, s.calls)
	return out
}
