package reward

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPClientRedeem(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("unexpected request %s %s", r.Method, r.Header.Get("Content-Type"))
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("bad body: %v", err)
		}
		_ = json.NewEncoder(w).Encode(Response{Coupon: "SORT-1234"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, 10, time.Second)
	coupon, err := c.Redeem(context.Background(), "  Player@Example.com ", 25)
	if err != nil {
		t.Fatalf("Redeem() failed: %v", err)
	}
	if coupon != "SORT-1234" {
		t.Errorf("coupon = %q", coupon)
	}
	if got.Email != "player@example.com" || got.Score != 25 {
		t.Errorf("server received %+v", got)
	}
}

func TestHTTPClientErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(Response{Error: "out of coupons"})
		case "/garbage":
			_, _ = w.Write([]byte("<html>"))
		case "/empty":
			_ = json.NewEncoder(w).Encode(Response{})
		}
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		url     string
		email   string
		score   int
		wantErr error
	}{
		{"disabled", "", "a@b.co", 100, ErrDisabled},
		{"bad email", srv.URL + "/fail", "not-an-email", 100, ErrInvalidEmail},
		{"below threshold", srv.URL + "/fail", "a@b.co", 5, ErrNotEligible},
		{"service error", srv.URL + "/fail", "a@b.co", 100, nil},
		{"garbage response", srv.URL + "/garbage", "a@b.co", 100, nil},
		{"no coupon", srv.URL + "/empty", "a@b.co", 100, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := NewHTTPClient(tc.url, 10, time.Second)
			coupon, err := c.Redeem(context.Background(), tc.email, tc.score)
			if err == nil {
				t.Fatalf("expected an error, got coupon %q", coupon)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("error = %v, expected %v", err, tc.wantErr)
			}
		})
	}
}

func TestHTTPClientHonorsContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	c := NewHTTPClient(srv.URL, 0, 5*time.Second)
	if _, err := c.Redeem(ctx, "a@b.co", 1); err == nil {
		t.Error("expected a context error")
	}
}

func TestStub(t *testing.T) {
	s := &Stub{Coupon: "FREE", Threshold: 10}

	if _, err := s.Redeem(context.Background(), "x@y.z", 3); !errors.Is(err, ErrNotEligible) {
		t.Errorf("expected ErrNotEligible, got %v", err)
	}
	coupon, err := s.Redeem(context.Background(), "X@Y.Z", 30)
	if err != nil || coupon != "FREE" {
		t.Errorf("Redeem() = %q, %v", coupon, err)
	}
	if calls := s.Calls(); len(calls) != 1 || calls[0].Email != "x@y.z" {
		t.Errorf("unexpected calls %+v", calls)
	}

	s.Err = errors.New("offline")
	if _, err := s.Redeem(context.Background(), "x@y.z", 30); err == nil {
		t.Error("expected the configured error")
	}
}
