// Package httpclient provides an outbound HTTP client with connection
// pooling and a circuit breaker for calls to external collaborators.
package httpclient

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
)

// ErrCircuitOpen is returned when the breaker rejects a request.
var ErrCircuitOpen = errors.New("circuit breaker open")

// Config holds client configuration.
type Config struct {
	Timeout         time.Duration
	MaxConnsPerHost int

	// Breaker settings. The breaker trips when FailureRatio of the last
	// window is failures and at least MinRequests were observed.
	BreakerName    string
	BreakerTimeout time.Duration
	FailureRatio   float64
	MinRequests    uint32
}

// DefaultConfig returns sensible defaults.
func DefaultConfig(name string) Config {
	return Config{
		Timeout:         10 * time.Second,
		MaxConnsPerHost: 100,
		BreakerName:     name,
		BreakerTimeout:  30 * time.Second,
		FailureRatio:    0.5,
		MinRequests:     5,
	}
}

// Client wraps http.Client with a circuit breaker.
type Client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*http.Response]
}

// New creates a circuit-broken HTTP client.
func New(cfg Config) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: cfg.MaxConnsPerHost,
		MaxConnsPerHost:     cfg.MaxConnsPerHost,
		IdleConnTimeout:     90 * time.Second,
	}

	settings := gobreaker.Settings{
		Name:    cfg.BreakerName,
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			ratio := float64(counts.TotalFailures) / float64(counts.Requests)
			return ratio >= cfg.FailureRatio
		},
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
		},
		breaker: gobreaker.NewCircuitBreaker[*http.Response](settings),
	}
}

// Do executes the request through the circuit breaker. Responses with
// status >= 500 count as failures.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	req = req.WithContext(ctx)

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, fmt.Errorf("upstream returned %d", resp.StatusCode)
		}
		return resp, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%w: %w", ErrCircuitOpen, err)
		}
		// A 5xx response is returned alongside the error so callers can
		// inspect it; they own closing the body.
		return resp, err
	}

	return resp, nil
}
