package randomness

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/mealmax/pkg/metrics"
)

// DefaultURL serves one plain-text decimal fraction per request.
const DefaultURL = "https://www.random.org/decimal-fractions/?num=1&dec=2&col=1&format=plain&rnd=new"

// defaultTimeout bounds a single draw end to end.
const defaultTimeout = 5 * time.Second

// maxResponseBytes caps how much of the response body is read.
const maxResponseBytes = 64

// HTTPOption applies a configuration option to the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithURL sets the endpoint returning a plain-text decimal fraction.
func WithURL(url string) HTTPOption {
	return func(s *HTTPSource) {
		if url != "" {
			s.url = url
		}
	}
}

// WithTimeout bounds each draw.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// HTTPSource draws random fractions from a remote service. Any failure
// (transport, timeout, bad payload) is surfaced as ErrUnavailable; the
// draw is one-shot and never retried here.
type HTTPSource struct {
	url     string
	timeout time.Duration
	client  *http.Client
}

// NewHTTPSource creates an HTTP-backed randomness source.
func NewHTTPSource(opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:     DefaultURL,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// Next fetches one uniform value in [0,1).
func (s *HTTPSource) Next(ctx context.Context) (float64, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		metrics.RecordRandomnessError()
		return 0, fmt.Errorf("%w: build request: %v", ErrUnavailable, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		metrics.RecordRandomnessError()
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordRandomnessError()
		return 0, fmt.Errorf("%w: unexpected status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		metrics.RecordRandomnessError()
		return 0, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	text := strings.TrimSpace(string(body))
	value, err := strconv.ParseFloat(text, 64)
	if err != nil {
		metrics.RecordRandomnessError()
		return 0, fmt.Errorf("%w: invalid response %q", ErrUnavailable, text)
	}
	if value < 0 || value >= 1 {
		metrics.RecordRandomnessError()
		return 0, fmt.Errorf("%w: value %v out of [0,1)", ErrUnavailable, value)
	}

	metrics.RecordRandomnessDraw(float64(time.Since(start).Milliseconds()))
	return value, nil
}
