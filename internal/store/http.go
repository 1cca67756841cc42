package store

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// HTTPOption configures an HTTPStore.
type HTTPOption func(*httpOptions)

type httpOptions struct {
	client *http.Client
	logger *zap.Logger
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(o *httpOptions) {
		o.client = client
	}
}

// WithHTTPLogger sets the logger used for failed lookups.
func WithHTTPLogger(logger *zap.Logger) HTTPOption {
	return func(o *httpOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// HTTPStore reads values with GET <base>/<key>. Only a 200 response counts as
// a value; its body is returned as-is.
type HTTPStore struct {
	client *resty.Client
	logger *zap.Logger
}

// NewHTTPStore constructs an HTTPStore rooted at baseURL.
func NewHTTPStore(baseURL string, opts ...HTTPOption) (*HTTPStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidBaseURL, baseURL)
	}

	o := httpOptions{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	client := resty.New()
	if o.client != nil {
		client = resty.NewWithClient(o.client)
	}
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetLogger(o.logger.Sugar())

	return &HTTPStore{
		client: client,
		logger: o.logger,
	}, nil
}

// Get fetches key from the remote store.
func (s *HTTPStore) Get(ctx context.Context, key string) (string, bool) {
	resp, err := s.client.R().
		SetContext(ctx).
		SetPathParam("key", key).
		Get("/{key}")
	if err != nil {
		s.logger.Debug("store request failed", zap.String("key", key), zap.Error(err))
		return "", false
	}
	if resp.StatusCode() != http.StatusOK {
		s.logger.Debug("store request rejected",
			zap.String("key", key),
			zap.Int("status", resp.StatusCode()),
		)
		return "", false
	}
	return resp.String(), true
}
