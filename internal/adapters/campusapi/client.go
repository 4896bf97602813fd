package campusapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"campus-dashboard/internal/domain/records"
	"campus-dashboard/internal/platform/httpclient"
)

var (
	ErrNotConfigured = errors.New("campus api client not configured")
	ErrUnauthorized  = errors.New("campus api unauthorized")
	ErrUpstream      = errors.New("campus api upstream error")
)

// Config del cliente del backend del campus.
// BaseURL y APIKey normalmente vienen de env (CAMPUS_API_URL, CAMPUS_API_KEY).
type Config struct {
	BaseURL string
	APIKey  string

	// Si está vacío, se usa "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration

	// Paths por colección. Vacío => "/<collection>".
	Paths map[records.Collection]string
}

// Client implementa campus.Source sobre HTTP.
type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
	paths        map[records.Collection]string
}

func NewClient(cfg Config) (*Client, error) {
	h := strings.TrimSpace(cfg.APIKeyHeader)
	if h == "" {
		h = "X-Api-Key"
	}

	hc, err := httpclient.NewWithBaseURL(cfg.BaseURL, cfg.Timeout)
	if err != nil {
		return nil, err
	}

	paths := make(map[records.Collection]string, len(records.Collections))
	for _, c := range records.Collections {
		p := strings.TrimSpace(cfg.Paths[c])
		if p == "" {
			p = "/" + string(c)
		}
		paths[c] = p
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: h,
		paths:        paths,
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.http != nil && c.http.BaseURL != ""
}

// Fetch trae el payload crudo de una colección. No valida la forma:
// eso lo hace records.Decode* del lado del dominio.
func (c *Client) Fetch(ctx context.Context, col records.Collection) ([]byte, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}
	path, ok := c.paths[col]
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", ErrUpstream, col)
	}

	var headers map[string]string
	if c.apiKey != "" {
		headers = map[string]string{c.apiKeyHeader: c.apiKey}
	}

	raw, err := c.http.Get(ctx, path, headers)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			switch httpErr.StatusCode {
			case http.StatusUnauthorized, http.StatusForbidden:
				return nil, ErrUnauthorized
			default:
				return nil, fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	return raw, nil
}
