// Package warehouse provides access to PEP 691 compliant package indexes,
// with a focus on how pypi.org specifically encodes metadata.
//
// The Client wraps the JSON API endpoints:
//
//	/pypi/{project}/json           project metadata and known versions
//	/pypi/{project}/{version}/json release metadata and artifact listing
//	/simple/                       index root (PEP 691)
//
// All methods are safe for concurrent use by multiple goroutines.
package warehouse

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	goversion "github.com/hashicorp/go-version"

	"github.com/pipspect/pipspect/pkg/cache"
	"github.com/pipspect/pipspect/pkg/wheel"
)

// DefaultIndexURL is the canonical Python package index.
const DefaultIndexURL = "https://pypi.org"

const httpTimeout = 10 * time.Second

// ErrInvalidVersion is returned when a version string does not parse.
var ErrInvalidVersion = errors.New("invalid version")

// Client provides access to a package index with caching and automatic
// retries for transient failures.
type Client struct {
	http     *http.Client
	cache    cache.Cache
	ttl      time.Duration
	indexURL string
}

// NewClient creates a Client for the index at indexURL.
//
// Parameters:
//   - indexURL: index base URL without a trailing slash (use [DefaultIndexURL] for pypi.org)
//   - backend: cache backend for HTTP response caching (use cache.NewNullCache() for no caching)
//   - ttl: how long responses are cached (typical: 1-24 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(indexURL string, backend cache.Cache, ttl time.Duration) *Client {
	if indexURL == "" {
		indexURL = DefaultIndexURL
	}
	return &Client{
		http:     &http.Client{Timeout: httpTimeout},
		cache:    backend,
		ttl:      ttl,
		indexURL: indexURL,
	}
}

// Project retrieves project metadata from /pypi/{name}/json.
//
// The name is normalized automatically. Returns [cache.ErrNotFound] if the
// project doesn't exist and [cache.ErrNetwork] for HTTP failures.
func (c *Client) Project(ctx context.Context, name string) (*Project, error) {
	normalized, err := wheel.NormalizeName(name)
	if err != nil {
		return nil, err
	}

	var p Project
	url := fmt.Sprintf("%s/pypi/%s/json", c.indexURL, normalized)
	if err := c.getJSON(ctx, url, nil, &p); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, fmt.Errorf("%w: project %s", err, normalized)
		}
		return nil, err
	}
	return &p, nil
}

// Release retrieves release metadata from /pypi/{name}/{version}/json.
//
// The name is normalized and the version validated before the request.
// Returns [cache.ErrNotFound] if the project or version doesn't exist.
func (c *Client) Release(ctx context.Context, name, version string) (*Release, error) {
	normalized, err := wheel.NormalizeName(name)
	if err != nil {
		return nil, err
	}
	ver, err := goversion.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}

	var r Release
	url := fmt.Sprintf("%s/pypi/%s/%s/json", c.indexURL, normalized, ver.Original())
	if err := c.getJSON(ctx, url, nil, &r); err != nil {
		if errors.Is(err, cache.ErrNotFound) {
			return nil, fmt.Errorf("%w: release %s %s", err, normalized, ver.Original())
		}
		return nil, err
	}
	return &r, nil
}

// Fetch downloads an artifact and returns its raw bytes. Responses are
// cached like JSON requests; wheels are immutable once published so the
// TTL mostly guards against cache growth.
func (c *Client) Fetch(ctx context.Context, url string) ([]byte, error) {
	return c.getBytes(ctx, url, nil)
}

// getJSON retrieves a URL with caching and decodes the response into v.
func (c *Client) getJSON(ctx context.Context, url string, headers map[string]string, v any) error {
	body, err := c.getBytes(ctx, url, headers)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, v)
}

// getBytes retrieves a URL via the cache, falling back to a retried HTTP
// GET on a miss.
func (c *Client) getBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	key := cache.Key("warehouse", url)
	if data, hit, _ := c.cache.Get(ctx, key); hit {
		return data, nil
	}

	var body []byte
	err := cache.RetryWithBackoff(ctx, func() error {
		data, err := c.doRequest(ctx, url, headers)
		if err != nil {
			return err
		}
		body = data
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = c.cache.Set(ctx, key, body, c.ttl)
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, cache.Retryable(fmt.Errorf("%w: %v", cache.ErrNetwork, err))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(resp.Body)
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return cache.ErrNotFound
	case code >= 500:
		return cache.Retryable(fmt.Errorf("%w: status %d", cache.ErrNetwork, code))
	default:
		return fmt.Errorf("%w: status %d", cache.ErrNetwork, code)
	}
}
