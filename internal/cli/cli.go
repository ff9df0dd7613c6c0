package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/pipspect/pipspect/pkg/cache"
	"github.com/pipspect/pipspect/pkg/warehouse"
)

const (
	// appName is the application name used for directories and display.
	appName = "pipspect"

	// indexEnv overrides the package index base URL.
	indexEnv = "PIPSPECT_INDEX_URL"

	// cacheTTL is how long index responses stay cached.
	cacheTTL = time.Hour
)

// rootFlags holds the persistent flag values shared by all commands.
type rootFlags struct {
	verbose  int
	noCache  bool
	redis    string
	indexURL string
}

// client builds a warehouse client from the persistent flags.
// The cache backend degrades to a null cache if the preferred backend
// cannot be created; lookups still work, just uncached.
func (f *rootFlags) client(ctx context.Context) (*warehouse.Client, error) {
	backend, err := newCache(ctx, f.noCache, f.redis)
	if err != nil {
		return nil, err
	}
	return warehouse.NewClient(f.index(), backend, cacheTTL), nil
}

// index resolves the package index base URL: flag, then environment,
// then pypi.org.
func (f *rootFlags) index() string {
	if f.indexURL != "" {
		return f.indexURL
	}
	if env := os.Getenv(indexEnv); env != "" {
		return env
	}
	return warehouse.DefaultIndexURL
}

// newCache selects the cache backend. An explicit Redis address must
// work or the command fails; the file cache quietly degrades to null.
func newCache(ctx context.Context, noCache bool, redisAddr string) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		return cache.NewRedisCache(ctx, redisAddr)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the cache directory using XDG standard (~/.cache/pipspect/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
