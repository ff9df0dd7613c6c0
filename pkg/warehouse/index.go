package warehouse

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// API version implemented by this client, per PEP 691.
const (
	apiMajorVersion = 1
	apiMinorVersion = 0
)

const simpleContentType = "application/vnd.pypi.simple.v1+json"

// SupportLevel describes how well an index's API version matches this client.
type SupportLevel int

const (
	// Supported means the index is fully supported by this client.
	Supported SupportLevel = iota
	// SomewhatSupported means the index may provide additional metadata
	// that will be dropped by this client.
	SomewhatSupported
	// Unsupported means the index is not compatible with this client.
	Unsupported
)

// String returns a human-readable support level.
func (s SupportLevel) String() string {
	switch s {
	case Supported:
		return "supported"
	case SomewhatSupported:
		return "somewhat supported"
	default:
		return "unsupported"
	}
}

// indexRoot is the response from the index root URL.
type indexRoot struct {
	Meta struct {
		APIVersion string `json:"api_version"`
	} `json:"meta"`
	Projects []struct {
		Name string `json:"name"`
	} `json:"projects"`
}

func (c *Client) fetchIndexRoot(ctx context.Context) (*indexRoot, error) {
	var root indexRoot
	url := c.indexURL + "/simple/"
	headers := map[string]string{"Accept": simpleContentType}
	if err := c.getJSON(ctx, url, headers, &root); err != nil {
		return nil, err
	}
	return &root, nil
}

// IndexVersion returns the API version advertised by the index root.
func (c *Client) IndexVersion(ctx context.Context) (string, error) {
	root, err := c.fetchIndexRoot(ctx)
	if err != nil {
		return "", err
	}
	return root.Meta.APIVersion, nil
}

// IndexSupport reports whether the index's API version is compatible
// with this client. A newer major version is unsupported; a newer minor
// version within the same major is somewhat supported.
func (c *Client) IndexSupport(ctx context.Context) (SupportLevel, error) {
	apiVersion, err := c.IndexVersion(ctx)
	if err != nil {
		return Unsupported, err
	}
	return classifyAPIVersion(apiVersion)
}

// Projects returns the names of all projects hosted on the index.
// Names may or may not be normalized.
func (c *Client) Projects(ctx context.Context) ([]string, error) {
	root, err := c.fetchIndexRoot(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(root.Projects))
	for i, p := range root.Projects {
		names[i] = p.Name
	}
	return names, nil
}

// classifyAPIVersion parses a strict "major.minor" version and compares
// it against the versions this client implements.
func classifyAPIVersion(apiVersion string) (SupportLevel, error) {
	parts := strings.Split(apiVersion, ".")
	if len(parts) != 2 {
		return Unsupported, fmt.Errorf("%w: api version %q", ErrInvalidVersion, apiVersion)
	}
	major, err := strconv.ParseUint(parts[0], 10, 8)
	if err != nil {
		return Unsupported, fmt.Errorf("%w: api version %q", ErrInvalidVersion, apiVersion)
	}
	minor, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil {
		return Unsupported, fmt.Errorf("%w: api version %q", ErrInvalidVersion, apiVersion)
	}

	switch {
	case major > apiMajorVersion:
		return Unsupported, nil
	case minor > apiMinorVersion:
		return SomewhatSupported, nil
	default:
		return Supported, nil
	}
}
