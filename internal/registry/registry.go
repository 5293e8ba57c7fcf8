// Package registry queries the npm registry for published versions of the
// managed package. It is read-only and network-dependent; all lifecycle
// state lives in the store.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"verso/internal/semver"
)

// ErrNotFound indicates the registry has no such package or version.
var ErrNotFound = errors.New("not found in registry")

const defaultBaseURL = "https://registry.npmjs.org"

// Client looks up package metadata against one registry endpoint.
type Client struct {
	// BaseURL is the registry root, e.g. "https://registry.npmjs.org".
	BaseURL string
	// Package is the npm package whose versions are queried.
	Package string
	// HTTPClient overrides the default 30s-timeout client when set.
	HTTPClient *http.Client
}

// packument is the subset of the registry document we consume.
type packument struct {
	DistTags map[string]string          `json:"dist-tags"`
	Versions map[string]json.RawMessage `json:"versions"`
}

// Latest returns the registry's latest published version for the package.
func (c Client) Latest(ctx context.Context) (semver.Version, error) {
	doc, err := c.fetch(ctx)
	if err != nil {
		return semver.Version{}, err
	}

	tag := doc.DistTags["latest"]
	if tag == "" {
		return semver.Version{}, fmt.Errorf("registry document for %s has no latest tag", c.Package)
	}
	v, err := semver.Parse(semver.Normalize(tag))
	if err != nil {
		return semver.Version{}, fmt.Errorf("registry latest tag for %s: %w", c.Package, err)
	}
	return v, nil
}

// Versions returns every published version of the package, sorted
// ascending. Tags that are not canonical semantic versions (prereleases,
// build metadata) are skipped.
func (c Client) Versions(ctx context.Context) ([]semver.Version, error) {
	doc, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(doc.Versions))
	for name := range doc.Versions {
		names = append(names, name)
	}
	return semver.FromNames(names), nil
}

func (c Client) fetch(ctx context.Context) (packument, error) {
	base := c.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	endpoint := base + "/" + url.PathEscape(c.Package)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return packument{}, fmt.Errorf("create registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "verso/1.0")

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return packument{}, fmt.Errorf("query registry for %s: %w", c.Package, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return packument{}, fmt.Errorf("package %s: %w", c.Package, ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return packument{}, fmt.Errorf("registry query for %s failed: %s", c.Package, resp.Status)
	}

	var doc packument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return packument{}, fmt.Errorf("decode registry document for %s: %w", c.Package, err)
	}
	return doc, nil
}
