package npm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/matzehuels/depradar/pkg/integrations"
)

// PackageInfo summarizes the latest published version of an npm package.
type PackageInfo struct {
	Name         string
	Version      string
	License      string
	UnpackedSize int64
	TotalFiles   int
	LastPublish  string
	Maintainers  int
}

// Client provides access to the npm registry and its download-count API.
type Client struct {
	*integrations.Client
	registryURL  string
	downloadsURL string
}

// NewClient creates an npm registry client with response caching.
func NewClient(cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}
	return &Client{
		Client:       integrations.NewClient(cache.Namespace("npm:"), nil),
		registryURL:  "https://registry.npmjs.org",
		downloadsURL: "https://api.npmjs.org",
	}, nil
}

// FetchPackage retrieves metadata for the latest version of pkg.
// If refresh is true, cached data is bypassed.
func (c *Client) FetchPackage(ctx context.Context, pkg string, refresh bool) (*PackageInfo, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))
	key := "info:" + pkg

	var info PackageInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, pkg string, info *PackageInfo) error {
	var data registryResponse
	if err := c.Get(ctx, c.registryURL+"/"+integrations.URLEncode(pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: npm package %s", err, pkg)
		}
		return err
	}

	latest := data.DistTags.Latest
	v, ok := data.Versions[latest]
	if !ok {
		return fmt.Errorf("version %s not found", latest)
	}

	*info = PackageInfo{
		Name:         data.Name,
		Version:      latest,
		License:      extractField(v.License, "type"),
		UnpackedSize: v.Dist.UnpackedSize,
		TotalFiles:   len(v.Files),
		LastPublish:  data.Time[latest],
		Maintainers:  len(data.Maintainers),
	}
	return nil
}

// FetchDownloads retrieves the download count for pkg over the last month.
// Missing packages count as zero downloads, matching the registry's
// behavior for unpublished names.
func (c *Client) FetchDownloads(ctx context.Context, pkg string, refresh bool) (int64, error) {
	pkg = strings.ToLower(strings.TrimSpace(pkg))
	key := "downloads:" + pkg

	var data downloadsResponse
	err := c.Cached(ctx, key, refresh, &data, func() error {
		url := fmt.Sprintf("%s/downloads/point/last-month/%s", c.downloadsURL, integrations.URLEncode(pkg))
		return c.Get(ctx, url, &data)
	})
	if err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return data.Downloads, nil
}

func extractField(v any, field string) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		if s, ok := val[field].(string); ok {
			return s
		}
	}
	return ""
}

type registryResponse struct {
	Name        string                    `json:"name"`
	DistTags    distTags                  `json:"dist-tags"`
	Versions    map[string]versionDetails `json:"versions"`
	Time        map[string]string         `json:"time"`
	Maintainers []maintainer              `json:"maintainers"`
}

type distTags struct {
	Latest string `json:"latest"`
}

type versionDetails struct {
	License any      `json:"license"`
	Files   []string `json:"files"`
	Dist    struct {
		UnpackedSize int64 `json:"unpackedSize"`
	} `json:"dist"`
}

type maintainer struct {
	Name string `json:"name"`
}

type downloadsResponse struct {
	Downloads int64 `json:"downloads"`
}
