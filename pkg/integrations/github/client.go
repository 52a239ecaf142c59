package github

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/matzehuels/depradar/pkg/errors"
	"github.com/matzehuels/depradar/pkg/integrations"
)

// Client provides access to the GitHub API for repository listing and
// status checks. Metadata lookups are cached with automatic retries; the
// listing path is neither cached nor retried, since a listing failure
// aborts the whole scan.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates a GitHub API client with optional authentication.
// Pass an empty string for token to use unauthenticated requests (lower rate limits).
func NewClient(token string, cacheTTL time.Duration) (*Client, error) {
	cache, err := integrations.NewCache(cacheTTL)
	if err != nil {
		return nil, err
	}

	headers := map[string]string{"Accept": "application/vnd.github.v3+json"}
	if token != "" {
		headers["Authorization"] = "token " + token
	}

	return &Client{
		Client:  integrations.NewClient(cache.Namespace("github:"), headers),
		baseURL: "https://api.github.com",
	}, nil
}

// User identifies the authenticated GitHub user.
type User struct {
	Login string `json:"login"`
}

// ValidateToken verifies the configured token against the /user endpoint.
// It returns the authenticated user on success.
func (c *Client) ValidateToken(ctx context.Context) (*User, error) {
	var user User
	if err := c.Get(ctx, c.baseURL+"/user", &user); err != nil {
		if stderrors.Is(err, integrations.ErrUnauthorized) {
			return nil, errors.Wrap(errors.ErrCodeUnauthorized, err, "invalid GitHub token")
		}
		return nil, err
	}
	return &user, nil
}

// ListOrgRepos returns the names of all non-private repositories in org.
// Pages of 100 are fetched until an empty page is returned. Any non-200
// response fails the listing; there is nothing to scan without it.
func (c *Client) ListOrgRepos(ctx context.Context, org string) ([]string, error) {
	if err := ValidateOwner(org); err != nil {
		return nil, err
	}

	var names []string
	for page := 1; ; page++ {
		url := fmt.Sprintf("%s/orgs/%s/repos?page=%d&per_page=100", c.baseURL, org, page)

		var repos []repoResponse
		if err := c.Get(ctx, url, &repos); err != nil {
			switch {
			case stderrors.Is(err, integrations.ErrNotFound):
				return nil, errors.Wrap(errors.ErrCodeNotFound, err, "github org %s", org)
			case stderrors.Is(err, integrations.ErrUnauthorized):
				return nil, errors.Wrap(errors.ErrCodeUnauthorized, err, "list repos for %s", org)
			default:
				return nil, errors.Wrap(errors.ErrCodeNetwork, err, "list repos for %s", org)
			}
		}
		if len(repos) == 0 {
			break
		}

		for _, r := range repos {
			if !r.Private {
				names = append(names, r.Name)
			}
		}
	}
	return names, nil
}

// RepoStatus reports whether a repository is "Active" or "Archived".
// Lookup failures yield "Unknown" rather than an error; status is
// advisory data, not scan input.
func (c *Client) RepoStatus(ctx context.Context, owner, repo string) string {
	if err := ValidateRepoRef(owner, repo); err != nil {
		return "Unknown"
	}
	key := fmt.Sprintf("status:%s/%s", owner, repo)

	var data repoResponse
	err := c.Cached(ctx, key, false, &data, func() error {
		url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)
		return c.Get(ctx, url, &data)
	})
	if err != nil {
		return "Unknown"
	}
	if data.Archived {
		return "Archived"
	}
	return "Active"
}

// CloneURL returns the HTTPS clone URL for a repository.
func CloneURL(owner, repo string) string {
	return fmt.Sprintf("https://github.com/%s/%s.git", owner, repo)
}

type repoResponse struct {
	Name     string `json:"name"`
	Private  bool   `json:"private"`
	Archived bool   `json:"archived"`
}
