package github

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/matzehuels/depradar/pkg/errors"
	"github.com/matzehuels/depradar/pkg/httputil"
	"github.com/matzehuels/depradar/pkg/integrations"
)

func testClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return &Client{
		Client:  integrations.NewClient(cache, map[string]string{"Accept": "application/vnd.github.v3+json"}),
		baseURL: serverURL,
	}
}

func TestClient_ListOrgRepos(t *testing.T) {
	pages := map[int][]repoResponse{
		1: {
			{Name: "frontend", Private: false},
			{Name: "secrets", Private: true},
		},
		2: {
			{Name: "backend", Private: false},
		},
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/orgs/acme/repos" {
			http.NotFound(w, r)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		json.NewEncoder(w).Encode(pages[page]) // later pages encode as empty
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	names, err := c.ListOrgRepos(context.Background(), "acme")
	if err != nil {
		t.Fatalf("ListOrgRepos() failed: %v", err)
	}

	want := []string{"frontend", "backend"}
	if len(names) != len(want) {
		t.Fatalf("got %d repos %v, want %d", len(names), names, len(want))
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("names[%d] = %q, want %q", i, names[i], name)
		}
	}
}

func TestClient_ListOrgRepos_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := testClient(t, server.URL)

	_, err := c.ListOrgRepos(context.Background(), "ghost-org")
	if err == nil {
		t.Fatal("expected error for missing org")
	}
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeNotFound)
	}
}

func TestClient_ListOrgRepos_InvalidOrg(t *testing.T) {
	c := testClient(t, "http://unused.invalid")
	_, err := c.ListOrgRepos(context.Background(), "-bad-")
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errors.ErrCodeInvalidOrg) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidOrg)
	}
}

func TestClient_ValidateToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/user" {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		json.NewEncoder(w).Encode(User{Login: "octocat"})
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	c.Client = integrations.NewClient(mustCache(t), map[string]string{"Authorization": "token x"})

	user, err := c.ValidateToken(context.Background())
	if err != nil {
		t.Fatalf("ValidateToken() failed: %v", err)
	}
	if user.Login != "octocat" {
		t.Errorf("Login = %q, want octocat", user.Login)
	}
}

func TestClient_ValidateToken_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	c := testClient(t, server.URL)
	_, err := c.ValidateToken(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected token")
	}
	if !errors.Is(err, errors.ErrCodeUnauthorized) {
		t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeUnauthorized)
	}
}

func TestClient_RepoStatus(t *testing.T) {
	tests := []struct {
		name     string
		archived bool
		status   int
		want     string
	}{
		{"active", false, http.StatusOK, "Active"},
		{"archived", true, http.StatusOK, "Archived"},
		{"missing", false, http.StatusNotFound, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.status != http.StatusOK {
					w.WriteHeader(tt.status)
					return
				}
				json.NewEncoder(w).Encode(repoResponse{Name: "repo", Archived: tt.archived})
			}))
			defer server.Close()

			c := testClient(t, server.URL)
			if got := c.RepoStatus(context.Background(), "owner", "repo"); got != tt.want {
				t.Errorf("RepoStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCloneURL(t *testing.T) {
	if got, want := CloneURL("acme", "frontend"), "https://github.com/acme/frontend.git"; got != want {
		t.Errorf("CloneURL() = %q, want %q", got, want)
	}
}

func mustCache(t *testing.T) *httputil.Cache {
	t.Helper()
	cache, err := httputil.NewCache(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	return cache
}
