// Package workspace manages the ephemeral checkout directories used while
// scanning repositories. Each repository is shallow-cloned into its own
// subdirectory named after the repository, so concurrent workers never
// collide, and removed again once its dependencies are resolved.
package workspace

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	git "github.com/go-git/go-git/v5"
)

// Workspace is a run-scoped root directory for repository checkouts.
type Workspace struct {
	root string
}

// New creates a workspace rooted at dir. If dir is empty, a temporary
// directory is created.
func New(dir string) (*Workspace, error) {
	if dir == "" {
		tmp, err := os.MkdirTemp("", "depradar-")
		if err != nil {
			return nil, fmt.Errorf("create workspace: %w", err)
		}
		return &Workspace{root: tmp}, nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{root: dir}, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// Clone shallow-clones url into a subdirectory named after the repository
// and returns the checkout path.
func (w *Workspace) Clone(ctx context.Context, url, name string) (string, error) {
	path := filepath.Join(w.root, name)
	_, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
		Tags:         git.NoTags,
	})
	if err != nil {
		// A failed clone can leave a partial directory behind.
		_ = os.RemoveAll(path)
		return "", fmt.Errorf("clone %s: %w", url, err)
	}
	return path, nil
}

// Remove deletes a checkout directory. It runs on every processing path,
// success or failure.
func (w *Workspace) Remove(path string) error {
	return os.RemoveAll(path)
}

// Close removes the workspace root and everything under it.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}
