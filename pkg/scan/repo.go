package scan

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/depradar/pkg/deptree"
	"github.com/matzehuels/depradar/pkg/integrations/github"
	"github.com/matzehuels/depradar/pkg/resolver"
	"github.com/matzehuels/depradar/pkg/workspace"
)

// RepoProcessor is the unit of work for one GitHub repository: shallow
// clone, resolve the dependency tree, remove the checkout. A clone
// failure degrades to an empty result; the checkout is removed on every
// path.
type RepoProcessor struct {
	Org       string
	Workspace *workspace.Workspace
	Resolver  *resolver.Resolver
	Logger    *log.Logger
}

// Process implements [Processor].
func (p *RepoProcessor) Process(ctx context.Context, repo string) Result {
	p.Logger.Info("checking repository", "repo", repo)

	path, err := p.Workspace.Clone(ctx, github.CloneURL(p.Org, repo), repo)
	if err != nil {
		p.Logger.Warn("clone failed", "repo", repo, "err", err)
		return Result{Name: repo, Dependencies: deptree.Tree{}}
	}
	defer func() {
		if err := p.Workspace.Remove(path); err != nil {
			p.Logger.Warn("cleanup failed", "repo", repo, "err", err)
		}
	}()

	return Result{Name: repo, Dependencies: p.Resolver.Resolve(ctx, path)}
}
