package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depradar/pkg/errors"
	"github.com/matzehuels/depradar/pkg/integrations/github"
	"github.com/matzehuels/depradar/pkg/report"
	"github.com/matzehuels/depradar/pkg/resolver"
	"github.com/matzehuels/depradar/pkg/scan"
	"github.com/matzehuels/depradar/pkg/workspace"
)

// scanCommand creates the scan command.
func (c *CLI) scanCommand() *cobra.Command {
	var (
		workers  int
		output   string
		token    string
		workdir  string
		cacheTTL time.Duration
	)

	cmd := &cobra.Command{
		Use:   "scan [org]",
		Short: "Scan an organization's repositories and write the HTML report",
		Long: `Scan every public repository of a GitHub organization.

Each repository is shallow-cloned into a temporary workspace and its npm
dependency tree resolved. Repositories without a package.json yield no
dependencies; install or parse failures fall back to the declared
manifest. The aggregated result is written as a self-contained HTML
report.

Requires node and npm on PATH and a GitHub token (--token, GITHUB_TOKEN,
or the config file).

Examples:
  depradar scan vercel
  depradar scan vercel --workers 8 -o vercel_report.html`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScan(cmd.Context(), args[0], scanOptions{
				workers:  workers,
				output:   output,
				token:    c.token(token),
				workdir:  workdir,
				cacheTTL: cacheTTL,
			})
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent repository scans (0 = one per CPU)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "report file path")
	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub personal access token")
	cmd.Flags().StringVar(&workdir, "workdir", "", "clone workspace directory (default: temporary)")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", 0, "registry cache expiry (0 = config or 1h)")

	return cmd
}

type scanOptions struct {
	workers  int
	output   string
	token    string
	workdir  string
	cacheTTL time.Duration
}

func (c *CLI) runScan(ctx context.Context, org string, opts scanOptions) error {
	if opts.token == "" {
		return errors.New(errors.ErrCodeUnauthorized, "GitHub token required (--token, GITHUB_TOKEN, or config file)")
	}
	if opts.workers == 0 {
		opts.workers = c.Config.Workers
	}
	if opts.output == "" {
		opts.output = c.Config.Output
	}
	if opts.cacheTTL == 0 {
		opts.cacheTTL = c.Config.CacheTTL()
	}

	if err := c.preflight(ctx); err != nil {
		return err
	}

	client, err := github.NewClient(opts.token, opts.cacheTTL)
	if err != nil {
		return fmt.Errorf("create GitHub client: %w", err)
	}

	user, err := client.ValidateToken(ctx)
	if err != nil {
		return fmt.Errorf("validate token: %w", err)
	}
	c.Logger.Debug("authenticated", "user", user.Login)

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Listing repositories for %s...", org))
	spinner.Start()
	repos, err := client.ListOrgRepos(ctx, org)
	spinner.Stop()
	if err != nil {
		return fmt.Errorf("list repositories: %w", err)
	}
	if len(repos) == 0 {
		printWarning("No public repositories found for %s", org)
		return nil
	}
	printInfo("Found %s public repositories", StyleNumber.Render(fmt.Sprintf("%d", len(repos))))

	ws, err := workspace.New(opts.workdir)
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	defer func() {
		if err := ws.Close(); err != nil {
			c.Logger.Warn("workspace cleanup failed", "err", err)
		}
	}()

	proc := &scan.RepoProcessor{
		Org:       org,
		Workspace: ws,
		Resolver:  resolver.New(nil, c.Logger),
		Logger:    c.Logger,
	}
	scanner := scan.New(proc, opts.workers, c.Logger)
	c.Logger.Info("scanning", "org", org, "repos", len(repos), "workers", scanner.Workers())

	prog := newProgress(c.Logger)
	results := scanner.Run(ctx, repos)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	prog.done(fmt.Sprintf("Scanned %d repositories", len(results)))

	rep := report.Aggregate(org, results)

	f, err := os.Create(opts.output)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	if err := report.Render(f, rep, opts.token); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeInternal, err, "render report")
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	printNewline()
	printSuccess("Report written")
	printFile(opts.output)
	printSummaryLine(
		fmt.Sprintf("%d repos", rep.Summary.TotalRepos),
		fmt.Sprintf("%d with npm deps", rep.Summary.ReposWithDeps),
		fmt.Sprintf("%d direct", rep.Summary.DirectDeps),
		fmt.Sprintf("%d transitive", rep.Summary.TransitiveDeps),
	)
	return nil
}

// preflight verifies that node and npm are available before any clone
// happens.
func (c *CLI) preflight(ctx context.Context) error {
	for _, tool := range []string{"node", "npm"} {
		if err := resolver.CheckTool(ctx, tool); err != nil {
			return errors.Wrap(errors.ErrCodeCommandFailed, err, "%s is required on PATH", tool)
		}
	}
	return nil
}
