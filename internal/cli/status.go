package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depradar/pkg/integrations/github"
)

// statusCommand creates the repository status command.
func (c *CLI) statusCommand() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "status [owner/repo]",
		Short: "Report whether a GitHub repository is active or archived",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runStatus(cmd.Context(), args[0], c.token(token))
		},
	}

	cmd.Flags().StringVarP(&token, "token", "t", "", "GitHub personal access token")

	return cmd
}

func (c *CLI) runStatus(ctx context.Context, ref, token string) error {
	owner, repo, err := github.ParseRepoRef(ref)
	if err != nil {
		return err
	}

	client, err := github.NewClient(token, c.Config.CacheTTL())
	if err != nil {
		return fmt.Errorf("create GitHub client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Checking %s/%s...", owner, repo))
	spinner.Start()
	status := client.RepoStatus(ctx, owner, repo)
	spinner.Stop()

	switch status {
	case "Active":
		printSuccess("%s/%s is active", owner, repo)
	case "Archived":
		printWarning("%s/%s is archived", owner, repo)
	default:
		printError("%s/%s status unknown", owner, repo)
	}
	return nil
}
