package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/depradar/pkg/integrations/npm"
)

// npmCommand creates the npm package inspection command.
func (c *CLI) npmCommand() *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "npm [package]",
		Short: "Show registry metadata for an npm package",
		Long: `Fetch a package's latest version, license, size, and monthly
download count from the npm registry.

Responses are cached; use --refresh to bypass the cache.

Examples:
  depradar npm react
  depradar npm @types/node --refresh`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runNPM(cmd.Context(), args[0], refresh)
		},
	}

	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the response cache")

	return cmd
}

func (c *CLI) runNPM(ctx context.Context, pkg string, refresh bool) error {
	client, err := npm.NewClient(c.Config.CacheTTL())
	if err != nil {
		return fmt.Errorf("create npm client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching %s...", pkg))
	spinner.Start()
	info, err := client.FetchPackage(ctx, pkg, refresh)
	if err != nil {
		spinner.StopWithError(fmt.Sprintf("Failed to fetch %s", pkg))
		return err
	}
	downloads, err := client.FetchDownloads(ctx, pkg, refresh)
	spinner.Stop()
	if err != nil {
		c.Logger.Warn("download count unavailable", "pkg", pkg, "err", err)
	}

	printSuccess("%s", StyleHighlight.Render(info.Name))
	printKeyValue("Version", info.Version)
	printKeyValue("License", valueOrNA(info.License))
	if info.UnpackedSize > 0 {
		printKeyValue("Size", fmt.Sprintf("%.2f KB", float64(info.UnpackedSize)/1024))
	}
	if info.TotalFiles > 0 {
		printKeyValue("Files", fmt.Sprintf("%d", info.TotalFiles))
	}
	printKeyValue("Published", valueOrNA(info.LastPublish))
	if info.Maintainers > 0 {
		printKeyValue("Maintainers", fmt.Sprintf("%d", info.Maintainers))
	}
	if downloads > 0 {
		printKeyValue("Downloads", fmt.Sprintf("%d/month", downloads))
	}
	printLink("https://www.npmjs.com/package/" + pkg)

	return nil
}

func valueOrNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
