// Package cli implements the depradar command-line interface.
//
// This package provides commands for scanning a GitHub organization's
// public repositories, inspecting npm packages, checking repository
// status, and managing the HTTP response cache. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - scan: Resolve npm dependency trees across an organization and write the HTML report
//   - npm: Show registry metadata and download counts for a package
//   - status: Report whether a repository is active or archived
//   - cache: Manage the HTTP response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
//
// # Example
//
//	import "github.com/matzehuels/depradar/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/depradar/pkg/buildinfo"
	"github.com/matzehuels/depradar/pkg/config"
	"github.com/matzehuels/depradar/pkg/httputil"
)

// appName is the application name used for directories and display.
const appName = "depradar"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config
}

// New creates a new CLI instance with a default logger and the settings
// from the user's configuration file. A missing file leaves the
// defaults in place; a malformed one is reported and otherwise ignored.
func New(w io.Writer, level log.Level) *CLI {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})

	cfg, err := config.LoadDefault()
	if err != nil {
		logger.Warn("config file ignored", "err", err)
		cfg = config.Config{Output: config.DefaultOutput}
	}

	return &CLI{Logger: logger, Config: cfg}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Depradar maps npm dependencies across a GitHub organization",
		Long:         `Depradar scans every public repository of a GitHub organization, resolves each npm dependency tree, and writes a self-contained HTML report with a dependency graph and package details.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.scanCommand())
	root.AddCommand(c.npmCommand())
	root.AddCommand(c.statusCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// cacheDir returns the cache directory the registry clients write to.
// Delegating keeps the cache commands and the clients pointed at the
// same location.
func cacheDir() (string, error) {
	return httputil.DefaultDir()
}

// token resolves the GitHub token: flag, then environment, then the
// configuration file.
func (c *CLI) token(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if env := os.Getenv("GITHUB_TOKEN"); env != "" {
		return env
	}
	return c.Config.Token
}
