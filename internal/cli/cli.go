// Package cli implements the webpaste command-line interface.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/buildinfo"
	"github.com/matzehuels/webpaste/pkg/cache"
	"github.com/matzehuels/webpaste/pkg/clipboard"
	"github.com/matzehuels/webpaste/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "webpaste"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Clipboard backs the paste command. New sets the running OS's clipboard.
	Clipboard clipboard.System

	// Config is loaded before any subcommand runs.
	Config *Config

	configFile string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		Clipboard: clipboard.New(),
		Config:    defaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "webpaste cleans rich-text clipboard HTML for web-mail compose fields",
		Long: `webpaste rewrites HTML fragments copied from word processors, browsers and
document editors into the small markup subset a web-mail compose field keeps:
bold, italic, underline, strikethrough, links, paragraphs and lists.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: $XDG_CONFIG_HOME/webpaste/config.toml)")

	root.AddCommand(c.cleanCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.rulesCommand())
	root.AddCommand(c.pasteCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for one-shot CLI use. Local cleans are
// cheap, so nothing is cached.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(cache.NewNullCache(), c.Logger)
}

// =============================================================================
// Paths
// =============================================================================

// configDir returns the config directory using XDG standard (~/.config/webpaste/).
func configDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName), nil
}
