package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/errors"
	"github.com/matzehuels/webpaste/pkg/pipeline"
	"github.com/matzehuels/webpaste/pkg/server"
)

const configFileName = "config.toml"

// Config is the on-disk configuration. Command-line flags override it.
//
//	verbose = true
//
//	[paste]
//	trigger = false
//
//	[serve]
//	addr = "127.0.0.1:8787"
//	redis_addr = "localhost:6379"
//	cache_ttl = "12h"
//	max_body_bytes = 524288
type Config struct {
	Verbose bool        `toml:"verbose"`
	Paste   PasteConfig `toml:"paste"`
	Serve   ServeConfig `toml:"serve"`
}

// PasteConfig configures the paste command.
type PasteConfig struct {
	// Trigger posts Cmd-V after the clipboard has been rewritten.
	Trigger bool `toml:"trigger"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr         string   `toml:"addr"`
	RedisAddr    string   `toml:"redis_addr,omitempty"`
	CacheTTL     duration `toml:"cache_ttl"`
	MaxBodyBytes int64    `toml:"max_body_bytes"`
}

// duration reads and writes time.Duration values as strings like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func defaultConfig() *Config {
	return &Config{
		Paste: PasteConfig{Trigger: true},
		Serve: ServeConfig{
			Addr:         server.DefaultAddr,
			CacheTTL:     duration{pipeline.DefaultCacheTTL},
			MaxBodyBytes: server.DefaultMaxBodyBytes,
		},
	}
}

// readConfig decodes the file at path over the defaults. A missing file
// yields the defaults; unknown keys are returned so the caller can warn.
func readConfig(path string) (*Config, []string, error) {
	cfg := defaultConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil, nil
	}
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config %s", path)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config %s", path)
	}

	var unknown []string
	for _, key := range md.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return cfg, unknown, nil
}

// configPath returns the --config flag or the default location.
func (c *CLI) configPath() (string, error) {
	if c.configFile != "" {
		return c.configFile, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, configFileName), nil
}

// loadConfig reads the config file into c.Config and applies its log level.
func (c *CLI) loadConfig() error {
	path, err := c.configPath()
	if err != nil {
		// No home directory: run on defaults.
		c.Logger.Debug("config disabled", "error", err)
		return nil
	}
	cfg, unknown, err := readConfig(path)
	if err != nil {
		return err
	}
	if len(unknown) > 0 {
		c.Logger.Warn("unknown config keys", "file", path, "keys", strings.Join(unknown, ", "))
	}
	if cfg.Verbose {
		c.SetLogLevel(LogDebug)
	}
	c.Config = cfg
	c.Logger.Debug("config loaded", "file", path)
	return nil
}

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show configuration",
	}

	cmd.AddCommand(c.configPathCommand())
	cmd.AddCommand(c.configShowCommand())

	return cmd
}

// configPathCommand creates the "config path" subcommand.
func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.configPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		},
	}
}

// configShowCommand creates the "config show" subcommand.
func (c *CLI) configShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			if err := toml.NewEncoder(&buf).Encode(c.Config); err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
			}
			_, err := cmd.OutOrStdout().Write(buf.Bytes())
			return err
		},
	}
}
