package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/webpaste/pkg/cache"
	"github.com/matzehuels/webpaste/pkg/observability"
	"github.com/matzehuels/webpaste/pkg/pipeline"
	"github.com/matzehuels/webpaste/pkg/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr         string
	redisAddr    string
	redisDB      int
	cacheTTL     time.Duration
	maxBodyBytes int64
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP clean service",
		Long: `Run the HTTP clean service.

Routes:
  POST /v1/clean   clean the request body (text/html or JSON {"html": ...})
  GET  /healthz    liveness check
  GET  /metrics    Prometheus metrics

With --redis-addr, results are cached in Redis keyed by input and rule set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.mergeServeConfig(cmd, &opts)
			return c.runServe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address for the result cache (default: no cache)")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", pipeline.DefaultCacheTTL, "how long cached results are kept")
	cmd.Flags().Int64Var(&opts.maxBodyBytes, "max-body-bytes", server.DefaultMaxBodyBytes, "largest accepted request body")

	return cmd
}

// mergeServeConfig fills the options the user did not pass as flags from
// the config file.
func (c *CLI) mergeServeConfig(cmd *cobra.Command, opts *serveOpts) {
	cfg := c.Config.Serve
	flags := cmd.Flags()
	if !flags.Changed("addr") && cfg.Addr != "" {
		opts.addr = cfg.Addr
	}
	if !flags.Changed("redis-addr") && cfg.RedisAddr != "" {
		opts.redisAddr = cfg.RedisAddr
	}
	if !flags.Changed("cache-ttl") && cfg.CacheTTL.Duration > 0 {
		opts.cacheTTL = cfg.CacheTTL.Duration
	}
	if !flags.Changed("max-body-bytes") && cfg.MaxBodyBytes > 0 {
		opts.maxBodyBytes = cfg.MaxBodyBytes
	}
}

// runServe wires the cache, runner, metrics and server, and serves until
// the command's context is cancelled.
func (c *CLI) runServe(cmd *cobra.Command, opts serveOpts) error {
	ctx := withLogger(cmd.Context(), c.Logger)
	logger := loggerFromContext(ctx)
	out := cmd.ErrOrStderr()

	var store cache.Cache = cache.NewNullCache()
	if opts.redisAddr != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: opts.redisAddr, DB: opts.redisDB})
		if err != nil {
			return err
		}
		store = rc
	}

	runner := pipeline.NewRunner(store, logger)
	defer runner.Close()

	srv := server.New(runner, server.Config{
		Addr:         opts.addr,
		MaxBodyBytes: opts.maxBodyBytes,
		CacheTTL:     opts.cacheTTL,
		Logger:       logger,
	})
	srv.Metrics().Install()
	defer observability.Reset()

	printInfo(out, "Serving on http://%s", opts.addr)
	if opts.redisAddr != "" {
		printDetail(out, "cache: redis %s (ttl %s)", opts.redisAddr, opts.cacheTTL)
	} else {
		printDetail(out, "cache: disabled")
	}
	printDetail(out, "metrics: http://%s/metrics", opts.addr)

	return srv.ListenAndServe(ctx)
}
