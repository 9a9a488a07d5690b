// Package cli implements the shelfmount command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shelfmount/pkg/buildinfo"
	"github.com/matzehuels/shelfmount/pkg/cache"
	"github.com/matzehuels/shelfmount/pkg/config"
	errs "github.com/matzehuels/shelfmount/pkg/errors"
	"github.com/matzehuels/shelfmount/pkg/favorites"
	"github.com/matzehuels/shelfmount/pkg/pipeline"
)

// appName is the binary name used in help text.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// Cache backends accepted in [cache] backend.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	noCache    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Shelfmount lays out pipe-shelf brackets and prints drilling templates",
		Long: `Shelfmount computes where to mount the flange brackets of a shelf that rests
on two pipes, checks nut and screw-head clearances, and renders top and front
views, a 1:1 drilling template and a printer calibration page.`,
		Version:           buildinfo.Get().Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.preRun,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shelfmount/config.toml)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable the artifact cache")

	root.AddCommand(c.solveCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.templateCommand())
	root.AddCommand(c.calibrateCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.favoritesCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// preRun loads the configuration and attaches the logger to the context.
func (c *CLI) preRun(cmd *cobra.Command, _ []string) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	if skipsConfig(cmd) {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	for _, key := range cfg.Undecoded {
		c.Logger.Warn("unknown config key", "key", key, "file", cfg.Path)
	}
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	c.cfg = &cfg
	return nil
}

// skipsConfig reports whether cmd must work even with a broken config file.
func skipsConfig(cmd *cobra.Command) bool {
	for p := cmd; p != nil; p = p.Parent() {
		switch p.Name() {
		case "completion", "config", "help":
			return true
		}
	}
	return false
}

// settings returns the loaded configuration, or the defaults when a command
// ran without preRun.
func (c *CLI) settings() config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return *c.cfg
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(ch, nil, c.Logger)
	if ttl := c.settings().Cache.TTL; ttl > 0 {
		r.TTL = ttl
	}
	return r, nil
}

func (c *CLI) newCache(ctx context.Context) (cache.Cache, error) {
	cfg := c.settings().Cache
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		return cache.NewRedisCache(ctx, cfg.Redis)
	}
	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the configured artifact cache directory.
func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().Cache.Dir; dir != "" {
		return dir, nil
	}
	base, err := config.CacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "artifacts"), nil
}

// openStore opens the configured favorites store.
func (c *CLI) openStore(ctx context.Context) (favorites.Store, error) {
	return favorites.Open(ctx, c.settings().Storage)
}

// pipelineOptions returns the render defaults from the configuration.
func (c *CLI) pipelineOptions() pipeline.Options {
	cfg := c.settings()
	return pipeline.Options{
		Policy:       cfg.Layout.Policy,
		DepthMode:    cfg.Layout.DepthMode,
		Label:        cfg.Layout.Label,
		Width:        cfg.Display.Width,
		Height:       cfg.Display.Height,
		Padding:      cfg.Display.Padding,
		ShelfOpacity: cfg.Display.ShelfOpacity,
		Logger:       c.Logger,
	}
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) ([]string, error) {
	if s == "" {
		return []string{pipeline.FormatSVG}, nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f == "" {
			continue
		}
		formats = append(formats, f)
	}
	if len(formats) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidFormat, "no format in %q", s)
	}
	return formats, pipeline.ValidateFormats(formats)
}
