package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphload/pkg/buildinfo"
	"github.com/matzehuels/graphload/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "graphload"

	// envPrefix prefixes every environment variable the CLI reads.
	envPrefix = "GRAPHLOAD_"
)

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
}

// New creates a new CLI instance with a timestamped logger writing to w.
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
		Use:          appName,
		Short:        "Graphload loads property graphs into memory",
		Long:         `Graphload projects a property graph from Neo4j, PostgreSQL, MongoDB or a JSON dump into a compact in-memory graph, then snapshots or renders it.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			loadEnv(c.Logger)
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.loadCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Cache Factory
// =============================================================================

// newCache picks the cache backend: none, Redis when GRAPHLOAD_REDIS_ADDR is
// set, otherwise the file cache under the user cache directory.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if addr := getEnv("REDIS_ADDR"); addr != "" {
		c.Logger.Debug("using redis cache", "addr", addr)
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     addr,
			Password: getEnv("REDIS_PASSWORD"),
			DB:       getEnvInt("REDIS_DB", 0),
			Prefix:   getEnvString("REDIS_PREFIX", appName+":"),
		})
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("no cache directory, caching disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// cacheDir returns the file cache directory. GRAPHLOAD_CACHE_DIR overrides
// the platform default.
func cacheDir() (string, error) {
	if dir := getEnv("CACHE_DIR"); dir != "" {
		return dir, nil
	}
	return cache.DefaultDir()
}
