package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/graphload/pkg/cache"
	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/export"
	"github.com/matzehuels/graphload/pkg/graph"
	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/loader"
	"github.com/matzehuels/graphload/pkg/memtrack"
)

// loadOpts holds flags for the load command.
type loadOpts struct {
	flags loadFlags

	source string
	input  string

	output   string
	dot      string
	svg      string
	detailed bool
	maxNodes int

	noCache     bool
	cacheTTL    time.Duration
	metricsAddr string
}

// loadCommand creates the load command.
func (c *CLI) loadCommand() *cobra.Command {
	opts := &loadOpts{}

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a property graph into memory",
		Long: `Load nodes and relationships from a source into an in-memory graph.

The projection is configured by flags, optionally on top of a TOML profile.
The result can be written as a JSON snapshot, Graphviz DOT or SVG.`,
		Example: `  # Load a JSON dump and snapshot it
  graphload load --input social.json -o graph.json

  # Load KNOWS relationships of persons from Neo4j, weighted, 8 batches in parallel
  graphload load --source neo4j -l Person -t KNOWS --weight-property since -c 8

  # Render the outgoing adjacency of a profile-defined load
  graphload load --input social.json --profile load.toml --svg graph.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLoad(cmd, opts)
		},
	}

	opts.flags.register(cmd)

	fs := cmd.Flags()
	fs.StringVarP(&opts.source, "source", "s", sourceJSON, "source kind: json, neo4j, postgres, mongo")
	fs.StringVarP(&opts.input, "input", "i", "", "JSON dump file (json source)")
	fs.StringVarP(&opts.output, "output", "o", "", "write the graph snapshot to this file")
	fs.StringVar(&opts.dot, "dot", "", "write Graphviz DOT to this file")
	fs.StringVar(&opts.svg, "svg", "", "render SVG to this file")
	fs.BoolVar(&opts.detailed, "detailed", false, "include node weights and values in DOT/SVG labels")
	fs.IntVar(&opts.maxNodes, "max-nodes", 500, "limit nodes drawn in DOT/SVG (<= 0: all)")
	fs.BoolVar(&opts.noCache, "no-cache", false, "disable the load cache")
	fs.DurationVar(&opts.cacheTTL, "cache-ttl", cache.DefaultTTL, "how long cached loads stay valid")
	fs.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. :9090)")

	_ = cmd.RegisterFlagCompletionFunc("source", cobra.FixedCompletions(sourceKinds, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

func (c *CLI) runLoad(cmd *cobra.Command, opts *loadOpts) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfgOpts, err := opts.flags.options(cmd)
	if err != nil {
		return err
	}
	tracker := memtrack.New()
	cfgOpts.Logger = c.Logger
	cfgOpts.Tracker = tracker
	cfg := loadconfig.New(cfgOpts)

	if opts.metricsAddr != "" {
		stop, err := serveMetrics(opts.metricsAddr, c.Logger)
		if err != nil {
			return fmt.Errorf("metrics server: %w", err)
		}
		defer stop()
	}

	src, closeSource, err := openSource(ctx, opts.source, opts.input)
	if err != nil {
		return err
	}
	defer closeSource()

	store, err := c.newCache(ctx, opts.noCache)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer store.Close()

	l := loader.New(src, loader.WithCache(store), loader.WithCacheTTL(opts.cacheTTL))

	prog := newProgress(c.Logger)
	spinner := c.startSpinner(ctx, "Loading graph...")
	res, err := l.Load(ctx, cfg)
	if err != nil {
		spinner.StopWithError("Load failed: " + errors.UserMessage(err))
		return err
	}
	spinner.Stop()
	prog.done("load finished", "id", res.ID, "tracked", memtrack.Human(tracker.Tracked()))

	printSuccess("Loaded graph from %s", l.SourceID())
	printStats(res)

	return writeOutputs(ctx, res.Graph, cfg, opts)
}

// startSpinner shows a spinner unless debug logging is on, where it would
// interleave with log lines.
func (c *CLI) startSpinner(ctx context.Context, message string) *Spinner {
	s := newSpinner(ctx, os.Stderr, message)
	if c.Logger.GetLevel() > log.DebugLevel {
		s.Start()
	}
	return s
}

func writeOutputs(ctx context.Context, g *graph.Graph, cfg *loadconfig.Config, opts *loadOpts) error {
	if opts.output != "" {
		if err := graph.WriteFile(g, opts.output); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		printFile(opts.output)
	}
	if opts.dot == "" && opts.svg == "" {
		return nil
	}

	dot := export.ToDOT(g, export.Options{
		Detailed:  opts.detailed,
		Weights:   !cfg.UsesDefaultRelationshipWeight(),
		Direction: exportDirection(cfg),
		MaxNodes:  opts.maxNodes,
	})
	if opts.maxNodes > 0 && g.NodeCount() > opts.maxNodes {
		printWarning("Drawing %d of %d nodes", opts.maxNodes, g.NodeCount())
	}
	if opts.dot != "" {
		if err := os.WriteFile(opts.dot, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write dot: %w", err)
		}
		printFile(opts.dot)
	}
	if opts.svg != "" {
		svg, err := export.RenderSVG(ctx, dot)
		if err != nil {
			return fmt.Errorf("render svg: %w", err)
		}
		if err := os.WriteFile(opts.svg, svg, 0o644); err != nil {
			return fmt.Errorf("write svg: %w", err)
		}
		printFile(opts.svg)
	}
	return nil
}

// exportDirection draws incoming-only loads from their incoming adjacency.
func exportDirection(cfg *loadconfig.Config) graph.Direction {
	if cfg.LoadIncoming() && !cfg.LoadOutgoing() {
		return graph.Incoming
	}
	return graph.Outgoing
}
