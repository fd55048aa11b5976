package cli

import (
	"maps"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/pool"
)

// loadFlags holds the flags shared by load and config. Precedence is
// library defaults, then the profile, then explicitly set flags.
type loadFlags struct {
	profile string

	label            string
	endLabel         string
	relationshipType string
	direction        string

	weightProperty     string
	defaultWeight      float64
	nodeWeightProperty string
	nodeDefaultWeight  float64
	nodeProperty       string
	nodeDefaultValue   float64

	params      []string
	concurrency int
	batchSize   int
	accumulate  bool
	logMillis   int64
}

func (f *loadFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.profile, "profile", "p", "", "TOML load profile")

	fs.StringVarP(&f.label, "label", "l", "", "node label to load (default: any)")
	fs.StringVar(&f.endLabel, "end-label", "", "end node label (stored, not applied)")
	fs.StringVarP(&f.relationshipType, "type", "t", "", "relationship type to load (default: any)")
	fs.StringVarP(&f.direction, "direction", "d", "both", "relationship direction: incoming, outgoing, both")

	fs.StringVar(&f.weightProperty, "weight-property", "", "relationship weight property")
	fs.Float64Var(&f.defaultWeight, "default-weight", loadconfig.DefaultWeight, "relationship weight when the property is missing")
	fs.StringVar(&f.nodeWeightProperty, "node-weight-property", "", "node weight property")
	fs.Float64Var(&f.nodeDefaultWeight, "node-default-weight", loadconfig.DefaultWeight, "node weight when the property is missing")
	fs.StringVar(&f.nodeProperty, "node-property", "", "node value property")
	fs.Float64Var(&f.nodeDefaultValue, "node-default-value", loadconfig.DefaultWeight, "node value when the property is missing")

	fs.StringArrayVar(&f.params, "param", nil, "query parameter key=value (repeatable)")
	fs.IntVarP(&f.concurrency, "concurrency", "c", pool.DefaultConcurrency, "parallel batches (1 loads sequentially)")
	fs.IntVar(&f.batchSize, "batch-size", loadconfig.DefaultBatchSize, "nodes per batch (-1: automatic)")
	fs.BoolVar(&f.accumulate, "accumulate", false, "sum weights of parallel relationships")
	fs.Int64Var(&f.logMillis, "log-millis", loadconfig.DefaultLogMillis, "progress log interval in ms (<= 0 disables)")

	_ = cmd.RegisterFlagCompletionFunc("direction", cobra.FixedCompletions(
		[]string{"incoming", "outgoing", "both"}, cobra.ShellCompDirectiveNoFileComp))
}

// options resolves the flags into load options. Logger and tracker are left
// at their defaults for the caller to set.
func (f *loadFlags) options(cmd *cobra.Command) (loadconfig.Options, error) {
	opts := loadconfig.DefaultOptions()
	if f.profile != "" {
		p, err := readProfile(f.profile)
		if err != nil {
			return opts, err
		}
		if err := p.apply(&opts); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	if changed("label") {
		opts.StartLabel = loadconfig.OptionalString(f.label)
	}
	if changed("end-label") {
		opts.EndLabel = loadconfig.OptionalString(f.endLabel)
	}
	if changed("type") {
		opts.RelationshipType = loadconfig.OptionalString(f.relationshipType)
	}
	if changed("direction") {
		d, err := loadconfig.ParseDirection(f.direction)
		if err != nil {
			return opts, errors.Wrap(errors.ErrCodeInvalidDirection, err, "--direction")
		}
		opts.Direction = d
	}
	if changed("weight-property") {
		opts.RelationWeightProperty = loadconfig.OptionalString(f.weightProperty)
	}
	if changed("default-weight") {
		opts.RelationDefaultWeight = f.defaultWeight
	}
	if changed("node-weight-property") {
		opts.NodeWeightProperty = loadconfig.OptionalString(f.nodeWeightProperty)
	}
	if changed("node-default-weight") {
		opts.NodeDefaultWeight = f.nodeDefaultWeight
	}
	if changed("node-property") {
		opts.NodeProperty = loadconfig.OptionalString(f.nodeProperty)
	}
	if changed("node-default-value") {
		opts.NodeDefaultPropertyValue = f.nodeDefaultValue
	}
	if len(f.params) > 0 {
		params, err := parseParams(f.params)
		if err != nil {
			return opts, err
		}
		if opts.Params == nil {
			opts.Params = map[string]any{}
		}
		maps.Copy(opts.Params, params)
	}
	if changed("concurrency") {
		opts.Concurrency = f.concurrency
	}
	if changed("batch-size") {
		opts.BatchSize = f.batchSize
	}
	if changed("accumulate") {
		opts.AccumulateWeights = f.accumulate
	}
	if changed("log-millis") {
		opts.LogMillis = f.logMillis
	}

	// Concurrency other than 1 attaches a pool; the loader rejects values < 1.
	if opts.Concurrency != 1 {
		opts.Executor = pool.New(opts.Concurrency)
	}
	return opts, nil
}

// parseParams parses key=value pairs. Values are typed as int64, float64 or
// bool when they parse as such, and kept as strings otherwise.
func parseParams(pairs []string) (map[string]any, error) {
	params := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "invalid --param %q (want key=value)", pair)
		}
		params[key] = parseValue(value)
	}
	return params, nil
}

func parseValue(s string) any {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return s
}
