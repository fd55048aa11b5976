package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphload/pkg/loadconfig"
)

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	var flags loadFlags

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the resolved load configuration",
		Long: `Print the load configuration that load would use with the same flags and
profile, together with the queries derived from it. Nothing is loaded.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			printConfig(loadconfig.New(opts))
			return nil
		},
	}
	flags.register(cmd)
	return cmd
}

func printConfig(cfg *loadconfig.Config) {
	printTitle("Filters")
	printKeyValue("start label", cfg.StartLabel().String())
	printKeyValue("end label", cfg.EndLabel().String())
	printKeyValue("relationship type", cfg.RelationshipType().String())
	printKeyValue("direction", cfg.Direction().String())

	printTitle("Properties")
	printKeyValue("relationship weight", propertyString(cfg.RelationWeightProperty(), cfg.RelationDefaultWeight()))
	printKeyValue("node weight", propertyString(cfg.NodeWeightProperty(), cfg.NodeDefaultWeight()))
	printKeyValue("node property", propertyString(cfg.NodeProperty(), cfg.NodeDefaultPropertyValue()))
	printKeyValue("params", paramsString(cfg.Params()))

	printTitle("Execution")
	printKeyValue("concurrency", strconv.Itoa(cfg.Concurrency()))
	printKeyValue("batch size", batchSizeString(cfg.BatchSize()))
	printKeyValue("accumulate weights", strconv.FormatBool(cfg.AccumulateWeights()))
	printKeyValue("log millis", strconv.FormatInt(cfg.LogMillis(), 10))

	printTitle("Derived")
	printKeyValue("loads any label", strconv.FormatBool(cfg.LoadsAnyLabel()))
	printKeyValue("loads any type", strconv.FormatBool(cfg.LoadsAnyRelationshipType()))
	printKeyValue("load incoming", strconv.FormatBool(cfg.LoadIncoming()))
	printKeyValue("load outgoing", strconv.FormatBool(cfg.LoadOutgoing()))
	printKeyValue("default rel weight", strconv.FormatBool(cfg.UsesDefaultRelationshipWeight()))
	printKeyValue("default node weight", strconv.FormatBool(cfg.UsesDefaultNodeWeight()))
	printKeyValue("default node property", strconv.FormatBool(cfg.UsesDefaultNodeProperty()))
	printKeyValue("concurrent", strconv.FormatBool(cfg.IsConcurrent()))
	printKeyValue("effective concurrency", strconv.Itoa(cfg.EffectiveConcurrency()))
}

func propertyString(p loadconfig.Optional[string], def float64) string {
	name, ok := p.Get()
	if !ok {
		return fmt.Sprintf("<none> (default %s)", strconv.FormatFloat(def, 'g', -1, 64))
	}
	return fmt.Sprintf("%s (default %s)", name, strconv.FormatFloat(def, 'g', -1, 64))
}

func paramsString(params map[string]any) string {
	if len(params) == 0 {
		return "{}"
	}
	pairs := make([]string, 0, len(params))
	for _, k := range slices.Sorted(maps.Keys(params)) {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, params[k]))
	}
	return strings.Join(pairs, " ")
}

func batchSizeString(n int) string {
	if n == loadconfig.DefaultBatchSize {
		return "auto"
	}
	return strconv.Itoa(n)
}
