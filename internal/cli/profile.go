package cli

import (
	"maps"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/loadconfig"
)

// Profile is a TOML load profile. Absent keys keep the library defaults.
//
//	label = "Person"
//	relationship_type = "KNOWS"
//	direction = "outgoing"
//	concurrency = 4
//
//	[relationship_weight]
//	property = "weight"
//	default = 0.5
//
//	[params]
//	since = 2020
type Profile struct {
	Label              string         `toml:"label"`
	EndLabel           string         `toml:"end_label"`
	RelationshipType   string         `toml:"relationship_type"`
	Direction          string         `toml:"direction"`
	RelationshipWeight PropertySpec   `toml:"relationship_weight"`
	NodeWeight         PropertySpec   `toml:"node_weight"`
	NodeProperty       PropertySpec   `toml:"node_property"`
	Params             map[string]any `toml:"params"`
	Concurrency        *int           `toml:"concurrency"`
	BatchSize          *int           `toml:"batch_size"`
	AccumulateWeights  *bool          `toml:"accumulate_weights"`
	LogMillis          *int64         `toml:"log_millis"`
}

// PropertySpec names a property and the value used when it is missing.
type PropertySpec struct {
	Property string   `toml:"property"`
	Default  *float64 `toml:"default"`
}

// readProfile decodes a profile file. Unknown keys are rejected so typos do
// not silently fall back to defaults.
func readProfile(path string) (*Profile, error) {
	var p Profile
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidProfile, err, "read profile %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidProfile, "unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return &p, nil
}

// apply overlays the profile onto opts.
func (p *Profile) apply(opts *loadconfig.Options) error {
	if p.Label != "" {
		opts.StartLabel = loadconfig.Some(p.Label)
	}
	if p.EndLabel != "" {
		opts.EndLabel = loadconfig.Some(p.EndLabel)
	}
	if p.RelationshipType != "" {
		opts.RelationshipType = loadconfig.Some(p.RelationshipType)
	}
	if p.Direction != "" {
		d, err := loadconfig.ParseDirection(p.Direction)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidProfile, err, "profile direction")
		}
		opts.Direction = d
	}

	p.RelationshipWeight.apply(&opts.RelationWeightProperty, &opts.RelationDefaultWeight)
	p.NodeWeight.apply(&opts.NodeWeightProperty, &opts.NodeDefaultWeight)
	p.NodeProperty.apply(&opts.NodeProperty, &opts.NodeDefaultPropertyValue)

	if len(p.Params) > 0 {
		if opts.Params == nil {
			opts.Params = map[string]any{}
		}
		maps.Copy(opts.Params, p.Params)
	}
	if p.Concurrency != nil {
		opts.Concurrency = *p.Concurrency
	}
	if p.BatchSize != nil {
		opts.BatchSize = *p.BatchSize
	}
	if p.AccumulateWeights != nil {
		opts.AccumulateWeights = *p.AccumulateWeights
	}
	if p.LogMillis != nil {
		opts.LogMillis = *p.LogMillis
	}
	return nil
}

func (s PropertySpec) apply(property *loadconfig.Optional[string], def *float64) {
	if s.Property != "" {
		*property = loadconfig.Some(s.Property)
	}
	if s.Default != nil {
		*def = *s.Default
	}
}
