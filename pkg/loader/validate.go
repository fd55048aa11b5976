package loader

import (
	"context"
	"slices"

	"github.com/matzehuels/graphload/pkg/errors"
	"github.com/matzehuels/graphload/pkg/loadconfig"
	"github.com/matzehuels/graphload/pkg/source"
)

// validate rejects configuration values the loader cannot honor.
func (l *Loader) validate(ctx context.Context, cfg *loadconfig.Config) error {
	if bs := cfg.BatchSize(); bs != loadconfig.DefaultBatchSize && bs <= 0 {
		return errors.New(errors.ErrCodeInvalidBatchSize, "batch size must be positive or %d, got %d", loadconfig.DefaultBatchSize, bs)
	}
	if cfg.IsConcurrent() && cfg.EffectiveConcurrency() < 1 {
		return errors.New(errors.ErrCodeInvalidConcurrency, "concurrency must be at least 1, got %d", cfg.EffectiveConcurrency())
	}

	for _, o := range []loadconfig.Optional[string]{cfg.StartLabel(), cfg.RelationshipType()} {
		if name, ok := o.Get(); ok {
			if err := errors.ValidateLabel(name); err != nil {
				return err
			}
		}
	}
	nodeKeys := nodeKeys(cfg)
	relKeys := relationshipKeys(cfg)
	for _, k := range append(slices.Clone(nodeKeys), relKeys...) {
		if err := errors.ValidatePropertyKey(k); err != nil {
			return err
		}
	}

	lister, ok := l.src.(source.PropertyKeyLister)
	if !ok || (len(nodeKeys) == 0 && len(relKeys) == 0) {
		return nil
	}
	known, err := lister.PropertyKeys(ctx)
	if err != nil {
		return errors.Wrap(errors.ErrCodeSource, err, "list property keys")
	}
	for _, k := range nodeKeys {
		if !slices.Contains(known.Node, k) {
			return errors.New(errors.ErrCodeUnresolvableProperty, "node property %q does not exist", k)
		}
	}
	for _, k := range relKeys {
		if !slices.Contains(known.Relationship, k) {
			return errors.New(errors.ErrCodeUnresolvableProperty, "relationship property %q does not exist", k)
		}
	}
	return nil
}
