// Package cache stores materialized graphs between loads.
//
// A load is fully determined by the source it reads and the load-relevant
// parts of its configuration, so its serialized graph can be reused. The
// [Keyer] turns both into a stable key; a [Cache] stores the bytes.
//
// Backends:
//   - [NullCache]: caching disabled
//   - [FileCache]: JSON entries under a directory, for CLI usage
//   - [RedisCache]: shared cache for multi-instance deployments
package cache

import (
	"context"
	"time"
)

// Cache stores byte values with an optional TTL.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl <= 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// DefaultTTL is how long cached loads stay valid.
const DefaultTTL = 24 * time.Hour

// LoadKeyOpts holds the configuration values that change the loaded graph.
// Instrumentation and concurrency settings are excluded: they never change
// the result.
type LoadKeyOpts struct {
	StartLabel               string         `json:"start_label,omitempty"`
	RelationshipType         string         `json:"relationship_type,omitempty"`
	LoadIncoming             bool           `json:"load_incoming"`
	LoadOutgoing             bool           `json:"load_outgoing"`
	RelationWeightProperty   string         `json:"relation_weight_property,omitempty"`
	RelationDefaultWeight    float64        `json:"relation_default_weight"`
	NodeWeightProperty       string         `json:"node_weight_property,omitempty"`
	NodeDefaultWeight        float64        `json:"node_default_weight"`
	NodeProperty             string         `json:"node_property,omitempty"`
	NodeDefaultPropertyValue float64        `json:"node_default_property_value"`
	AccumulateWeights        bool           `json:"accumulate_weights"`
	Params                   map[string]any `json:"params,omitempty"`
}

// Keyer generates cache keys.
type Keyer interface {
	// LoadKey returns the key for a load of sourceID with opts, or an error
	// wrapping ErrUnkeyable when opts cannot be encoded.
	LoadKey(sourceID string, opts LoadKeyOpts) (string, error)
}

// DefaultKeyer hashes the source ID and options.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LoadKey returns "load:<sha256>" over the source ID and options.
func (DefaultKeyer) LoadKey(sourceID string, opts LoadKeyOpts) (string, error) {
	return hashKey("load", sourceID, opts)
}
