package cache

// ScopedKeyer wraps a Keyer with a prefix so several deployments or
// environments can share one cache backend:
//
//	keyer := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "staging:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// LoadKey generates a prefixed load key.
func (k *ScopedKeyer) LoadKey(sourceID string, opts LoadKeyOpts) (string, error) {
	key, err := k.inner.LoadKey(sourceID, opts)
	if err != nil {
		return "", err
	}
	return k.prefix + key, nil
}
