package loadconfig

import "fmt"

// Optional holds a value that may be absent.
// The zero value is absent, so unset Options fields mean "no filter" or
// "no property" without any sentinel strings.
type Optional[T any] struct {
	value   T
	present bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, present: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// OptionalString returns Some(s) for a non-empty s and None otherwise.
// It converts flag and file input where the empty string means "not set".
func OptionalString(s string) Optional[string] {
	if s == "" {
		return None[string]()
	}
	return Some(s)
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.present }

// IsPresent reports whether a value is present.
func (o Optional[T]) IsPresent() bool { return o.present }

// OrElse returns the value if present, otherwise fallback.
func (o Optional[T]) OrElse(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// String returns the formatted value, or "<none>" when absent.
func (o Optional[T]) String() string {
	if !o.present {
		return "<none>"
	}
	return fmt.Sprint(o.value)
}
