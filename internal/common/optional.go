// Package common provides shared data types used throughout the linter.
//
//nolint:revive // "common" is an appropriate name for shared utilities package
package common

// Optional represents a configuration value that may or may not have been
// explicitly set. It distinguishes "unset, inherit from a lower layer" from
// an explicit zero value such as false or "".
type Optional[T any] struct {
	value *T
}

// Some creates an Optional holding the given value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: &value}
}

// None creates an unset Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// IsSet returns true if the value has been explicitly set.
func (o Optional[T]) IsSet() bool {
	return o.value != nil
}

// Value returns the stored value, or the zero value of T when unset.
// Callers that need to distinguish the two must check IsSet first.
func (o Optional[T]) Value() T {
	if o.value == nil {
		var zero T
		return zero
	}
	return *o.value
}

// Or returns the stored value when set, otherwise fallback.
func (o Optional[T]) Or(fallback T) T {
	if o.value == nil {
		return fallback
	}
	return *o.value
}
