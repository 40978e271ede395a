// Package options applies functional options on top of a default value.
package options

// OptionConstructor returns the default value options are applied to.
type OptionConstructor[T any] func() T

// OptionCallback mutates the value being configured.
type OptionCallback[T any] func(*T)

// Apply mutates value with every callback in order. Nil callbacks are skipped.
func Apply[T any](value *T, cbs ...OptionCallback[T]) {
	for _, cb := range cbs {
		if cb != nil {
			cb(value)
		}
	}
}

// ApplyOptions builds a value with constructor and applies every callback in order.
// A nil constructor starts from the zero value.
func ApplyOptions[T any](constructor OptionConstructor[T], cbs []OptionCallback[T]) T {
	var value T

	if constructor != nil {
		value = constructor()
	}

	Apply(&value, cbs...)

	return value
}
