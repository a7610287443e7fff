// Package action adapts typed business logic to the engine's uniform,
// type-blind net.ActionFunc signature. It is deliberately thin: the engine
// never depends on it, and it depends on nothing but net and token.
package action

import (
	"fmt"

	"hpetri/net"
	"hpetri/token"
)

// Wrap lifts a typed handler into a net.ActionFunc. a is asserted to type T
// before fn runs; a nil a is passed to fn as T's zero value, and a non-nil a
// of the wrong type is reported as an error rather than panicking, since it
// reflects a caller mistake at QueueFire time, not an engine invariant
// violation.
func Wrap[T any](fn func(node *token.Node, arg T) error) net.ActionFunc {
	return func(node *token.Node, a, _, _ any) error {
		if a == nil {
			var zero T
			return fn(node, zero)
		}
		arg, ok := a.(T)
		if !ok {
			return fmt.Errorf("action: argument has type %T, want %T", a, arg)
		}
		return fn(node, arg)
	}
}
