package net

import (
	"fmt"

	"hpetri/token"
)

// Fire pairs a transition id with the token it should fire for and up to
// three opaque action arguments. Equality and the deferred-queue key are
// (TransitionID, Token node identity); A/B/C never participate in either.
type Fire struct {
	TransitionID int
	Token        token.Pointer
	A, B, C      any
}

// NewFire constructs a Fire request.
func NewFire(transitionID int, t token.Pointer, a, b, c any) Fire {
	return Fire{TransitionID: transitionID, Token: t, A: a, B: b, C: c}
}

// Equal reports whether two fire requests share a transition and token
// identity.
func (f Fire) Equal(other Fire) bool {
	return f.TransitionID == other.TransitionID && f.Token.Equal(other.Token)
}

// String renders a debug identity for logging.
func (f Fire) String() string {
	return fmt.Sprintf("Fire(T%d, %s)", f.TransitionID, f.Token.String())
}
