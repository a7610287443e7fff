package net

import "hpetri/token"

// Place is a capacity-bounded multiset of tokens at a fixed tree level.
// Capacity -1 means unbounded. Tokens inserted need not be at Place's own
// level themselves in general usage; the engine is responsible for
// projecting a fire request's token onto each place's level before calling
// PutToken/TakeToken/Count (see Engine.CanFire and Engine.fire).
type Place struct {
	ID       int
	Capacity int
	Level    int

	tokens map[*token.Node]int
	total  int
}

// NewPlace creates a place with the given capacity (-1 for unbounded) and
// tree level (root = 1).
func NewPlace(id, capacity, level int) *Place {
	return &Place{
		ID:       id,
		Capacity: capacity,
		Level:    level,
		tokens:   make(map[*token.Node]int),
	}
}

// HasCapacityLeft reports whether n more tokens can be accepted without
// exceeding Capacity.
func (p *Place) HasCapacityLeft(n int) bool {
	return p.Capacity == -1 || p.total+n <= p.Capacity
}

// PutToken inserts one occurrence of t. Precondition: HasCapacityLeft(1).
// Violating it is a programming error, not a recoverable condition.
func (p *Place) PutToken(t token.Pointer) {
	if !p.HasCapacityLeft(1) {
		panic(&InvariantError{Op: "PutToken", Detail: "place at capacity", PlaceID: p.ID})
	}
	p.tokens[t.Node()]++
	p.total++
}

// TakeToken removes one occurrence of t. Precondition: t is present.
func (p *Place) TakeToken(t token.Pointer) {
	n, ok := p.tokens[t.Node()]
	if !ok || n == 0 {
		panic(&InvariantError{Op: "TakeToken", Detail: "token not present in place", PlaceID: p.ID})
	}
	if n == 1 {
		delete(p.tokens, t.Node())
	} else {
		p.tokens[t.Node()] = n - 1
	}
	p.total--
}

// Count returns the number of occurrences of t currently held.
func (p *Place) Count(t token.Pointer) int {
	return p.tokens[t.Node()]
}

// TokenCount returns the total number of token occurrences held.
func (p *Place) TokenCount() int { return p.total }

// Tokens returns a read-only snapshot: one entry per distinct node, that
// node's occurrence count. Intended for inspection/logging, not for
// mutation.
func (p *Place) Tokens() map[*token.Node]int {
	out := make(map[*token.Node]int, len(p.tokens))
	for n, c := range p.tokens {
		out[n] = c
	}
	return out
}
