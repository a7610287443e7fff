package net

import (
	"hpetri/logging"
	"hpetri/token"
)

// Net is the facade external callers use: configure places and transitions,
// seed the initial marking, then drive firing through QueueFire. It is a
// thin wrapper over Engine that exists so the engine's internals (the
// cascade, the deferred queues) are never exposed to callers.
type Net struct {
	engine *Engine
}

// New builds an empty net. A nil sink disables diagnostic logging.
func New(sink logging.Sink) *Net {
	return &Net{engine: NewEngine(sink)}
}

// CreatePlace registers a place with the given capacity (-1 for unbounded)
// and tree level (root = 1).
func (n *Net) CreatePlace(id, capacity, level int) *Place {
	return n.engine.CreatePlace(id, capacity, level)
}

// CreateTransition registers a transition. inputs/outputs are ordered place
// id sequences; a repeated id means that place participates with
// multiplicity >= 2.
func (n *Net) CreateTransition(id int, inputs, outputs []int, action ActionFunc) *Transition {
	return n.engine.CreateTransition(id, inputs, outputs, action)
}

// AddToken seeds placeID with t, outside of any firing.
func (n *Net) AddToken(placeID int, t token.Pointer) error {
	return n.engine.AddToken(placeID, t)
}

// QueueFire requests that transitionID fire for t, carrying up to three
// opaque action arguments. If not currently enabled the request is parked
// and retried automatically as later occurrences free it up.
func (n *Net) QueueFire(transitionID int, t token.Pointer, a, b, c any) error {
	return n.engine.QueueFire(NewFire(transitionID, t, a, b, c))
}

// CanFire reports whether transitionID would fire for t right now, without
// firing it.
func (n *Net) CanFire(transitionID int, t token.Pointer) bool {
	return n.engine.CanFire(Fire{TransitionID: transitionID, Token: t})
}

// Tokens returns a snapshot of placeID's contents.
func (n *Net) Tokens(placeID int) (map[*token.Node]int, error) {
	return n.engine.Tokens(placeID)
}

// Reserve pre-sizes transitionID's deferred queue.
func (n *Net) Reserve(transitionID, hint int) {
	n.engine.Reserve(transitionID, hint)
}
