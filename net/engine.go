package net

import (
	"fmt"

	"hpetri/logging"
	"hpetri/token"
)

// Engine is the firing engine: single-threaded, synchronous, holding every
// place and transition plus the deferred-fire bookkeeping for requests that
// were not enabled when queued. It has no locking of its own; callers that
// need concurrent access must serialize at a layer above.
type Engine struct {
	places          map[int]*Place
	transitions     map[int]*Transition
	transitionOrder []int // insertion order, walked by searchNextPossibleFires
	deferred        map[int]*transitionQueue

	sink logging.Sink
}

// NewEngine builds an empty engine. A nil sink disables logging.
func NewEngine(sink logging.Sink) *Engine {
	if sink == nil {
		sink = logging.Nop{}
	}
	return &Engine{
		places:      make(map[int]*Place),
		transitions: make(map[int]*Transition),
		deferred:    make(map[int]*transitionQueue),
		sink:        sink,
	}
}

// CreatePlace registers a new place. Re-registering an existing id replaces
// it, discarding any tokens it held; callers normally configure a net once
// before firing anything.
func (e *Engine) CreatePlace(id, capacity, level int) *Place {
	p := NewPlace(id, capacity, level)
	e.places[id] = p
	return p
}

// CreateTransition registers a new transition.
func (e *Engine) CreateTransition(id int, inputs, outputs []int, action ActionFunc) *Transition {
	t := NewTransition(id, inputs, outputs, action)
	if _, exists := e.transitions[id]; !exists {
		e.transitionOrder = append(e.transitionOrder, id)
	}
	e.transitions[id] = t
	return t
}

// AddToken places t directly into placeID, bypassing firing. Used to seed
// initial marking. t is projected onto the place's level exactly as a fire
// would (see projectTokenOntoPlace).
func (e *Engine) AddToken(placeID int, t token.Pointer) error {
	p, ok := e.places[placeID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrPlaceNotFound, placeID)
	}
	for _, c := range projectTokenOntoPlace(t, p) {
		p.PutToken(c)
	}
	return nil
}

// Tokens returns a snapshot of placeID's contents.
func (e *Engine) Tokens(placeID int) (map[*token.Node]int, error) {
	p, ok := e.places[placeID]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrPlaceNotFound, placeID)
	}
	return p.Tokens(), nil
}

// Reserve pre-sizes the deferred queue for transitionID, an optional hint
// for callers that know roughly how many requests will park there.
func (e *Engine) Reserve(transitionID, hint int) {
	e.deferredQueue(transitionID).reserve(hint)
}

// projectTokenOntoPlace maps a fire request's token onto the set of nodes a
// place at a possibly-shallower level actually holds: the token itself when
// levels match, its children when the place is one level down, or the full
// breadth-first frontier at the place's level in general. A token deeper
// than the place it is being measured against is a caller error.
func projectTokenOntoPlace(tok token.Pointer, p *Place) []token.Pointer {
	if tok.Level() > p.Level {
		panic(&InvariantError{Op: "project", Detail: "token level deeper than place level", PlaceID: p.ID})
	}
	return tok.Collect(p.Level)
}

// CanFire reports whether f is currently enabled: every input place holds
// enough of the projected token, and every output place has room for it.
// A null token is only meaningful against a transition with no input
// places; using one against real inputs is a programming
// error, not a domain-legal "not enabled" outcome.
func (e *Engine) CanFire(f Fire) bool {
	t, ok := e.transitions[f.TransitionID]
	if !ok {
		return false
	}
	if f.Token.IsNil() && len(t.DistinctInputs()) > 0 {
		panic(&InvariantError{Op: "CanFire", Detail: "null token against transition with input places", PlaceID: f.TransitionID})
	}
	for _, pid := range t.DistinctInputs() {
		p, ok := e.places[pid]
		if !ok {
			panic(&InvariantError{Op: "CanFire", Detail: "transition references unknown place", PlaceID: pid})
		}
		required := t.RequiredTokens(pid)
		for _, c := range projectTokenOntoPlace(f.Token, p) {
			if p.Count(c) < required {
				return false
			}
		}
	}
	for _, pid := range t.DistinctOutputs() {
		p, ok := e.places[pid]
		if !ok {
			panic(&InvariantError{Op: "CanFire", Detail: "transition references unknown place", PlaceID: pid})
		}
		proj := projectTokenOntoPlace(f.Token, p)
		required := t.RequiredCapacity(pid)
		if !p.HasCapacityLeft(len(proj) * required) {
			return false
		}
	}
	return true
}

// fire performs one atomic occurrence: the action runs first (an error
// aborts before any token moves, per the pinned action-before-movement
// ordering — see DESIGN.md), then input places are drained and output
// places filled, in the transition's declared order so that a repeated
// place is touched once per occurrence.
func (e *Engine) fire(f Fire) error {
	t := e.transitions[f.TransitionID]
	if t.Action != nil {
		var node *token.Node
		if !f.Token.IsNil() {
			node = f.Token.Node()
		}
		if err := t.Action(node, f.A, f.B, f.C); err != nil {
			return fmt.Errorf("%w: transition %d: %v", ErrActionFailed, f.TransitionID, err)
		}
	}
	for _, pid := range t.Inputs {
		p := e.places[pid]
		for _, c := range projectTokenOntoPlace(f.Token, p) {
			p.TakeToken(c)
		}
	}
	for _, pid := range t.Outputs {
		p := e.places[pid]
		for _, c := range projectTokenOntoPlace(f.Token, p) {
			p.PutToken(c)
		}
	}
	return nil
}

// searchNextPossibleFires builds the worklist of candidates that f's
// occurrence may have newly enabled: one token-carried candidate per
// downstream transition that consumes from a place f just produced into
// (the produced token may now satisfy that transition), and one
// capacity-freed candidate (null token, meaning "check whoever is
// waiting") per downstream transition that produces into a bounded place f
// just consumed from.
func (e *Engine) searchNextPossibleFires(f Fire) []Fire {
	src := e.transitions[f.TransitionID]
	var candidates []Fire
	for _, tid := range e.transitionOrder {
		t2 := e.transitions[tid]
		for _, op := range src.DistinctOutputs() {
			if t2.HasInput(op) {
				candidates = append(candidates, Fire{TransitionID: t2.ID, Token: f.Token})
				break
			}
		}
		for _, ip := range src.DistinctInputs() {
			if e.places[ip].Capacity != -1 && t2.HasOutput(ip) {
				candidates = append(candidates, Fire{TransitionID: t2.ID})
				break
			}
		}
	}
	return candidates
}

func (e *Engine) deferredQueue(transitionID int) *transitionQueue {
	q, ok := e.deferred[transitionID]
	if !ok {
		q = newTransitionQueue()
		e.deferred[transitionID] = q
	}
	return q
}

// QueueFire is the engine's single entry point. If f is enabled right now
// it fires immediately and cascades through everything its own occurrence
// may enable; otherwise the request is parked, to be reconsidered the next
// time a cascade searches for it. Non-enablement is not an error.
func (e *Engine) QueueFire(f Fire) error {
	if _, ok := e.transitions[f.TransitionID]; !ok {
		return fmt.Errorf("%w: %d", ErrTransitionNotFound, f.TransitionID)
	}
	if e.CanFire(f) {
		e.sink.Write(func() string { return fmt.Sprintf("queueFire: %s enabled, firing immediately", f) })
		if err := e.fire(f); err != nil {
			return err
		}
		return e.cascade(e.searchNextPossibleFires(f))
	}
	e.sink.Write(func() string { return fmt.Sprintf("queueFire: %s not enabled, deferring", f) })
	e.deferredQueue(f.TransitionID).insert(f)
	return nil
}

// cascade drains a worklist of candidates, non-recursively. Every
// successful fire restarts the scan from the front of the (now mutated)
// worklist, since an occurrence may enable something earlier candidates
// already passed over; a candidate that turns out to be stale or still not
// enabled is simply dropped and the scan continues without restarting.
func (e *Engine) cascade(worklist []Fire) error {
	for len(worklist) > 0 {
		progressed := false
		for i := 0; i < len(worklist); i++ {
			c := worklist[i]
			tq := e.deferredQueue(c.TransitionID)

			var qf *queuedFire
			if c.Token.IsNil() {
				qf = tq.lookupAny()
			} else {
				qf = tq.lookupToken(c.Token.Node())
			}
			if qf == nil || !e.CanFire(qf.fire) {
				worklist = append(worklist[:i], worklist[i+1:]...)
				i--
				continue
			}

			tq.remove(qf)
			e.sink.Write(func() string { return fmt.Sprintf("fire: %s", qf.fire) })
			if err := e.fire(qf.fire); err != nil {
				return err
			}
			next := e.searchNextPossibleFires(qf.fire)
			worklist = append(worklist[:i], worklist[i+1:]...)
			worklist = append(worklist, next...)
			progressed = true
			break
		}
		if !progressed {
			break
		}
	}
	return nil
}
