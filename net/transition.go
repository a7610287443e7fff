package net

import "hpetri/token"

// ActionFunc is the engine's uniform, type-blind action signature: the
// node the firing token points at, and three opaque arguments supplied at
// queueFire time. Typed wrapping around this slot is the job of package
// action, an external collaborator the engine does not depend on.
type ActionFunc func(node *token.Node, a, b, c any) error

// Transition is static after construction: an ordered sequence of input
// place ids and output place ids (a place may repeat, meaning multiplicity
// >= 2), plus an optional action. Order is preserved because repeated
// places must be drained/filled once per occurrence during fire.
type Transition struct {
	ID      int
	Inputs  []int
	Outputs []int
	Action  ActionFunc

	requiredTokens   map[int]int
	requiredCapacity map[int]int
	distinctInputs   []int
	distinctOutputs  []int
	inputSet         map[int]bool
	outputSet        map[int]bool
}

// NewTransition derives per-place arc multiplicities from the input/output
// sequences. The sequences are copied so later caller mutation cannot
// affect the transition.
func NewTransition(id int, inputs, outputs []int, action ActionFunc) *Transition {
	t := &Transition{
		ID:               id,
		Inputs:           append([]int(nil), inputs...),
		Outputs:          append([]int(nil), outputs...),
		Action:           action,
		requiredTokens:   make(map[int]int),
		requiredCapacity: make(map[int]int),
		inputSet:         make(map[int]bool),
		outputSet:        make(map[int]bool),
	}
	for _, p := range t.Inputs {
		if _, seen := t.requiredTokens[p]; !seen {
			t.distinctInputs = append(t.distinctInputs, p)
		}
		t.requiredTokens[p]++
		t.inputSet[p] = true
	}
	for _, p := range t.Outputs {
		if _, seen := t.requiredCapacity[p]; !seen {
			t.distinctOutputs = append(t.distinctOutputs, p)
		}
		t.requiredCapacity[p]++
		t.outputSet[p] = true
	}
	return t
}

// RequiredTokens returns the multiplicity with which placeID appears in
// Inputs (required-count semantics: repeated input places demand a higher
// count of the same token, not N distinct occurrences).
func (t *Transition) RequiredTokens(placeID int) int { return t.requiredTokens[placeID] }

// RequiredCapacity returns the multiplicity with which placeID appears in
// Outputs.
func (t *Transition) RequiredCapacity(placeID int) int { return t.requiredCapacity[placeID] }

// DistinctInputs returns each input place id once, in first-appearance
// order.
func (t *Transition) DistinctInputs() []int { return t.distinctInputs }

// DistinctOutputs returns each output place id once, in first-appearance
// order.
func (t *Transition) DistinctOutputs() []int { return t.distinctOutputs }

// HasInput reports whether placeID feeds this transition.
func (t *Transition) HasInput(placeID int) bool { return t.inputSet[placeID] }

// HasOutput reports whether placeID receives from this transition.
func (t *Transition) HasOutput(placeID int) bool { return t.outputSet[placeID] }
