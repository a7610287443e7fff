package dsl

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Validate checks def for structural problems: duplicate ids, invalid
// capacities or levels, transitions referencing places that do not exist,
// and initial markings that cannot be expressed directly. Every problem found is collected, not
// just the first.
func (def *Definition) Validate() error {
	var errs *multierror.Error

	places := make(map[int]bool, len(def.Places))
	for _, p := range def.Places {
		if places[p.ID] {
			errs = multierror.Append(errs, fmt.Errorf("place %d declared more than once", p.ID))
		}
		places[p.ID] = true
		if p.Capacity < -1 {
			errs = multierror.Append(errs, fmt.Errorf("place %d: capacity must be -1 or >= 0, got %d", p.ID, p.Capacity))
		}
		if p.Level < 1 {
			errs = multierror.Append(errs, fmt.Errorf("place %d: level must be >= 1, got %d", p.ID, p.Level))
		}
		if p.Level != 1 && p.InitialTokens > 0 {
			errs = multierror.Append(errs, fmt.Errorf("place %d: initial tokens can only be declared at level 1; deeper markings come from firing", p.ID))
		}
		if p.InitialTokens < 0 {
			errs = multierror.Append(errs, fmt.Errorf("place %d: initial_tokens cannot be negative", p.ID))
		}
	}

	transitions := make(map[int]bool, len(def.Transitions))
	for _, t := range def.Transitions {
		if transitions[t.ID] {
			errs = multierror.Append(errs, fmt.Errorf("transition %d declared more than once", t.ID))
		}
		transitions[t.ID] = true
		for _, pid := range t.Inputs {
			if !places[pid] {
				errs = multierror.Append(errs, fmt.Errorf("transition %d: input references unknown place %d", t.ID, pid))
			}
		}
		for _, pid := range t.Outputs {
			if !places[pid] {
				errs = multierror.Append(errs, fmt.Errorf("transition %d: output references unknown place %d", t.ID, pid))
			}
		}
	}

	return errs.ErrorOrNil()
}
