// Package dsl loads a net definition from YAML: places, transitions, and an
// initial marking. It builds a *net.Net but leaves wiring actions onto
// transitions to the caller, since action.Wrap needs a concrete Go type the
// YAML document cannot express.
package dsl

import (
	"io"

	"gopkg.in/yaml.v3"

	"hpetri/logging"
	"hpetri/net"
	"hpetri/token"
)

// PlaceDef describes one place. Capacity -1 means unbounded. InitialTokens
// seeds that many fresh, distinct placeholder tokens at construction time.
type PlaceDef struct {
	ID            int `yaml:"id"`
	Capacity      int `yaml:"capacity"`
	Level         int `yaml:"level"`
	InitialTokens int `yaml:"initial_tokens"`
}

// TransitionDef describes one transition. A place id repeated in
// Inputs/Outputs declares arc multiplicity >= 2.
type TransitionDef struct {
	ID      int   `yaml:"id"`
	Inputs  []int `yaml:"inputs"`
	Outputs []int `yaml:"outputs"`
}

// Definition is the parsed document, not yet validated or built.
type Definition struct {
	Places      []PlaceDef      `yaml:"places"`
	Transitions []TransitionDef `yaml:"transitions"`
}

// Parse decodes a net definition from r.
func Parse(r io.Reader) (*Definition, error) {
	var def Definition
	if err := yaml.NewDecoder(r).Decode(&def); err != nil {
		return nil, err
	}
	return &def, nil
}

// Build validates def and constructs the net it describes. Every
// transition is registered with a nil action; callers attach real action
// logic afterward with net.Net's returned *net.Transition handles are not
// exposed here, so callers instead hold onto the ids they passed in def and
// call Net.CreateTransition again, or more commonly build the net by hand
// once the shape is known and use dsl only for the initial marking.
func Build(def *Definition, sink logging.Sink) (*net.Net, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}
	n := net.New(sink)
	for _, pd := range def.Places {
		n.CreatePlace(pd.ID, pd.Capacity, pd.Level)
		for i := 0; i < pd.InitialTokens; i++ {
			t := token.Root(token.New(nil))
			if err := n.AddToken(pd.ID, t); err != nil {
				return nil, err
			}
		}
	}
	for _, td := range def.Transitions {
		n.CreateTransition(td.ID, td.Inputs, td.Outputs, nil)
	}
	return n, nil
}
