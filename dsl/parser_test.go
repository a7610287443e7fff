package dsl

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDoc = `
places:
  - id: 1
    capacity: -1
    level: 1
    initial_tokens: 2
  - id: 2
    capacity: 1
    level: 1
transitions:
  - id: 10
    inputs: [1]
    outputs: [2]
`

func TestParseAndBuild(t *testing.T) {
	def, err := Parse(strings.NewReader(validDoc))
	require.NoError(t, err)
	require.NoError(t, def.Validate())

	n, err := Build(def, nil)
	require.NoError(t, err)

	p1, err := n.Tokens(1)
	require.NoError(t, err)
	assert.Len(t, p1, 2)
}

func TestValidateCatchesDanglingReferenceAndDuplicates(t *testing.T) {
	def := &Definition{
		Places: []PlaceDef{
			{ID: 1, Capacity: -1, Level: 1},
			{ID: 1, Capacity: -1, Level: 1},
		},
		Transitions: []TransitionDef{
			{ID: 10, Inputs: []int{99}, Outputs: []int{1}},
		},
	}
	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared more than once")
	assert.Contains(t, err.Error(), "unknown place 99")
}

func TestValidateRejectsDeepInitialMarking(t *testing.T) {
	def := &Definition{
		Places: []PlaceDef{{ID: 1, Capacity: -1, Level: 2, InitialTokens: 1}},
	}
	err := def.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "level 1")
}
