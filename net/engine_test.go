package net

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hpetri/token"
)

func rootOf(value any) token.Pointer {
	return token.Root(token.New(value))
}

func TestLinearChainDelayedEnablement(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, 1, 1)
	n.CreatePlace(2, 1, 1)
	n.CreatePlace(3, -1, 1)
	n.CreateTransition(10, []int{1}, []int{2}, nil)
	n.CreateTransition(20, []int{2}, []int{3}, nil)

	tok := rootOf("job")

	require.NoError(t, n.QueueFire(20, tok, nil, nil, nil)) // P2 empty: parks
	require.NoError(t, n.AddToken(1, tok))
	require.NoError(t, n.QueueFire(10, tok, nil, nil, nil)) // fires, cascades into 20

	p1, _ := n.Tokens(1)
	p2, _ := n.Tokens(2)
	p3, _ := n.Tokens(3)
	assert.Empty(t, p1)
	assert.Empty(t, p2)
	assert.Equal(t, 1, p3[tok.Node()])
}

func TestCapacityDrivenDeferralWakesParkedRequest(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, 1, 1)
	n.CreatePlace(2, -1, 1)
	n.CreateTransition(10, nil, []int{1}, nil) // source: produces into P1
	n.CreateTransition(20, []int{1}, []int{2}, nil)

	occupant := rootOf("already-there")
	incoming := rootOf("waiting")

	require.NoError(t, n.AddToken(1, occupant))
	require.NoError(t, n.QueueFire(10, incoming, nil, nil, nil)) // P1 full: parks
	require.NoError(t, n.QueueFire(20, occupant, nil, nil, nil)) // frees P1, wakes 10

	p1, _ := n.Tokens(1)
	p2, _ := n.Tokens(2)
	assert.Equal(t, 1, p1[incoming.Node()])
	assert.Equal(t, 1, p2[occupant.Node()])
}

func TestDuplicateArcRequiresMultipleOccurrences(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, -1, 1)
	n.CreatePlace(2, -1, 1)
	n.CreateTransition(10, []int{1, 1}, []int{2}, nil)

	tok := rootOf("pair")
	require.NoError(t, n.AddToken(1, tok))

	assert.False(t, n.CanFire(10, tok), "only one occurrence present, two required")

	require.NoError(t, n.AddToken(1, tok))
	assert.True(t, n.CanFire(10, tok))

	require.NoError(t, n.QueueFire(10, tok, nil, nil, nil))
	p1, _ := n.Tokens(1)
	p2, _ := n.Tokens(2)
	assert.Empty(t, p1)
	assert.Equal(t, 1, p2[tok.Node()])
}

func TestDuplicateArcCapacityCheckOnOutput(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, -1, 1)
	n.CreatePlace(2, 1, 1)
	n.CreateTransition(10, []int{1}, []int{2, 2}, nil)

	tok := rootOf("solo")
	require.NoError(t, n.AddToken(1, tok))

	assert.False(t, n.CanFire(10, tok), "two output occurrences required but capacity is 1")
}

func TestLevelDownProductionDistributesChildren(t *testing.T) {
	n := New(nil)
	n.CreatePlace(2, -1, 2)
	n.CreateTransition(10, nil, []int{2}, nil)

	root := token.New("parent")
	root.AddChild("left")
	root.AddChild("right")
	ptr := token.Root(root)

	require.NoError(t, n.QueueFire(10, ptr, nil, nil, nil))

	p2, _ := n.Tokens(2)
	require.Len(t, p2, 2)
	assert.Equal(t, 1, p2[ptr.Child(0).Node()])
	assert.Equal(t, 1, p2[ptr.Child(1).Node()])
}

func TestLevelUpConsumptionRequiresAllChildren(t *testing.T) {
	n := New(nil)
	n.CreatePlace(2, -1, 2)
	n.CreatePlace(3, -1, 1)
	n.CreateTransition(20, []int{2}, []int{3}, nil)

	root := token.New("parent")
	c1 := root.AddChild("left")
	c2 := root.AddChild("right")
	_ = c2
	ptr := token.Root(root)

	require.NoError(t, n.AddToken(2, ptr.Child(0)))
	assert.False(t, n.CanFire(20, ptr), "second child not yet present")

	require.NoError(t, n.AddToken(2, ptr.Child(1)))
	assert.True(t, n.CanFire(20, ptr))

	require.NoError(t, n.QueueFire(20, ptr, nil, nil, nil))
	p2, _ := n.Tokens(2)
	p3, _ := n.Tokens(3)
	assert.Empty(t, p2)
	assert.Equal(t, 1, p3[root])
	_ = c1
}

func TestSelfLoopNeedsSpareCapacity(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, 1, 1)
	n.CreateTransition(10, []int{1}, []int{1}, nil)

	tok := rootOf("looped")
	require.NoError(t, n.AddToken(1, tok))

	assert.False(t, n.CanFire(10, tok), "place at exact capacity has no spare room for the re-deposit")

	n2 := New(nil)
	n2.CreatePlace(1, 2, 1)
	n2.CreateTransition(10, []int{1}, []int{1}, nil)
	require.NoError(t, n2.AddToken(1, tok))
	assert.True(t, n2.CanFire(10, tok))
	require.NoError(t, n2.QueueFire(10, tok, nil, nil, nil))
	p1, _ := n2.Tokens(1)
	assert.Equal(t, 1, p1[tok.Node()])
}

func TestActionFailureAbortsBeforeTokenMovement(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, -1, 1)
	n.CreatePlace(2, -1, 1)
	boom := errors.New("boom")
	n.CreateTransition(10, []int{1}, []int{2}, func(node *token.Node, a, b, c any) error {
		return boom
	})

	tok := rootOf("x")
	require.NoError(t, n.AddToken(1, tok))

	err := n.QueueFire(10, tok, nil, nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrActionFailed)

	p1, _ := n.Tokens(1)
	p2, _ := n.Tokens(2)
	assert.Equal(t, 1, p1[tok.Node()])
	assert.Empty(t, p2)
}

func TestQueueFireUnknownTransition(t *testing.T) {
	n := New(nil)
	err := n.QueueFire(99, token.Pointer{}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrTransitionNotFound)
}

func TestCanFireWithNullTokenAgainstInputsPanics(t *testing.T) {
	n := New(nil)
	n.CreatePlace(1, -1, 1)
	n.CreateTransition(10, []int{1}, nil, nil)
	assert.Panics(t, func() {
		n.CanFire(10, token.Pointer{})
	})
}
