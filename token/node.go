// Package token implements the hierarchical, tree-structured tokens that
// flow through a net. A Node is an immutable tree node; a Pointer names one
// node together with the tree's root and the node's depth, and is the unit
// of identity the rest of the engine keys on.
package token

import "github.com/google/uuid"

// Node is one node of an immutable token tree. Nodes are created once (via
// New or AddChild during tree construction) and never mutated afterward;
// sharing a Node across multiple Pointers is how the engine gets its
// shared-ownership semantics for free from the Go garbage collector.
type Node struct {
	id       uuid.UUID
	value    any
	children []*Node
}

// New creates a leaf node carrying an arbitrary payload value.
func New(value any) *Node {
	return &Node{id: uuid.New(), value: value}
}

// AddChild appends a new child node and returns it, so trees can be built
// top-down in a single expression chain.
func (n *Node) AddChild(value any) *Node {
	child := New(value)
	n.children = append(n.children, child)
	return child
}

// Value returns the payload carried by this node.
func (n *Node) Value() any { return n.value }

// Arity returns the number of direct children.
func (n *Node) Arity() int { return len(n.children) }

// ID returns the node's display identifier. Firing semantics never use
// this for identity or equality; node pointer identity is authoritative.
func (n *Node) ID() uuid.UUID { return n.id }
