// Package dsl provides a fluent builder for embedding menu graphs in Go
// code, used by tests, examples and seeded fixtures.
package dsl

import (
	"fmt"

	"github.com/sautiflow/sauti/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	applicationID string
	serviceCode   string
	rootID        string
	nodes         map[string]*NodeBuilder
	order         []string
}

// New creates a builder for one application.
func New(applicationID string) *Builder {
	return &Builder{
		applicationID: applicationID,
		nodes:         make(map[string]*NodeBuilder),
	}
}

// ServiceCode sets the dial string for the application.
func (b *Builder) ServiceCode(code string) *Builder {
	b.serviceCode = code
	return b
}

// Add creates a new node in the graph. If the node already exists, it
// returns the existing builder. The first node added becomes the root
// unless Root is called.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		node:    domain.MenuNode{ID: id},
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	if b.rootID == "" {
		b.rootID = id
	}
	return nb
}

// Root marks the entry node.
func (b *Builder) Root(id string) *Builder {
	b.rootID = id
	return b
}

// Build compiles the graph, enforcing the hard constraints (a root that
// exists, the option cap). Advisory checks are the validator's job.
func (b *Builder) Build() (*domain.MenuGraph, error) {
	if len(b.order) == 0 {
		return nil, fmt.Errorf("dsl: graph has no nodes")
	}
	if _, ok := b.nodes[b.rootID]; !ok {
		return nil, fmt.Errorf("dsl: root %q: %w", b.rootID, domain.ErrNodeNotFound)
	}

	graph := &domain.MenuGraph{
		ApplicationID: b.applicationID,
		ServiceCode:   b.serviceCode,
		RootID:        b.rootID,
		Nodes:         make([]domain.MenuNode, 0, len(b.order)),
	}
	for _, id := range b.order {
		node := b.nodes[id].node
		if len(node.Options) > domain.MaxOptions {
			return nil, fmt.Errorf("dsl: node %q: %w", id, domain.ErrOptionLimit)
		}
		graph.Nodes = append(graph.Nodes, node.Clone())
	}
	return graph, nil
}

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	node    domain.MenuNode
	builder *Builder
}

// Prompt sets the display text for the node.
func (n *NodeBuilder) Prompt(text string) *NodeBuilder {
	n.node.Prompt = text
	return n
}

// Options sets the ordered option labels.
func (n *NodeBuilder) Options(labels ...string) *NodeBuilder {
	n.node.Options = labels
	return n
}

// Terminal marks the node as session-ending.
func (n *NodeBuilder) Terminal() *NodeBuilder {
	n.node.Terminal = true
	return n
}

// Add continues building on the parent, for chained declarations.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

// Build delegates to the parent builder.
func (n *NodeBuilder) Build() (*domain.MenuGraph, error) {
	return n.builder.Build()
}
