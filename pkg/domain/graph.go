package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultRootID is the conventional id of a freshly created entry node.
const DefaultRootID = "root"

// MenuGraph is the authored collection of MenuNodes for one dialog
// application. Node order is insertion order and is significant: the
// label resolver scans it, and the authoring UI displays it.
//
// There are no stored edges. Transitions are resolved dynamically by a
// Resolver, which is what makes this a menu collection more than a
// strict graph.
type MenuGraph struct {
	// ApplicationID identifies the owning application.
	ApplicationID string `json:"application_id" yaml:"application_id"`

	// ServiceCode is the dial string subscribers use to reach the
	// application, e.g. "*384#". Informational only.
	ServiceCode string `json:"service_code,omitempty" yaml:"service_code,omitempty"`

	// RootID points at the entry node. Kept as an explicit field rather
	// than relying on a node literally named "root".
	RootID string `json:"root" yaml:"root"`

	Nodes []MenuNode `json:"nodes" yaml:"nodes"`
}

// NewGraph creates a graph with a single entry node so the graph never
// exists in a zero-node state.
func NewGraph(applicationID string) *MenuGraph {
	return &MenuGraph{
		ApplicationID: applicationID,
		RootID:        DefaultRootID,
		Nodes: []MenuNode{
			{ID: DefaultRootID, Prompt: "Welcome"},
		},
	}
}

// Node returns the node with the given id, or nil if absent.
// Graphs are small (menus, not meshes); a linear scan keeps insertion
// order authoritative without a parallel index to maintain.
func (g *MenuGraph) Node(id string) *MenuNode {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i]
		}
	}
	return nil
}

// Root returns the entry node, or nil if RootID is dangling.
func (g *MenuGraph) Root() *MenuNode {
	return g.Node(g.RootID)
}

// AddNode appends a node and returns its id. An empty id is replaced
// with a generated one; a duplicate id is an error.
func (g *MenuGraph) AddNode(node MenuNode) (string, error) {
	if node.ID == "" {
		node.ID = uuid.NewString()
	}
	if g.Node(node.ID) != nil {
		return "", fmt.Errorf("menu: add node %q: %w", node.ID, ErrDuplicateNode)
	}
	if len(node.Options) > MaxOptions {
		return "", fmt.Errorf("menu: add node %q: %w", node.ID, ErrOptionLimit)
	}
	g.Nodes = append(g.Nodes, node.Clone())
	return node.ID, nil
}

// UpdateNode replaces the prompt and terminal flag of an existing node.
func (g *MenuGraph) UpdateNode(id, prompt string, terminal bool) error {
	node := g.Node(id)
	if node == nil {
		return fmt.Errorf("menu: update node %q: %w", id, ErrNodeNotFound)
	}
	node.Prompt = prompt
	node.Terminal = terminal
	return nil
}

// DeleteNode removes a node. The last remaining node cannot be removed:
// a graph always contains at least one node.
func (g *MenuGraph) DeleteNode(id string) error {
	if len(g.Nodes) <= 1 {
		return fmt.Errorf("menu: delete node %q: %w", id, ErrLastNode)
	}
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			g.Nodes = append(g.Nodes[:i], g.Nodes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("menu: delete node %q: %w", id, ErrNodeNotFound)
}

// SetRoot makes the given node the entry node. The previous root is
// reassigned a freshly generated id, matching the authoring tool's
// observable behavior: sessions pinned to the old root id are
// invalidated by this operation.
func (g *MenuGraph) SetRoot(id string) error {
	target := g.Node(id)
	if target == nil {
		return fmt.Errorf("menu: set root %q: %w", id, ErrNodeNotFound)
	}
	if g.RootID == id {
		return nil
	}
	if prev := g.Root(); prev != nil {
		prev.ID = uuid.NewString()
	}
	g.RootID = id
	return nil
}

// AddOption appends an option label to a node, enforcing the keypad cap.
func (g *MenuGraph) AddOption(nodeID, label string) error {
	node := g.Node(nodeID)
	if node == nil {
		return fmt.Errorf("menu: add option on %q: %w", nodeID, ErrNodeNotFound)
	}
	if len(node.Options) >= MaxOptions {
		return fmt.Errorf("menu: add option on %q: %w", nodeID, ErrOptionLimit)
	}
	node.Options = append(node.Options, label)
	return nil
}

// UpdateOption replaces the label at a 0-based position.
func (g *MenuGraph) UpdateOption(nodeID string, index int, label string) error {
	node := g.Node(nodeID)
	if node == nil {
		return fmt.Errorf("menu: update option on %q: %w", nodeID, ErrNodeNotFound)
	}
	if index < 0 || index >= len(node.Options) {
		return fmt.Errorf("menu: update option %d on %q: %w", index, nodeID, ErrOptionIndex)
	}
	node.Options[index] = label
	return nil
}

// RemoveOption deletes the label at a 0-based position.
func (g *MenuGraph) RemoveOption(nodeID string, index int) error {
	node := g.Node(nodeID)
	if node == nil {
		return fmt.Errorf("menu: remove option on %q: %w", nodeID, ErrNodeNotFound)
	}
	if index < 0 || index >= len(node.Options) {
		return fmt.Errorf("menu: remove option %d on %q: %w", index, nodeID, ErrOptionIndex)
	}
	node.Options = append(node.Options[:index], node.Options[index+1:]...)
	return nil
}

// Clone returns a deep copy of the graph.
func (g *MenuGraph) Clone() *MenuGraph {
	out := *g
	out.Nodes = make([]MenuNode, len(g.Nodes))
	for i, n := range g.Nodes {
		out.Nodes[i] = n.Clone()
	}
	return &out
}
