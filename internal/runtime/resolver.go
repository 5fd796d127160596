package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sautiflow/sauti/pkg/domain"
)

// LabelResolver routes by text similarity: the selected option's label
// is matched case-insensitively as a substring against every other
// node's prompt and id, in graph insertion order, first match wins.
//
// This reproduces the authoring tool's behavior faithfully. It is
// fragile by construction: ambiguous or renamed labels silently
// misroute, and a label with no textual echo anywhere stalls the
// session. Use EdgeResolver when that is not acceptable.
type LabelResolver struct{}

// NewLabelResolver returns the default resolver.
func NewLabelResolver() *LabelResolver {
	return &LabelResolver{}
}

// Resolve maps a keystroke to an Outcome. See ports.Resolver.
func (r *LabelResolver) Resolve(g *domain.MenuGraph, currentNodeID, rawInput string) (domain.Outcome, error) {
	node := g.Node(currentNodeID)
	if node == nil {
		return domain.Outcome{}, fmt.Errorf("resolve: node %q: %w", currentNodeID, domain.ErrNodeNotFound)
	}
	if node.Terminal {
		return domain.Outcome{Kind: domain.OutcomeEnded}, nil
	}

	choice, ok := parseChoice(rawInput, len(node.Options))
	if !ok {
		return domain.Outcome{Kind: domain.OutcomeRejected}, nil
	}

	label := strings.ToLower(node.Options[choice-1])
	for i := range g.Nodes {
		cand := &g.Nodes[i]
		if cand.ID == currentNodeID {
			continue
		}
		if strings.Contains(strings.ToLower(cand.Prompt), label) ||
			strings.Contains(strings.ToLower(cand.ID), label) {
			return domain.Outcome{Kind: domain.OutcomeAdvanced, NextNodeID: cand.ID}, nil
		}
	}

	return domain.Outcome{Kind: domain.OutcomeStalled}, nil
}

// EdgeResolver routes by an explicit edge table: for each node, an
// ordered list of destination ids aligned with its options. A missing
// or empty entry stalls, same as the label resolver.
type EdgeResolver struct {
	// Edges maps node id to per-option destination node ids.
	Edges map[string][]string
}

// NewEdgeResolver builds a resolver over an explicit edge table.
func NewEdgeResolver(edges map[string][]string) *EdgeResolver {
	return &EdgeResolver{Edges: edges}
}

// Resolve maps a keystroke to an Outcome. See ports.Resolver.
func (r *EdgeResolver) Resolve(g *domain.MenuGraph, currentNodeID, rawInput string) (domain.Outcome, error) {
	node := g.Node(currentNodeID)
	if node == nil {
		return domain.Outcome{}, fmt.Errorf("resolve: node %q: %w", currentNodeID, domain.ErrNodeNotFound)
	}
	if node.Terminal {
		return domain.Outcome{Kind: domain.OutcomeEnded}, nil
	}

	choice, ok := parseChoice(rawInput, len(node.Options))
	if !ok {
		return domain.Outcome{Kind: domain.OutcomeRejected}, nil
	}

	targets := r.Edges[currentNodeID]
	if choice > len(targets) {
		return domain.Outcome{Kind: domain.OutcomeStalled}, nil
	}
	target := targets[choice-1]
	if target == "" || g.Node(target) == nil {
		return domain.Outcome{Kind: domain.OutcomeStalled}, nil
	}

	return domain.Outcome{Kind: domain.OutcomeAdvanced, NextNodeID: target}, nil
}

// parseChoice returns the 1-based option selected by raw, or false when
// raw is not an integer in [1, optionCount].
func parseChoice(raw string, optionCount int) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > optionCount {
		return 0, false
	}
	return n, true
}
