package ports

import "github.com/sautiflow/sauti/pkg/domain"

// Resolver decides which node a caller's keystroke leads to. It is a
// pure function of its arguments: calling it repeatedly with the same
// graph, node and input must yield the same Outcome.
//
// The default implementation matches option labels against node text
// (no stored edges); a stricter explicit-edge implementation can be
// swapped in without touching the session engine.
type Resolver interface {
	// Resolve maps (current node, raw keystroke) to an Outcome.
	// It returns an error only when currentNodeID does not exist in
	// the graph; every expected condition is an Outcome variant.
	Resolve(g *domain.MenuGraph, currentNodeID, rawInput string) (domain.Outcome, error)
}
