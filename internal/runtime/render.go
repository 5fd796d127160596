package runtime

import (
	"fmt"
	"strings"

	"github.com/sautiflow/sauti/pkg/domain"
)

// Screen builds the display text for a node: the prompt followed by its
// numbered options, the way a gateway sends it to the handset.
func Screen(g *domain.MenuGraph, nodeID string) (string, error) {
	node := g.Node(nodeID)
	if node == nil {
		return "", fmt.Errorf("render: node %q: %w", nodeID, domain.ErrNodeNotFound)
	}

	var b strings.Builder
	b.WriteString(node.Prompt)
	for i, opt := range node.Options {
		b.WriteString(fmt.Sprintf("\n%d. %s", i+1, opt))
	}
	return b.String(), nil
}
