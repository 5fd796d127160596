// Package validator runs structural checks over an authored menu graph.
// Every finding is advisory: graphs are routinely saved in an invalid
// interim state while they are being authored, so validation surfaces a
// badge in the authoring UI and never blocks a save.
package validator

import (
	"fmt"

	"github.com/sautiflow/sauti/pkg/domain"
)

// Code identifies a class of structural issue.
type Code string

const (
	CodeMissingRoot     Code = "missing_root"
	CodeBlankPrompt     Code = "blank_prompt"
	CodeNoOptions       Code = "no_options"
	CodeLongPrompt      Code = "long_prompt"
	CodeTerminalOptions Code = "terminal_options"
)

// Issue is one advisory finding. NodeID is empty for graph-level issues.
type Issue struct {
	Code    Code   `json:"code"`
	NodeID  string `json:"node_id,omitempty"`
	Message string `json:"message"`
}

// Validate checks the graph and returns all findings. It never fails:
// an empty slice means a structurally clean graph.
func Validate(g *domain.MenuGraph) []Issue {
	issues := []Issue{}

	if len(g.Nodes) > 0 && g.Root() == nil {
		issues = append(issues, Issue{
			Code:    CodeMissingRoot,
			Message: fmt.Sprintf("no node carries the root id %q", g.RootID),
		})
	}

	for i := range g.Nodes {
		node := &g.Nodes[i]

		if isBlank(node.Prompt) {
			issues = append(issues, Issue{
				Code:    CodeBlankPrompt,
				NodeID:  node.ID,
				Message: "prompt is empty",
			})
		} else if len(node.Prompt) > domain.PromptSoftLimit {
			issues = append(issues, Issue{
				Code:    CodeLongPrompt,
				NodeID:  node.ID,
				Message: fmt.Sprintf("prompt is %d characters; carriers may truncate past %d", len(node.Prompt), domain.PromptSoftLimit),
			})
		}

		if !node.Terminal && len(node.Options) == 0 {
			issues = append(issues, Issue{
				Code:    CodeNoOptions,
				NodeID:  node.ID,
				Message: "non-terminal node has no options",
			})
		}
		if node.Terminal && len(node.Options) > 0 {
			issues = append(issues, Issue{
				Code:    CodeTerminalOptions,
				NodeID:  node.ID,
				Message: "terminal node carries options that can never be selected",
			})
		}
	}

	return issues
}

func isBlank(s string) bool {
	for _, r := range s {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}
