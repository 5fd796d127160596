package domain

// MaxOptions caps the number of selectable options on a node.
// USSD keypads address options 1-9, so 9 is a hard limit.
const MaxOptions = 9

// PromptSoftLimit is the display length carriers reliably handle.
// Longer prompts are flagged by the validator but never rejected.
const PromptSoftLimit = 160

// MenuNode is one screen of an interactive dialog: prompt text plus up
// to nine selectable options, or a terminal (session-ending) screen.
type MenuNode struct {
	ID     string `json:"id" yaml:"id"`
	Prompt string `json:"prompt" yaml:"prompt"`

	// Options is the ordered list of selectable labels. The caller picks
	// one by pressing its 1-based position on the keypad.
	Options []string `json:"options,omitempty" yaml:"options,omitempty"`

	// Terminal marks a node that ends the session when reached.
	// A terminal node is expected to carry no options.
	Terminal bool `json:"terminal,omitempty" yaml:"terminal,omitempty"`
}

// Clone returns a deep copy of the node.
func (n MenuNode) Clone() MenuNode {
	out := n
	if n.Options != nil {
		out.Options = make([]string, len(n.Options))
		copy(out.Options, n.Options)
	}
	return out
}
