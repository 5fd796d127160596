package domain

// OutcomeKind classifies the result of resolving one keystroke.
type OutcomeKind string

const (
	// OutcomeRejected means the input did not parse to an in-range
	// option number. Expected and recoverable; the session stays put.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomeEnded means the current node is terminal and accepts no
	// further input.
	OutcomeEnded OutcomeKind = "ended"
	// OutcomeAdvanced means the input selected an option and a
	// destination node was found.
	OutcomeAdvanced OutcomeKind = "advanced"
	// OutcomeStalled means the input was valid but no destination could
	// be matched. Not an error: a designed fallback for
	// incompletely-authored graphs, visible only as "no progress".
	OutcomeStalled OutcomeKind = "stalled"
)

// Outcome is the resolver's decision for one keystroke.
type Outcome struct {
	Kind OutcomeKind

	// NextNodeID is set only for OutcomeAdvanced.
	NextNodeID string
}
