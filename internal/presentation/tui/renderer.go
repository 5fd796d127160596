package tui

import (
	"fmt"
	"strings"

	"github.com/muesli/termenv"
	"github.com/sautiflow/sauti/pkg/domain"
)

// Renderer styles simulator frames for the terminal. Colors degrade
// automatically on dumb terminals via termenv's profile detection.
type Renderer struct {
	p termenv.Profile
}

// NewRenderer creates a renderer using the detected color profile.
func NewRenderer() *Renderer {
	return &Renderer{p: termenv.ColorProfile()}
}

// Screen frames the handset display text.
func (r *Renderer) Screen(text string) string {
	var b strings.Builder
	b.WriteString(termenv.String("┌─ USSD ────────────────────────┐").Foreground(r.p.Color("#818cf8")).String())
	b.WriteString("\n")
	for _, line := range strings.Split(text, "\n") {
		b.WriteString(termenv.String(line).Bold().String())
		b.WriteString("\n")
	}
	b.WriteString(termenv.String("└───────────────────────────────┘").Foreground(r.p.Color("#818cf8")).String())
	return b.String()
}

// Invalid styles an out-of-range keystroke notice.
func (r *Renderer) Invalid(input string) string {
	return termenv.String(fmt.Sprintf("invalid choice: %q", input)).Foreground(r.p.Color("#fb7185")).String()
}

// Stalled styles a routing-failure notice. Distinct wording from
// Invalid: this is the graph's fault, not the caller's.
func (r *Renderer) Stalled(input string) string {
	return termenv.String(fmt.Sprintf("no destination for choice %q (menu authoring gap)", input)).Foreground(r.p.Color("#fbbf24")).String()
}

// Ended styles the session-closed notice.
func (r *Renderer) Ended() string {
	return termenv.String("session ended").Foreground(r.p.Color("#34d399")).String()
}

// Transcript renders the session's step log for the exit dump.
func (r *Renderer) Transcript(sess *domain.Session) string {
	var b strings.Builder
	b.WriteString(termenv.String("transcript:").Bold().String())
	b.WriteString("\n")
	for _, step := range sess.Steps {
		line := fmt.Sprintf("  %s  %-8s %s", step.At.Format("15:04:05"), step.Kind, step.NodeID)
		if step.Input != "" {
			line += fmt.Sprintf("  [%s]", step.Input)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
