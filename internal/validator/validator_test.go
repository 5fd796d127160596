package validator_test

import (
	"strings"
	"testing"

	"github.com/sautiflow/sauti/internal/validator"
	"github.com/sautiflow/sauti/pkg/domain"
)

func codes(issues []validator.Issue) []validator.Code {
	out := make([]validator.Code, 0, len(issues))
	for _, is := range issues {
		out = append(out, is.Code)
	}
	return out
}

func hasCode(issues []validator.Issue, code validator.Code) bool {
	for _, is := range issues {
		if is.Code == code {
			return true
		}
	}
	return false
}

func TestValidate(t *testing.T) {
	t.Run("clean graph yields no issues", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		if err := g.AddOption(g.RootID, "Check balance"); err != nil {
			t.Fatal(err)
		}
		issues := validator.Validate(g)
		if issues == nil {
			t.Fatal("expected a non-nil slice")
		}
		if len(issues) != 0 {
			t.Errorf("unexpected issues: %v", codes(issues))
		}
	})

	t.Run("missing root", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		g.RootID = "ghost"
		if !hasCode(validator.Validate(g), validator.CodeMissingRoot) {
			t.Error("expected missing_root")
		}
	})

	t.Run("blank prompt", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		if _, err := g.AddNode(domain.MenuNode{ID: "blank", Prompt: "   ", Options: []string{"x"}}); err != nil {
			t.Fatal(err)
		}
		if !hasCode(validator.Validate(g), validator.CodeBlankPrompt) {
			t.Error("expected blank_prompt")
		}
	})

	t.Run("non-terminal node without options", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		if _, err := g.AddNode(domain.MenuNode{ID: "deadend", Prompt: "Pick"}); err != nil {
			t.Fatal(err)
		}
		if !hasCode(validator.Validate(g), validator.CodeNoOptions) {
			t.Error("expected no_options")
		}
	})

	t.Run("terminal node with options", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		if _, err := g.AddNode(domain.MenuNode{ID: "bye", Prompt: "Goodbye", Terminal: true, Options: []string{"x"}}); err != nil {
			t.Fatal(err)
		}
		if !hasCode(validator.Validate(g), validator.CodeTerminalOptions) {
			t.Error("expected terminal_options")
		}
	})

	t.Run("long prompt", func(t *testing.T) {
		g := domain.NewGraph("app-1")
		long := strings.Repeat("a", domain.PromptSoftLimit+1)
		if _, err := g.AddNode(domain.MenuNode{ID: "long", Prompt: long, Terminal: true}); err != nil {
			t.Fatal(err)
		}
		if !hasCode(validator.Validate(g), validator.CodeLongPrompt) {
			t.Error("expected long_prompt")
		}
	})
}
