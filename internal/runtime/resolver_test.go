package runtime

import (
	"testing"

	"github.com/sautiflow/sauti/pkg/domain"
)

func bankingGraph(t *testing.T) *domain.MenuGraph {
	t.Helper()
	g := domain.NewGraph("app-1")
	root := g.Root()
	root.Prompt = "Welcome to SautiPay"
	root.Options = []string{"Check balance", "Send money", "Help", "Airtime"}
	for _, n := range []domain.MenuNode{
		{ID: "balance", Prompt: "Check balance for which account?", Options: []string{"Savings", "Current"}},
		{ID: "send-money", Prompt: "Send money to which number?", Terminal: true},
		{ID: "helpdesk", Prompt: "Call 100 for assistance", Terminal: true},
	} {
		if _, err := g.AddNode(n); err != nil {
			t.Fatal(err)
		}
	}
	return g
}

func TestLabelResolver(t *testing.T) {
	g := bankingGraph(t)
	r := NewLabelResolver()

	t.Run("advances on prompt match", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, "1")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeAdvanced || out.NextNodeID != "balance" {
			t.Errorf("got %+v, want advance to balance", out)
		}
	})

	t.Run("advances on id match", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, "3")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeAdvanced || out.NextNodeID != "helpdesk" {
			t.Errorf("got %+v, want advance to helpdesk", out)
		}
	})

	t.Run("rejects out-of-range and non-numeric input", func(t *testing.T) {
		for _, raw := range []string{"0", "5", "-1", "abc", ""} {
			out, err := r.Resolve(g, g.RootID, raw)
			if err != nil {
				t.Fatal(err)
			}
			if out.Kind != domain.OutcomeRejected {
				t.Errorf("input %q: got %v, want rejected", raw, out.Kind)
			}
		}
	})

	t.Run("accepts surrounding whitespace", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, " 1 ")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeAdvanced {
			t.Errorf("got %v, want advanced", out.Kind)
		}
	})

	t.Run("stalls when the label echoes nowhere", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, "4")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeStalled {
			t.Errorf("got %v, want stalled", out.Kind)
		}
	})

	t.Run("first match in insertion order wins", func(t *testing.T) {
		amb := domain.NewGraph("app-2")
		root := amb.Root()
		root.Options = []string{"Account"}
		for _, n := range []domain.MenuNode{
			{ID: "a", Prompt: "Your account details", Terminal: true},
			{ID: "b", Prompt: "Close your account", Terminal: true},
		} {
			if _, err := amb.AddNode(n); err != nil {
				t.Fatal(err)
			}
		}
		// Same graph, same input: always the earlier node.
		for i := 0; i < 5; i++ {
			out, err := r.Resolve(amb, amb.RootID, "1")
			if err != nil {
				t.Fatal(err)
			}
			if out.NextNodeID != "a" {
				t.Fatalf("run %d routed to %q", i, out.NextNodeID)
			}
		}
	})

	t.Run("never matches the current node", func(t *testing.T) {
		selfish := domain.NewGraph("app-3")
		root := selfish.Root()
		root.Prompt = "Welcome"
		root.Options = []string{"Welcome"}
		out, err := r.Resolve(selfish, selfish.RootID, "1")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeStalled {
			t.Errorf("got %v, want stalled", out.Kind)
		}
	})

	t.Run("terminal node always ends", func(t *testing.T) {
		out, err := r.Resolve(g, "send-money", "anything")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeEnded {
			t.Errorf("got %v, want ended", out.Kind)
		}
	})

	t.Run("unknown node errors", func(t *testing.T) {
		if _, err := r.Resolve(g, "ghost", "1"); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestEdgeResolver(t *testing.T) {
	g := bankingGraph(t)
	r := NewEdgeResolver(map[string][]string{
		g.RootID: {"balance", "send-money", "helpdesk", ""},
	})

	t.Run("routes by the edge table", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, "2")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeAdvanced || out.NextNodeID != "send-money" {
			t.Errorf("got %+v", out)
		}
	})

	t.Run("empty edge stalls", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, "4")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeStalled {
			t.Errorf("got %v, want stalled", out.Kind)
		}
	})

	t.Run("rejects before consulting edges", func(t *testing.T) {
		out, err := r.Resolve(g, g.RootID, "7")
		if err != nil {
			t.Fatal(err)
		}
		if out.Kind != domain.OutcomeRejected {
			t.Errorf("got %v, want rejected", out.Kind)
		}
	})
}

func TestParseChoice(t *testing.T) {
	cases := []struct {
		raw   string
		count int
		want  int
		ok    bool
	}{
		{"1", 3, 1, true},
		{"3", 3, 3, true},
		{"0", 3, 0, false},
		{"4", 3, 0, false},
		{"01", 3, 1, true},
		{"x", 3, 0, false},
		{"", 3, 0, false},
		{"1", 0, 0, false},
	}
	for _, tc := range cases {
		got, ok := parseChoice(tc.raw, tc.count)
		if got != tc.want || ok != tc.ok {
			t.Errorf("parseChoice(%q, %d) = (%d, %v), want (%d, %v)", tc.raw, tc.count, got, ok, tc.want, tc.ok)
		}
	}
}
