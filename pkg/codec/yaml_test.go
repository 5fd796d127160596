package codec_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sautiflow/sauti/pkg/codec"
	"github.com/sautiflow/sauti/pkg/domain"
)

const billsMenu = `
application_id: bills
service_code: "*384#"
root: root
nodes:
  - id: root
    prompt: Pick a service
    options: [Pay bill, Check balance]
  - id: pay
    prompt: Enter the amount
    terminal: true
`

func TestParse(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		g, err := codec.Parse([]byte(billsMenu))
		if err != nil {
			t.Fatal(err)
		}
		if g.ApplicationID != "bills" || g.ServiceCode != "*384#" {
			t.Errorf("identity fields %q %q", g.ApplicationID, g.ServiceCode)
		}
		if g.RootID != "root" {
			t.Errorf("RootID = %q", g.RootID)
		}
		if len(g.Nodes) != 2 {
			t.Fatalf("node count %d", len(g.Nodes))
		}
		if got := g.Root().Options; len(got) != 2 || got[0] != "Pay bill" {
			t.Errorf("root options %v", got)
		}
		if !g.Nodes[1].Terminal {
			t.Error("pay node should be terminal")
		}
	})

	t.Run("root defaults when omitted", func(t *testing.T) {
		g, err := codec.Parse([]byte("application_id: app\nnodes:\n  - id: root\n    prompt: Hi\n"))
		if err != nil {
			t.Fatal(err)
		}
		if g.RootID != domain.DefaultRootID {
			t.Errorf("RootID = %q", g.RootID)
		}
	})

	t.Run("weakly typed scalars still load", func(t *testing.T) {
		// Numeric prompts and labels happen in hand-edited files.
		g, err := codec.Parse([]byte("application_id: app\nnodes:\n  - id: root\n    prompt: 123\n    options: [1, 2]\n"))
		if err != nil {
			t.Fatal(err)
		}
		if g.Nodes[0].Prompt != "123" {
			t.Errorf("prompt = %q", g.Nodes[0].Prompt)
		}
		if g.Nodes[0].Options[1] != "2" {
			t.Errorf("options = %v", g.Nodes[0].Options)
		}
	})

	t.Run("missing application_id fails", func(t *testing.T) {
		if _, err := codec.Parse([]byte("nodes:\n  - id: root\n    prompt: Hi\n")); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("missing node id fails", func(t *testing.T) {
		if _, err := codec.Parse([]byte("application_id: app\nnodes:\n  - prompt: Hi\n")); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("option cap fails", func(t *testing.T) {
		doc := "application_id: app\nnodes:\n  - id: root\n    prompt: Hi\n    options: [a, b, c, d, e, f, g, h, i, j]\n"
		_, err := codec.Parse([]byte(doc))
		if !errors.Is(err, domain.ErrOptionLimit) {
			t.Errorf("expected ErrOptionLimit, got %v", err)
		}
	})

	t.Run("malformed yaml fails", func(t *testing.T) {
		if _, err := codec.Parse([]byte("\t{nodes")); err == nil {
			t.Error("expected an error")
		}
	})
}

func TestLoadSaveRoundTrip(t *testing.T) {
	g, err := codec.Parse([]byte(billsMenu))
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "menu.yaml")
	if err := codec.Save(path, g); err != nil {
		t.Fatal(err)
	}

	loaded, err := codec.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.ApplicationID != g.ApplicationID || loaded.RootID != g.RootID {
		t.Errorf("round trip changed identity: %+v", loaded)
	}
	if len(loaded.Nodes) != len(g.Nodes) {
		t.Fatalf("round trip changed node count: %d", len(loaded.Nodes))
	}
	for i := range g.Nodes {
		if loaded.Nodes[i].ID != g.Nodes[i].ID || loaded.Nodes[i].Prompt != g.Nodes[i].Prompt {
			t.Errorf("node %d changed: %+v vs %+v", i, loaded.Nodes[i], g.Nodes[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := codec.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected a wrapped os.ErrNotExist, got %v", err)
	}
}
