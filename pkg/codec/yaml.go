// Package codec reads and writes the YAML menu file format:
//
//	application_id: bills
//	service_code: "*384#"
//	root: root
//	nodes:
//	  - id: root
//	    prompt: Pick 1 or 2
//	    options: [Pay bill, Check balance]
//	  - id: pay
//	    prompt: Enter amount
//	    terminal: true
//
// Documents are decoded into a generic map first and then mapped
// weakly-typed onto the graph, so hand-edited files with numeric
// labels or stray scalar types still load.
package codec

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"github.com/sautiflow/sauti/pkg/domain"
	"gopkg.in/yaml.v3"
)

type graphFile struct {
	ApplicationID string     `mapstructure:"application_id"`
	ServiceCode   string     `mapstructure:"service_code"`
	Root          string     `mapstructure:"root"`
	Nodes         []nodeFile `mapstructure:"nodes"`
}

type nodeFile struct {
	ID       string   `mapstructure:"id"`
	Prompt   string   `mapstructure:"prompt"`
	Options  []string `mapstructure:"options"`
	Terminal bool     `mapstructure:"terminal"`
}

// Parse decodes a YAML menu document.
func Parse(data []byte) (*domain.MenuGraph, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("codec: parse menu: %w", err)
	}

	var file graphFile
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &file,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, fmt.Errorf("codec: decoder: %w", err)
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("codec: decode menu: %w", err)
	}

	if file.ApplicationID == "" {
		return nil, fmt.Errorf("codec: menu file missing application_id")
	}
	if file.Root == "" {
		file.Root = domain.DefaultRootID
	}

	graph := &domain.MenuGraph{
		ApplicationID: file.ApplicationID,
		ServiceCode:   file.ServiceCode,
		RootID:        file.Root,
		Nodes:         make([]domain.MenuNode, 0, len(file.Nodes)),
	}
	for _, n := range file.Nodes {
		if n.ID == "" {
			return nil, fmt.Errorf("codec: menu node missing id")
		}
		if len(n.Options) > domain.MaxOptions {
			return nil, fmt.Errorf("codec: node %q: %w", n.ID, domain.ErrOptionLimit)
		}
		graph.Nodes = append(graph.Nodes, domain.MenuNode{
			ID:       n.ID,
			Prompt:   n.Prompt,
			Options:  n.Options,
			Terminal: n.Terminal,
		})
	}
	return graph, nil
}

// Load reads and decodes a menu file from disk.
func Load(path string) (*domain.MenuGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("codec: read %s: %w", path, err)
	}
	return Parse(data)
}

// Marshal encodes a graph as YAML.
func Marshal(g *domain.MenuGraph) ([]byte, error) {
	out, err := yaml.Marshal(g)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal menu: %w", err)
	}
	return out, nil
}

// Save writes the graph to disk as YAML.
func Save(path string, g *domain.MenuGraph) error {
	data, err := Marshal(g)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("codec: write %s: %w", path, err)
	}
	return nil
}
