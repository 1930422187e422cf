// Package manifest loads declarative provenance graph manifests.
//
// A manifest is a YAML file declaring artifact nodes and the derivation
// links between them. Manifests are validated against an embedded CUE schema
// before use, then applied link-by-link through the store's insertion path,
// so every imported edge passes the same guard checks as an ad-hoc one.
package manifest

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is a declarative description of a provenance subgraph.
type Manifest struct {
	// Name identifies the manifest in logs and errors.
	Name string `yaml:"name"`

	// Description explains what the graph represents.
	Description string `yaml:"description,omitempty"`

	// Nodes declares local aliases for artifacts. A node without an
	// explicit id gets one minted at apply time.
	Nodes []Node `yaml:"nodes,omitempty"`

	// Links are the directed edges to insert, in declaration order.
	Links []Link `yaml:"links"`
}

// Node declares an artifact alias. Ref is the manifest-local name used by
// links; ID is the store-visible node id, minted when empty.
type Node struct {
	Ref string `yaml:"ref"`
	ID  string `yaml:"id,omitempty"`
}

// Link is one directed edge. From and To name either a declared node ref or
// a literal node id.
type Link struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadFile reads, decodes, and validates a manifest file.
func LoadFile(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// Load decodes and validates manifest bytes.
//
// Decoding is strict: unknown fields are an error, so typos in field names
// fail loudly instead of silently dropping links. The decoded document is
// then validated against the embedded CUE schema.
func Load(data []byte) (*Manifest, error) {
	// Decode twice: a raw document for schema validation (absence of
	// optional fields must be visible to CUE), and the typed form for use.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if err := validate(raw); err != nil {
		return nil, err
	}

	var m Manifest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}

	if err := m.checkRefs(); err != nil {
		return nil, err
	}
	return &m, nil
}

// checkRefs enforces manifest-level consistency the schema cannot express:
// unique refs and ids, and no self-referential links.
func (m *Manifest) checkRefs() error {
	refs := make(map[string]bool, len(m.Nodes))
	ids := make(map[string]bool, len(m.Nodes))
	for _, n := range m.Nodes {
		if refs[n.Ref] {
			return fmt.Errorf("duplicate node ref %q", n.Ref)
		}
		refs[n.Ref] = true
		if n.ID != "" {
			if ids[n.ID] {
				return fmt.Errorf("duplicate node id %q", n.ID)
			}
			ids[n.ID] = true
		}
	}

	for i, l := range m.Links {
		if l.From == l.To {
			return fmt.Errorf("link %d: %q -> %q is a self-loop", i, l.From, l.To)
		}
	}
	return nil
}
