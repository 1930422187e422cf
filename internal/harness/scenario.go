package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance scenario for the closure index.
// Scenarios script a sequence of edge mutations and assert on the
// resulting reachability state.
type Scenario struct {
	// Name uniquely identifies this scenario; also names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description,omitempty"`

	// Steps are the edge mutations, executed in order.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final closure state.
	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is a single edge mutation.
type Step struct {
	// Op is "link" or "unlink".
	Op string `yaml:"op"`

	From string `yaml:"from"`
	To   string `yaml:"to"`

	// Expect names the rejection the step must produce: SELF_LOOP,
	// ALREADY_LINKED, or WOULD_CREATE_CYCLE. Empty means the step must
	// succeed. Only meaningful for link steps; unlink never rejects.
	Expect string `yaml:"expect,omitempty"`
}

// Assertion validates the closure after all steps ran.
type Assertion struct {
	// Type specifies the assertion:
	// - "reaches": From must reach To
	// - "not_reaches": From must not reach To
	// - "ancestors": Node's ancestor set equals Nodes
	// - "descendants": Node's descendant set equals Nodes
	// - "entry_count": the closure holds exactly Count rows
	Type string `yaml:"type"`

	From string `yaml:"from,omitempty"`
	To   string `yaml:"to,omitempty"`

	Node  string   `yaml:"node,omitempty"`
	Nodes []string `yaml:"nodes,omitempty"`

	Count int `yaml:"count,omitempty"`
}

// LoadScenario reads and decodes a scenario file.
// Decoding is strict: unknown fields are an error.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}

	var sc Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&sc); err != nil {
		return nil, fmt.Errorf("decode scenario %s: %w", path, err)
	}

	if err := sc.check(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &sc, nil
}

// check enforces structural rules before execution.
func (sc *Scenario) check() error {
	if sc.Name == "" {
		return fmt.Errorf("missing name")
	}
	if len(sc.Steps) == 0 {
		return fmt.Errorf("no steps")
	}
	for i, st := range sc.Steps {
		switch st.Op {
		case "link":
			// ok
		case "unlink":
			if st.Expect != "" {
				return fmt.Errorf("step %d: unlink cannot expect a rejection", i)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, st.Op)
		}
		if st.From == "" || st.To == "" {
			return fmt.Errorf("step %d: missing endpoint", i)
		}
	}
	for i, a := range sc.Assertions {
		switch a.Type {
		case "reaches", "not_reaches":
			if a.From == "" || a.To == "" {
				return fmt.Errorf("assertion %d: %s needs from and to", i, a.Type)
			}
		case "ancestors", "descendants":
			if a.Node == "" {
				return fmt.Errorf("assertion %d: %s needs node", i, a.Type)
			}
		case "entry_count":
			// zero is a legal expectation
		default:
			return fmt.Errorf("assertion %d: unknown type %q", i, a.Type)
		}
	}
	return nil
}
