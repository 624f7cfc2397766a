// Package scenario reads batches of named solve requests from YAML.
//
// A file holds one or more documents, each with a top-level scenarios list:
//
//	scenarios:
//	  - name: checkout
//	    model: mms
//	    parameters:
//	      lambda: 30
//	      mu: 20
//	      servers: 2
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"queuecalc/internal/queueing"

	"gopkg.in/yaml.v3"
)

// Scenario is one named request.
type Scenario struct {
	Name       string              `yaml:"name"`
	Model      queueing.Model      `yaml:"model"`
	Parameters queueing.Parameters `yaml:"parameters"`

	// Line is the 1-based position of the entry in its file.
	Line int `yaml:"-"`
}

// Request converts the scenario into an engine request.
func (s Scenario) Request() queueing.Request {
	return queueing.Request{Model: s.Model, Parameters: s.Parameters}
}

type document struct {
	Scenarios []yaml.Node `yaml:"scenarios"`
}

// DuplicateNameError reports two scenarios sharing a name.
type DuplicateNameError struct {
	Name      string
	Line      int
	FirstLine int
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("line %d: duplicate scenario name %q (first defined on line %d)", e.Line, e.Name, e.FirstLine)
}

// Load reads scenarios from a file.
func Load(path string) ([]Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// Parse decodes every document in r. Unknown keys are rejected so a
// misspelled parameter fails loudly instead of defaulting to zero. Unnamed
// scenarios are called scenario-<k>, k counting from 1 across documents.
func Parse(r io.Reader) ([]Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var out []Scenario
	seen := map[string]int{}
	for {
		var doc document
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		for _, node := range doc.Scenarios {
			s, err := decodeStrict(&node)
			if err != nil {
				return nil, err
			}
			s.Line = node.Line
			if s.Name == "" {
				s.Name = fmt.Sprintf("scenario-%d", len(out)+1)
			}
			if s.Model == "" {
				return nil, fmt.Errorf("line %d: scenario %q has no model", s.Line, s.Name)
			}
			if first, ok := seen[s.Name]; ok {
				return nil, &DuplicateNameError{Name: s.Name, Line: s.Line, FirstLine: first}
			}
			seen[s.Name] = s.Line
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return nil, errors.New("no scenarios found")
	}
	return out, nil
}

// decodeStrict decodes one entry with unknown keys rejected. Node.Decode does
// not inherit the decoder's KnownFields setting, so the entry is re-encoded
// and decoded on its own.
func decodeStrict(node *yaml.Node) (Scenario, error) {
	raw, err := yaml.Marshal(node)
	if err != nil {
		return Scenario{}, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)

	var s Scenario
	if err := dec.Decode(&s); err != nil {
		return Scenario{}, fmt.Errorf("scenario on line %d: %w", node.Line, err)
	}
	return s, nil
}

// Requests extracts the engine requests in file order.
func Requests(scenarios []Scenario) []queueing.Request {
	reqs := make([]queueing.Request, len(scenarios))
	for i, s := range scenarios {
		reqs[i] = s.Request()
	}
	return reqs
}
