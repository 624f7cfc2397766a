package queueing

import (
	"fmt"
	"strings"
)

// Model is the tag selecting which queueing model a request is solved with.
type Model string

const (
	MM1                   Model = "mm1"
	MMS                   Model = "mms"
	MM1K                  Model = "mm1k"
	MMSK                  Model = "mmsk"
	MM1N                  Model = "mm1n"
	MMSN                  Model = "mmsn"
	MG1                   Model = "mg1"
	PriorityPreemptive    Model = "priority-preemptive"
	PriorityNonPreemptive Model = "priority-nonpreemptive"
)

// ModelInfo describes a model for listings (CLI, HTTP, MCP).
type ModelInfo struct {
	Model       Model    `json:"model"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Parameters  []string `json:"parameters"`
	Queries     []string `json:"queries,omitempty"`
}

var catalog = []ModelInfo{
	{MM1, "M/M/1", "Single server, infinite capacity.", []string{"lambda", "mu"}, []string{"n", "r", "t"}},
	{MMS, "M/M/s", "Multiple servers, infinite capacity.", []string{"lambda", "mu", "servers"}, []string{"n", "r", "t"}},
	{MM1K, "M/M/1/K", "Single server, at most K customers in the system; arrivals beyond K are blocked.", []string{"lambda", "mu", "capacity"}, []string{"n", "r", "t"}},
	{MMSK, "M/M/s/K", "Multiple servers, at most K customers in the system.", []string{"lambda", "mu", "servers", "capacity"}, []string{"n", "r", "t"}},
	{MM1N, "M/M/1/N", "Single server, finite calling population of N sources (machine repair).", []string{"lambda", "mu", "population"}, []string{"n", "r", "t"}},
	{MMSN, "M/M/s/N", "Multiple servers, finite calling population of N sources.", []string{"lambda", "mu", "servers", "population"}, []string{"n", "r", "t"}},
	{MG1, "M/G/1", "Single server with general service time (Pollaczek-Khinchin).", []string{"lambda", "mu", "serviceVariance"}, nil},
	{PriorityPreemptive, "M/M/s priority (preemptive)", "Priority classes, higher classes interrupt service of lower ones.", []string{"mu", "servers", "classArrivalRates"}, nil},
	{PriorityNonPreemptive, "M/M/s priority (non-preemptive)", "Priority classes, service in progress is never interrupted.", []string{"mu", "servers", "classArrivalRates"}, nil},
}

// Models returns the catalog of supported models in a stable order.
func Models() []ModelInfo {
	out := make([]ModelInfo, len(catalog))
	copy(out, catalog)
	return out
}

// ParseModel resolves a tag, accepting the legacy priority route names.
func ParseModel(s string) (Model, error) {
	tag := strings.ToLower(strings.TrimSpace(s))
	switch tag {
	case "priority-com":
		return PriorityPreemptive, nil
	case "priority-sem":
		return PriorityNonPreemptive, nil
	}
	for _, info := range catalog {
		if string(info.Model) == tag {
			return info.Model, nil
		}
	}
	return "", validationErr("", "unknown model %q", s)
}

func (m Model) singleServer() bool {
	return m == MM1 || m == MM1K || m == MM1N || m == MG1
}

func (m Model) priority() bool {
	return m == PriorityPreemptive || m == PriorityNonPreemptive
}

// Parameters is the fully parsed input record of a request. Fields a model
// does not use are ignored.
type Parameters struct {
	Lambda float64 `json:"lambda" yaml:"lambda"`
	Mu     float64 `json:"mu" yaml:"mu"`

	Servers    int `json:"servers,omitempty" yaml:"servers,omitempty"`
	Capacity   int `json:"capacity,omitempty" yaml:"capacity,omitempty"`
	Population int `json:"population,omitempty" yaml:"population,omitempty"`

	ServiceVariance   *float64  `json:"serviceVariance,omitempty" yaml:"serviceVariance,omitempty"`
	ClassArrivalRates []float64 `json:"classArrivalRates,omitempty" yaml:"classArrivalRates,omitempty"`

	// Conditional queries, all optional.
	PointCount    *int     `json:"n,omitempty" yaml:"n,omitempty"`
	TailThreshold *int     `json:"r,omitempty" yaml:"r,omitempty"`
	TimeThreshold *float64 `json:"t,omitempty" yaml:"t,omitempty"`
}

// servers returns the effective server count for the model.
func (p Parameters) servers(m Model) int {
	if p.Servers == 0 && (m.singleServer() || m.priority()) {
		return 1
	}
	return p.Servers
}

// arrivalRate returns λ, or Σλᵢ for priority models.
func (p Parameters) arrivalRate(m Model) float64 {
	if !m.priority() {
		return p.Lambda
	}
	total := 0.0
	for _, l := range p.ClassArrivalRates {
		total += l
	}
	return total
}

func (p Parameters) hasQuery() bool {
	return p.PointCount != nil || p.TailThreshold != nil || p.TimeThreshold != nil
}

func (p Parameters) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "{lambda=%g, mu=%g", p.Lambda, p.Mu)
	if p.Servers != 0 {
		fmt.Fprintf(&b, ", s=%d", p.Servers)
	}
	if p.Capacity != 0 {
		fmt.Fprintf(&b, ", K=%d", p.Capacity)
	}
	if p.Population != 0 {
		fmt.Fprintf(&b, ", N=%d", p.Population)
	}
	if p.ServiceVariance != nil {
		fmt.Fprintf(&b, ", var=%g", *p.ServiceVariance)
	}
	if len(p.ClassArrivalRates) > 0 {
		fmt.Fprintf(&b, ", classes=%v", p.ClassArrivalRates)
	}
	b.WriteString("}")
	return b.String()
}

// Request pairs a model tag with its parameters.
type Request struct {
	Model      Model      `json:"model" yaml:"model"`
	Parameters Parameters `json:"parameters" yaml:"parameters"`
}
