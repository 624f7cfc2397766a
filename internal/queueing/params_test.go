package queueing

import (
	"math"
	"testing"
)

func TestParseModel(t *testing.T) {
	tests := []struct {
		input    string
		expected Model
		wantErr  bool
	}{
		{"mm1", MM1, false},
		{" MMS ", MMS, false},
		{"mmsk", MMSK, false},
		{"priority-com", PriorityPreemptive, false},
		{"PRIORITY-SEM", PriorityNonPreemptive, false},
		{"priority-nonpreemptive", PriorityNonPreemptive, false},
		{"mg1", MG1, false},
		{"md1", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseModel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseModel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.expected {
				t.Errorf("ParseModel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestModels_ReturnsCopy(t *testing.T) {
	first := Models()
	if len(first) != 9 {
		t.Fatalf("Models() returned %d entries, want 9", len(first))
	}
	first[0].Name = "changed"
	if Models()[0].Name != "M/M/1" {
		t.Errorf("Models() exposed the internal catalog")
	}
}

func TestResultMetrics(t *testing.T) {
	res, err := Solve(Request{Model: PriorityPreemptive, Parameters: Parameters{Mu: 5, ClassArrivalRates: []float64{1, 1}}})
	if err != nil {
		t.Fatalf("Solve() error = %v", err)
	}

	m := res.Metrics()
	for _, key := range []string{"rho", "L", "lambdaTotal", "capacity", "class1.W", "class2.sigma"} {
		if _, ok := m[key]; !ok {
			t.Errorf("Metrics() missing %q", key)
		}
	}
	if _, ok := m["PK"]; ok {
		t.Errorf("Metrics() reported PK for a priority model")
	}
	if got := m["class1.W"]; math.Abs(got-0.25) > 1e-12 {
		t.Errorf("class1.W = %v, want 0.25", got)
	}
}
