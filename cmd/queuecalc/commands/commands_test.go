package commands

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"queuecalc/internal/queueing"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", filepath.Join(dir, "logs"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSolveCommand_JSON(t *testing.T) {
	out, err := run(t, "solve", "-m", "mm1", "--lambda", "3", "--mu", "4", "--n", "0", "-o", "json")
	if err != nil {
		t.Fatalf("solve error = %v", err)
	}

	var res queueing.Result
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if math.Abs(res.L-3) > 1e-12 {
		t.Errorf("L = %v, want 3", res.L)
	}
	if res.Pn == nil || math.Abs(*res.Pn-0.25) > 1e-12 {
		t.Errorf("Pn = %v, want 0.25", res.Pn)
	}
}

func TestSolveCommand_ModelFlagRequired(t *testing.T) {
	flag := solveCmd.Flags().Lookup("model")
	if flag == nil {
		t.Fatal("solve has no --model flag")
	}
	got := flag.Annotations[cobra.BashCompOneRequiredFlag]
	if len(got) != 1 || got[0] != "true" {
		t.Errorf("--model required annotation = %v, want [true]", got)
	}
}

func TestSolveCommand_Unstable(t *testing.T) {
	_, err := run(t, "solve", "-m", "mm1", "--lambda", "5", "--mu", "4", "-o", "table")
	if err == nil || !strings.Contains(err.Error(), "unstable") {
		t.Errorf("solve error = %v, want stability error", err)
	}
}

func TestBatchCommand(t *testing.T) {
	file := filepath.Join(t.TempDir(), "scenarios.yaml")
	content := `scenarios:
  - name: ok
    model: mm1
    parameters: {lambda: 3, mu: 4}
  - name: overloaded
    model: mm1
    parameters: {lambda: 5, mu: 4}
`
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	out, err := run(t, "batch", file, "-o", "table", "-w", "2")
	if err == nil || !strings.Contains(err.Error(), "1 of 2 scenarios failed") {
		t.Errorf("batch error = %v, want one failure", err)
	}
	for _, want := range []string{"SCENARIO", "ok", "overloaded", "stability error"} {
		if !strings.Contains(out, want) {
			t.Errorf("batch output missing %q:\n%s", want, out)
		}
	}
}

func TestModelsCommand(t *testing.T) {
	out, err := run(t, "models")
	if err != nil {
		t.Fatalf("models error = %v", err)
	}
	if !strings.Contains(out, "priority-nonpreemptive") {
		t.Errorf("models output missing priority-nonpreemptive:\n%s", out)
	}
}
