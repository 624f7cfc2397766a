package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog/log"
)

func TestInit_WritesRotatingFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	t.Setenv("LOGS_FOLDER", dir)

	got, err := Init(Options{Quiet: true})
	if err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got != dir {
		t.Errorf("Init() dir = %q, want %q", got, dir)
	}

	log.Warn().Str("model", "mm1").Msg("solver warning")

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if !strings.Contains(string(data), `"model":"mm1"`) {
		t.Errorf("log file does not contain structured field, got %s", data)
	}
}

func TestInit_UnwritableDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(file, nil, 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("LOGS_FOLDER", filepath.Join(file, "logs"))

	if _, err := Init(Options{}); err == nil {
		t.Error("Init() succeeded for a path below a regular file, want error")
	}
}
