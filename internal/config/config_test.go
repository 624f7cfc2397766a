package config

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	t.Setenv("LOGS_FOLDER", "")
	t.Setenv("QUEUECALC_HTTP_ADDR", "")
	t.Setenv("QUEUECALC_CORS_ORIGIN", "")
	t.Setenv("QUEUECALC_BATCH_WORKERS", "")
	t.Setenv("QUEUECALC_MAX_STATES", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DataPath != dir {
		t.Errorf("DataPath = %q, want %q", cfg.DataPath, dir)
	}
	if want := filepath.Join(dir, "logs"); cfg.LogDir != want {
		t.Errorf("LogDir = %q, want %q", cfg.LogDir, want)
	}
	if cfg.HTTPAddr != ":5000" {
		t.Errorf("HTTPAddr = %q, want :5000", cfg.HTTPAddr)
	}
	if cfg.CORSOrigin != "http://localhost:5173" {
		t.Errorf("CORSOrigin = %q, want http://localhost:5173", cfg.CORSOrigin)
	}
	if cfg.BatchWorkers != runtime.NumCPU() {
		t.Errorf("BatchWorkers = %d, want %d", cfg.BatchWorkers, runtime.NumCPU())
	}
	if cfg.MaxStates != 100000 {
		t.Errorf("MaxStates = %d, want 100000", cfg.MaxStates)
	}
}

func TestLoad_Overrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	t.Setenv("QUEUECALC_HTTP_ADDR", "127.0.0.1:8080")
	t.Setenv("QUEUECALC_BATCH_WORKERS", "3")
	t.Setenv("QUEUECALC_MAX_STATES", "500")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.HTTPAddr != "127.0.0.1:8080" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.BatchWorkers != 3 {
		t.Errorf("BatchWorkers = %d, want 3", cfg.BatchWorkers)
	}
	if cfg.MaxStates != 500 {
		t.Errorf("MaxStates = %d, want 500", cfg.MaxStates)
	}
}

func TestLoad_RejectsMalformedInts(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"QUEUECALC_BATCH_WORKERS", "many"},
		{"QUEUECALC_BATCH_WORKERS", "0"},
		{"QUEUECALC_MAX_STATES", "-5"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			dir := t.TempDir()
			t.Chdir(dir)
			t.Setenv("DATA_PATH", dir)
			t.Setenv(tt.key, tt.value)

			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q succeeded, want error", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_DotEnvQuoting(t *testing.T) {
	dir := t.TempDir()
	content := `QUEUECALC_CORS_ORIGIN='http://a "b"'` + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)
	t.Setenv("DATA_PATH", dir)
	// registered with t.Setenv so the value godotenv exports is cleared afterwards
	t.Setenv("QUEUECALC_CORS_ORIGIN", "")
	os.Unsetenv("QUEUECALC_CORS_ORIGIN")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := `http://a "b"`
	if cfg.CORSOrigin != expected {
		t.Errorf("CORSOrigin = %q, want %q", cfg.CORSOrigin, expected)
	}
}
