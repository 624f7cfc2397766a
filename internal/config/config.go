package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// AppConfig holds the complete application configuration.
type AppConfig struct {
	DataPath string
	LogDir   string

	// HTTPAddr is the listen address of the serve command.
	HTTPAddr   string
	CORSOrigin string

	BatchWorkers int
	MaxStates    int
}

// Load loads the configuration from .env files and environment variables.
func Load() (*AppConfig, error) {
	// 1. Try to load from the executable's directory (highest priority for MCP servers)
	exePath, err := os.Executable()
	exeDir := ""
	if err == nil {
		exeDir = filepath.Dir(exePath)
		envPath := filepath.Join(exeDir, ".env")
		if err := godotenv.Load(envPath); err == nil {
			log.Debug().Str("path", envPath).Msg("Loaded configuration from binary directory")
		}
	}

	// 2. Fallback to current working directory
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found in working directory, relying on environment variables or binary-relative .env")
	}

	// 3. Resolve data paths
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		if exeDir != "" {
			dataPath = exeDir
		} else {
			dataPath = "."
		}
	}

	logDir := getEnv("LOGS_FOLDER", filepath.Join(dataPath, "logs"))
	if err := os.MkdirAll(logDir, 0755); err != nil {
		log.Warn().Err(err).Str("path", logDir).Msg("Failed to create log directory")
	}

	workers, err := getEnvInt("QUEUECALC_BATCH_WORKERS", runtime.NumCPU())
	if err != nil {
		return nil, err
	}
	maxStates, err := getEnvInt("QUEUECALC_MAX_STATES", 100000)
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		DataPath:     dataPath,
		LogDir:       logDir,
		HTTPAddr:     getEnv("QUEUECALC_HTTP_ADDR", ":5000"),
		CORSOrigin:   getEnv("QUEUECALC_CORS_ORIGIN", "http://localhost:5173"),
		BatchWorkers: workers,
		MaxStates:    maxStates,
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

// getEnvInt rejects malformed and non-positive values instead of silently
// falling back, since a typo here changes solver limits.
func getEnvInt(key string, fallback int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return n, nil
}
