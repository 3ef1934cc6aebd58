// Package config provides configuration loading and validation for the
// matching service and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents service configuration loadable from a JSON file, with
// environment variables taking precedence. All fields are optional; missing
// values use defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty"` // HTTP listen port

	// Backends
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	ChromaURL   string `json:"chroma_url,omitempty"`   // Chroma vector store base URL
	RedisAddr   string `json:"redis_addr,omitempty"`   // Redis address for the embedding cache, empty disables caching
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key for embeddings

	// Retrieval
	JobCollection       string `json:"job_collection,omitempty"`       // Vector collection holding job documents
	CandidateCollection string `json:"candidate_collection,omitempty"` // Vector collection holding candidate documents
	WeightsFile         string `json:"weights_file,omitempty"`         // Optional scoring weight calibration file

	// Behavior
	Verbose bool `json:"verbose,omitempty"`  // Print detailed debug information
	LogJSON bool `json:"log_json,omitempty"` // Emit JSON-structured logs
}

// Defaults returns the baseline configuration.
func Defaults() Config {
	return Config{
		Port:                8080,
		ChromaURL:           "http://localhost:8000",
		JobCollection:       "jobs",
		CandidateCollection: "candidates",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv overlays environment variables onto the configuration. Environment
// values win over file values.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT: %v", err)
		}
		c.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("CHROMA_URL"); v != "" {
		c.ChromaURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("JOB_COLLECTION"); v != "" {
		c.JobCollection = v
	}
	if v := os.Getenv("CANDIDATE_COLLECTION"); v != "" {
		c.CandidateCollection = v
	}
	if v := os.Getenv("WEIGHTS_FILE"); v != "" {
		c.WeightsFile = v
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 1 and 65535, got %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("config error: 'database_url' is required")
	}
	if c.ChromaURL == "" {
		return fmt.Errorf("config error: 'chroma_url' is required")
	}
	if c.WeightsFile != "" {
		if _, err := os.Stat(c.WeightsFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: weights file not found: %s", c.WeightsFile)
		}
	}
	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from
// defaults. This is used to apply config file values over the baseline.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.ChromaURL == "" {
		result.ChromaURL = defaults.ChromaURL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.JobCollection == "" {
		result.JobCollection = defaults.JobCollection
	}
	if result.CandidateCollection == "" {
		result.CandidateCollection = defaults.CandidateCollection
	}
	if result.WeightsFile == "" {
		result.WeightsFile = defaults.WeightsFile
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
