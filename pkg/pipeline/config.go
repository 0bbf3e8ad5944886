package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/natefinch/atomic"
)

// Config supplies the directory and path defaults shared by every pipeline
// step. Command-line flags win over config values.
type Config struct {
	SourceDir  string `json:"source_dir"`
	CleanDir   string `json:"clean_dir"`
	OutputDir  string `json:"output_dir"`
	CorpusPath string `json:"corpus_path"`
	DBPath     string `json:"db_path"`
	LogDir     string `json:"log_dir"`
	Top        int    `json:"top"`
	TimeoutSec int    `json:"timeout_sec"`
}

// DefaultConfig returns the configuration used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		SourceDir:  "Unprocessed",
		CleanDir:   "examples/cleaned",
		OutputDir:  "Output",
		CorpusPath: "Output/ALL_TEXT.txt",
		DBPath:     "Output/stats.db",
		LogDir:     "logs",
		Top:        50,
		TimeoutSec: 300,
	}
}

// LoadConfig reads the pipeline configuration from a JSON file at the given
// path. If the file doesn't exist, it creates one with default values.
func LoadConfig(path string) (*Config, error) {
	config := DefaultConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			var data []byte
			data, err = json.MarshalIndent(config, "", "  ")
			if err != nil {
				return nil, fmt.Errorf("failed to marshal default config: %w", err)
			}
			if err = atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
				// The pipeline can still run with in-memory defaults.
				fmt.Printf("warning: failed to write default config file: %v\n", err)
			}
			return config, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err = json.Unmarshal(file, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return config, nil
}
