package config

import (
	"os"

	"github.com/On-Jun9/ShutterSort/pkg/types"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Source          string              `yaml:"source" json:"source"`
	Dest            string              `yaml:"dest" json:"dest"`
	Copy            bool                `yaml:"copy" json:"copy"`
	DryRun          bool                `yaml:"dry_run" json:"dry_run"`
	Recursive       bool                `yaml:"recursive" json:"recursive"`
	MaxDepth        int                 `yaml:"max_depth" json:"max_depth"`
	Verbose         bool                `yaml:"verbose" json:"verbose"`
	PreferMetadata  bool                `yaml:"prefer_metadata" json:"prefer_metadata"`
	CountExtensions bool                `yaml:"count_extensions" json:"count_extensions"`
	HashAlgorithm   types.HashAlgorithm `yaml:"hash_algorithm" json:"hash_algorithm"`
	UseExifTool     bool                `yaml:"use_exiftool" json:"use_exiftool"`
	VerifyCopies    bool                `yaml:"verify_copies" json:"verify_copies"`
	LogFile         string              `yaml:"log_file" json:"log_file"`
	LogJSON         bool                `yaml:"log_json" json:"log_json"`
}

func DefaultConfig() *Config {
	return &Config{
		Source:        ".",
		Dest:          ".",
		HashAlgorithm: types.HashSHA1,
	}
}

func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Source == "" {
		c.Source = "."
	}
	if c.Dest == "" {
		c.Dest = "."
	}
	if c.MaxDepth < 0 {
		return &ValidationError{Field: "max_depth", Message: "max depth must not be negative"}
	}

	switch c.HashAlgorithm {
	case "":
		c.HashAlgorithm = types.HashSHA1
	case types.HashSHA1, types.HashXXHash:
	default:
		return &ValidationError{Field: "hash_algorithm", Message: "unknown hash algorithm: " + string(c.HashAlgorithm)}
	}

	if c.LogJSON && c.LogFile == "" {
		return &ValidationError{Field: "log_json", Message: "JSON logging requires a log file"}
	}

	info, err := os.Stat(c.Source)
	if err != nil {
		return &ValidationError{Field: "source", Message: err.Error()}
	}
	if !info.IsDir() {
		return &ValidationError{Field: "source", Message: "source must be a directory"}
	}

	return nil
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
