package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/circle-teams/pkg/core/model"
)

// DefaultConfigFile is looked up when no path is given
const DefaultConfigFile = "config.json"

// CategoryConfig lists the circles of one study programme
type CategoryConfig struct {
	Name    string `yaml:"Name" validate:"required"`
	Circles []int  `yaml:"Kruhy" validate:"dive,min=0,max=99"`
}

// ObjectiveWeights overrides the weights of the two objective terms
type ObjectiveWeights struct {
	Teams      int `yaml:"Teams,omitempty" validate:"min=0"`
	Categories int `yaml:"Categories,omitempty" validate:"min=0"`
}

// Config represents the distribution configuration. A JSON config.json
// parses as YAML unchanged.
type Config struct {
	Categories      []CategoryConfig `yaml:"Obory" validate:"required,min=1,dive"`
	TeamCounts      []int            `yaml:"Possible Teams counts" validate:"dive,min=1"`
	SubteamSizes    []int            `yaml:"Possible Teams sizes" validate:"dive,min=1"`
	SubteamCount    int              `yaml:"Subteams count" validate:"required,min=1"`
	TeamNames       []string         `yaml:"Teams names,omitempty"`
	SolverTimeLimit time.Duration    `yaml:"Solver time limit,omitempty"`
	Parallelism     int              `yaml:"Parallelism,omitempty" validate:"min=0"`
	Weights         ObjectiveWeights `yaml:"Objective weights,omitempty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from config.json
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(data)
}

// Parse decodes and validates a YAML or JSON configuration document
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and the category catalogue
func Validate(cfg *Config) error {
	// Run struct validation
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.SolverTimeLimit < 0 {
		return fmt.Errorf("config validation failed: negative solver time limit %s", cfg.SolverTimeLimit)
	}

	seen := make(map[int]string)
	for i, cat := range cfg.Categories {
		if _, err := model.ParseCategory(cat.Name); err != nil {
			return fmt.Errorf("invalid category in Obory[%d]: %w", i, err)
		}
		for _, id := range cat.Circles {
			if other, dup := seen[id]; dup {
				return fmt.Errorf("circle %d is listed under both %q and %q", id, other, cat.Name)
			}
			seen[id] = cat.Name
		}
	}

	if len(cfg.TeamNames) > 0 && len(cfg.TeamCounts) > 0 {
		if largest := slices.Max(cfg.TeamCounts); len(cfg.TeamNames) < largest {
			return fmt.Errorf("%d team names given but up to %d teams may be used", len(cfg.TeamNames), largest)
		}
	}

	return nil
}

// CategoryCatalogue returns the configured categories in configuration order
func (c *Config) CategoryCatalogue() []model.Category {
	out := make([]model.Category, 0, len(c.Categories))
	for _, cat := range c.Categories {
		category, err := model.ParseCategory(cat.Name)
		if err != nil {
			continue
		}
		if !slices.Contains(out, category) {
			out = append(out, category)
		}
	}
	return out
}

// TeamName returns the display name of the team at index, falling back to its number
func (c *Config) TeamName(index int) string {
	if index >= 0 && index < len(c.TeamNames) {
		return c.TeamNames[index]
	}
	return fmt.Sprintf("Team %d", index+1)
}

// findConfigFile searches for config.json in current directory and home directory
func findConfigFile() (string, error) {
	// Check current directory
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, DefaultConfigFile)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
