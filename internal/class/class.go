// Package class loads class configuration: which skills a class trains, the
// placement tier of each, and the class's level requirement table.
package class

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"gopkg.in/yaml.v3"
)

// RequirementConfig is one skill-rank requirement in a level entry.
type RequirementConfig struct {
	Skill string `yaml:"skill"`
	Rank  int    `yaml:"rank"`
	Bonus bool   `yaml:"bonus"`
}

// LevelConfig is one level entry in a class file.
type LevelConfig struct {
	TDPReward    int                 `yaml:"tdp_reward"`
	Requirements []RequirementConfig `yaml:"requirements"`
}

// Config is a class definition loaded from YAML. Skills maps placement tier
// names to the skills placed there; Levels maps level numbers to their
// requirement tables.
type Config struct {
	ClassName   string              `yaml:"class_name"`
	Description string              `yaml:"description"`
	Skills      map[string][]string `yaml:"skills"`
	Levels      map[int]LevelConfig `yaml:"levels"`
}

// LoadFromYAML loads a single class definition from a YAML file.
func LoadFromYAML(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read class file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse class YAML: %w", err)
	}
	if cfg.ClassName == "" {
		return nil, fmt.Errorf("class file %s has no class_name", filename)
	}

	return &cfg, nil
}

// Registry holds every loaded class, keyed by lowercased class name.
type Registry struct {
	classes map[string]*Config
}

// NewRegistry creates an empty class registry.
func NewRegistry() *Registry {
	return &Registry{classes: make(map[string]*Config)}
}

// LoadDir loads every .yaml/.yml file in a directory into the registry.
// Files that fail to parse are skipped with a warning so one bad class
// doesn't take the server down.
func (r *Registry) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read class directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}

		cfg, err := LoadFromYAML(filepath.Join(dir, entry.Name()))
		if err != nil {
			logger.Warning("Skipping unloadable class file", "file", entry.Name(), "error", err)
			continue
		}
		r.Add(cfg)
	}

	logger.Info("Class registry loaded", "count", len(r.classes))
	return nil
}

// Add registers a class, overwriting any previous definition of the same
// name.
func (r *Registry) Add(cfg *Config) {
	key := strings.ToLower(cfg.ClassName)
	if _, exists := r.classes[key]; exists {
		logger.Warning("Duplicate class definition overwritten", "class", cfg.ClassName)
	}
	r.classes[key] = cfg
}

// Get returns a class config by name, case-insensitive.
func (r *Registry) Get(name string) (*Config, bool) {
	cfg, ok := r.classes[strings.ToLower(strings.TrimSpace(name))]
	return cfg, ok
}

// Names returns every registered class name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.classes))
	for _, cfg := range r.classes {
		names = append(names, cfg.ClassName)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered classes.
func (r *Registry) Len() int {
	return len(r.classes)
}
