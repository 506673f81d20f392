// Package skills implements the skill catalog and the per-character skill
// state: ranks, field-experience pools, and pulse groups.
package skills

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/logger"
	"gopkg.in/yaml.v3"
)

// Definition is a catalog entry for one skill. Definitions are immutable
// once the catalog has loaded.
type Definition struct {
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Description string `yaml:"description"`
}

// catalogFile is the structure of the skills.yaml file.
type catalogFile struct {
	Skills []yaml.Node `yaml:"skills"`
}

// Catalog is the process-wide registry of skill definitions. It is loaded
// once at startup and read-only afterward, so it is safe to share across
// every character's engine without locking.
type Catalog struct {
	defs map[string]Definition
}

// NewCatalog creates an empty catalog. An empty catalog is valid: no skill
// can ever be trained, but nothing fails.
func NewCatalog() *Catalog {
	return &Catalog{defs: make(map[string]Definition)}
}

// LoadFromYAML loads skill definitions from a YAML file.
func (c *Catalog) LoadFromYAML(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read skills file: %w", err)
	}
	return c.load(data)
}

// Load reads skill definitions from the given reader.
func (c *Catalog) Load(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read skills config: %w", err)
	}
	return c.load(data)
}

// load parses entries individually so one malformed entry is skipped with a
// warning instead of failing the whole catalog.
func (c *Catalog) load(data []byte) error {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse skills YAML: %w", err)
	}

	for i, node := range file.Skills {
		var def Definition
		if err := node.Decode(&def); err != nil {
			logger.Warning("Skipping malformed skill entry", "index", i, "error", err)
			continue
		}
		if def.Name == "" {
			logger.Warning("Skipping skill entry with no name", "index", i)
			continue
		}
		if def.Category == "" {
			def.Category = "Miscellaneous"
		}
		if _, exists := c.defs[def.Name]; exists {
			logger.Warning("Duplicate skill definition overwritten", "skill", def.Name)
		}
		c.defs[def.Name] = def
	}

	logger.Info("Skill catalog loaded", "count", len(c.defs))
	return nil
}

// Get returns the definition for a skill name.
func (c *Catalog) Get(name string) (Definition, bool) {
	def, ok := c.defs[name]
	return def, ok
}

// Exists returns true if the skill is registered.
func (c *Catalog) Exists(name string) bool {
	_, ok := c.defs[name]
	return ok
}

// Len returns the number of registered skills.
func (c *Catalog) Len() int {
	return len(c.defs)
}

// AllNames returns every registered skill name, sorted.
func (c *Catalog) AllNames() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns every distinct category, sorted.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	for _, def := range c.defs {
		seen[def.Category] = true
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// NamesInCategory returns the sorted skill names in a category.
func (c *Catalog) NamesInCategory(category string) []string {
	var names []string
	for name, def := range c.defs {
		if def.Category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
