// debugload loads the game data files and prints what the server would
// see, for checking edits to skills.yaml and the class definitions
// without starting the server.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/class"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
)

func main() {
	skillsFile := flag.String("skills", "data/skills.yaml", "Path to skill catalog YAML file")
	classesDir := flag.String("classes", "data/classes", "Path to class definitions directory")
	flag.Parse()

	catalog := skills.NewCatalog()
	if err := catalog.LoadFromYAML(*skillsFile); err != nil {
		fmt.Println("Error loading skill catalog:", err)
		os.Exit(1)
	}
	fmt.Printf("Loaded %d skills\n", catalog.Len())
	for _, category := range catalog.Categories() {
		fmt.Printf("  %s: %v\n", category, catalog.NamesInCategory(category))
	}

	registry := class.NewRegistry()
	if err := registry.LoadDir(*classesDir); err != nil {
		fmt.Println("Error loading classes:", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Checking classes ---")
	for _, name := range registry.Names() {
		cfg, _ := registry.Get(name)
		fmt.Printf("\n%s: %d level entries\n", cfg.ClassName, len(cfg.Levels))

		// Surface skills a class references that the catalog doesn't have;
		// BuildGroups would drop them at runtime with only a log line.
		for tier, tierSkills := range cfg.Skills {
			for _, skillName := range tierSkills {
				if !catalog.Exists(skillName) {
					fmt.Printf("  MISSING from catalog: %s (tier %s)\n", skillName, tier)
				}
			}
		}

		groups := class.BuildGroups(cfg, catalog)
		for placement, group := range groups {
			fmt.Printf("  %s: %d skills\n", placement, group.Len())
		}
	}
}
