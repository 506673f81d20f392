package skills

import (
	"strings"
	"testing"
)

const testCatalogYAML = `skills:
  - name: Long Blades
    category: Weapons
    description: Swords and similar edged weapons.
  - name: Shields
    category: Armor
  - name: Climbing
    category: Survival
  - name: Alchemy
    category: Crafting
`

func loadTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	if err := c.Load(strings.NewReader(testCatalogYAML)); err != nil {
		t.Fatalf("failed to load test catalog: %v", err)
	}
	return c
}

func TestCatalogLoad(t *testing.T) {
	c := loadTestCatalog(t)

	if c.Len() != 4 {
		t.Errorf("catalog has %d skills, want 4", c.Len())
	}

	def, ok := c.Get("Long Blades")
	if !ok {
		t.Fatal("Long Blades should exist")
	}
	if def.Category != "Weapons" {
		t.Errorf("category = %q, want Weapons", def.Category)
	}
	if def.Description == "" {
		t.Error("description should be loaded")
	}

	if !c.Exists("Shields") {
		t.Error("Shields should exist")
	}
	if c.Exists("Basket Weaving") {
		t.Error("unregistered skill should not exist")
	}
}

func TestCatalogSkipsMalformedEntries(t *testing.T) {
	content := `skills:
  - name: Climbing
    category: Survival
  - category: Broken
    description: entry with no name
  - "just a string"
  - name: Swimming
    category: Survival
`
	c := NewCatalog()
	if err := c.Load(strings.NewReader(content)); err != nil {
		t.Fatalf("load should succeed despite malformed entries: %v", err)
	}

	if c.Len() != 2 {
		t.Errorf("catalog has %d skills, want 2 valid ones", c.Len())
	}
	if !c.Exists("Climbing") || !c.Exists("Swimming") {
		t.Error("valid entries around malformed ones should load")
	}
}

func TestCatalogDuplicateOverwrites(t *testing.T) {
	content := `skills:
  - name: Climbing
    category: Survival
    description: first
  - name: Climbing
    category: Athletics
    description: second
`
	c := NewCatalog()
	if err := c.Load(strings.NewReader(content)); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if c.Len() != 1 {
		t.Errorf("catalog has %d skills, want 1", c.Len())
	}
	def, _ := c.Get("Climbing")
	if def.Category != "Athletics" {
		t.Errorf("duplicate should overwrite: category = %q, want Athletics", def.Category)
	}
}

func TestCatalogEmptyIsValid(t *testing.T) {
	c := NewCatalog()
	if err := c.Load(strings.NewReader("skills: []")); err != nil {
		t.Fatalf("empty catalog should load: %v", err)
	}
	if c.Len() != 0 {
		t.Errorf("empty catalog has %d skills", c.Len())
	}
	if names := c.AllNames(); len(names) != 0 {
		t.Errorf("AllNames on empty catalog = %v", names)
	}
}

func TestCatalogDefaultCategory(t *testing.T) {
	c := NewCatalog()
	if err := c.Load(strings.NewReader("skills:\n  - name: Whittling\n")); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	def, _ := c.Get("Whittling")
	if def.Category != "Miscellaneous" {
		t.Errorf("category = %q, want Miscellaneous default", def.Category)
	}
}

func TestCatalogAllNamesSorted(t *testing.T) {
	c := loadTestCatalog(t)
	names := c.AllNames()
	want := []string{"Alchemy", "Climbing", "Long Blades", "Shields"}
	if len(names) != len(want) {
		t.Fatalf("AllNames returned %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("AllNames[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestCatalogCategories(t *testing.T) {
	c := loadTestCatalog(t)
	categories := c.Categories()
	want := []string{"Armor", "Crafting", "Survival", "Weapons"}
	if len(categories) != len(want) {
		t.Fatalf("Categories returned %v, want %v", categories, want)
	}
	for i := range want {
		if categories[i] != want[i] {
			t.Errorf("Categories[%d] = %q, want %q", i, categories[i], want[i])
		}
	}

	inWeapons := c.NamesInCategory("Weapons")
	if len(inWeapons) != 1 || inWeapons[0] != "Long Blades" {
		t.Errorf("NamesInCategory(Weapons) = %v, want [Long Blades]", inWeapons)
	}
}
