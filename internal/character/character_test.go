package character

import (
	"strings"
	"testing"
	"time"

	"github.com/lawnchairsociety/stormhavenmud/server/internal/class"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/progression"
	"github.com/lawnchairsociety/stormhavenmud/server/internal/skills"
)

func testCatalog(t *testing.T) *skills.Catalog {
	t.Helper()
	yaml := `skills:
  - name: "Long Blades"
    category: "Weapons"
  - name: "Shields"
    category: "Defense"
  - name: "Climbing"
    category: "Survival"
`
	catalog := skills.NewCatalog()
	if err := catalog.Load(strings.NewReader(yaml)); err != nil {
		t.Fatalf("loading test catalog: %v", err)
	}
	return catalog
}

func testClassConfig() *class.Config {
	return &class.Config{
		ClassName: "Warrior",
		Skills: map[string][]string{
			"primary":  {"Long Blades", "Shields"},
			"tertiary": {"Climbing"},
		},
		Levels: map[int]class.LevelConfig{
			2: {
				TDPReward:    10,
				Requirements: []class.RequirementConfig{{Skill: "Long Blades", Rank: 2}},
			},
			3: {
				TDPReward:    15,
				Requirements: []class.RequirementConfig{{Skill: "Long Blades", Rank: 4}},
			},
			4: {
				TDPReward:    20,
				Requirements: []class.RequirementConfig{{Skill: "Long Blades", Rank: 50}},
			},
		},
	}
}

func newTestCharacter(t *testing.T) *Character {
	t.Helper()
	c, err := New("Tester", testClassConfig(), testCatalog(t), progression.DefaultParams())
	if err != nil {
		t.Fatalf("creating character: %v", err)
	}
	return c
}

func TestNewValidation(t *testing.T) {
	if _, err := New("", testClassConfig(), testCatalog(t), progression.DefaultParams()); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := New("Tester", nil, testCatalog(t), progression.DefaultParams()); err == nil {
		t.Error("expected error for nil class config")
	}
}

func TestNewBuildsGroupsAndLadder(t *testing.T) {
	c := newTestCharacter(t)

	if !c.AddFieldExp("Long Blades", 100, "test") {
		t.Error("Long Blades should be placed")
	}
	if !c.AddFieldExp("Climbing", 100, "test") {
		t.Error("Climbing should be placed")
	}
	if c.AddFieldExp("Basket Weaving", 100, "test") {
		t.Error("unplaced skill should be rejected")
	}
	if c.Level() != 1 {
		t.Errorf("new character level = %d, want 1", c.Level())
	}
	if c.TDP.Total() != 0 {
		t.Errorf("new character TDP = %d, want 0", c.TDP.Total())
	}
}

func TestTickPartialDrain(t *testing.T) {
	c := newTestCharacter(t)
	now := time.Now()

	c.Engine.AddFieldExp(now, "Long Blades", 250, "test")
	deltas := c.Tick(now.Add(time.Hour))

	// floor(0.05 * 250) = 12 bits, well short of the 200 a rank costs.
	if len(deltas) != 0 {
		t.Errorf("partial drain produced %d deltas, want 0", len(deltas))
	}
	if got := c.Engine.FieldExp("Long Blades"); got != 238 {
		t.Errorf("pool after pulse = %d, want 238", got)
	}
	if c.TDP.Total() != 0 {
		t.Errorf("TDP after zero-rank pulse = %d, want 0", c.TDP.Total())
	}
}

func TestOfflineDrainPaysTDPAndAdvances(t *testing.T) {
	c := newTestCharacter(t)
	now := time.Now()

	c.Engine.AddFieldExp(now.Add(-24*time.Hour), "Long Blades", 1000, "test")
	c.OnLogout(now.Add(-24 * time.Hour))

	deltas := c.OnLogin(now)
	if len(deltas) != 1 {
		t.Fatalf("expected 1 delta, got %d", len(deltas))
	}

	// 24h offline fully drains the 1000-bit pool: ranks 1..4 cost
	// 200+201+202+203 = 806, leaving 194/204 fractional.
	if got := c.IntRank("Long Blades"); got != 4 {
		t.Errorf("rank after catch-up = %d, want 4", got)
	}

	// 4 ranks in the lowest band pay 1 TDP each, then levels 2 and 3
	// cascade from the single check for 10 + 15 more.
	if c.Level() != 3 {
		t.Errorf("level after catch-up = %d, want 3", c.Level())
	}
	if c.TDP.Available != 29 {
		t.Errorf("TDP after catch-up = %d, want 29", c.TDP.Available)
	}
}

func TestLevelProgress(t *testing.T) {
	c := newTestCharacter(t)

	percent, unmet := c.LevelProgress()
	if percent != 0 {
		t.Errorf("untrained progress = %.1f, want 0", percent)
	}
	if len(unmet) != 1 || unmet[0].Skill != "Long Blades" {
		t.Errorf("unmet = %+v, want Long Blades", unmet)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	c := newTestCharacter(t)
	now := time.Now().Truncate(time.Second)

	c.Engine.AddFieldExp(now, "Long Blades", 500, "test")
	c.Engine.AddFieldExp(now, "Climbing", 75, "test")
	c.Attributes.Set("intelligence", 80)
	c.TDP.CreditTDP(12)
	if !c.TDP.Spend(5) {
		t.Fatal("spend should succeed")
	}
	c.Ladder.SetLevel(3)
	c.OnLogout(now)

	snap := c.Snapshot()

	cfg := testClassConfig()
	restored := Restore(snap, class.BuildLadder("Tester", cfg), progression.DefaultParams())

	if restored.Name != "Tester" || restored.ClassName != "Warrior" {
		t.Errorf("identity = %s/%s, want Tester/Warrior", restored.Name, restored.ClassName)
	}
	if restored.Level() != 3 {
		t.Errorf("restored level = %d, want 3", restored.Level())
	}
	if restored.TDP.Available != 7 || restored.TDP.Spent != 5 {
		t.Errorf("restored TDP = %d/%d, want 7/5", restored.TDP.Available, restored.TDP.Spent)
	}
	if got, _ := restored.Attributes.Attribute("intelligence"); got != 80 {
		t.Errorf("restored intelligence = %d, want 80", got)
	}
	if got := restored.Engine.FieldExp("Long Blades"); got != 500 {
		t.Errorf("restored pool = %d, want 500", got)
	}
	if got := restored.Engine.FieldExp("Climbing"); got != 75 {
		t.Errorf("restored pool = %d, want 75", got)
	}
	if restored.Engine.LastLogout == nil || !restored.Engine.LastLogout.Equal(now) {
		t.Errorf("restored LastLogout = %v, want %v", restored.Engine.LastLogout, now)
	}

	// Pulse timers survive, so the restored character pulses on the same
	// cadence the original would have.
	group := restored.Engine.Group(skills.PlacementPrimary)
	if group == nil || group.LastPulseTime == nil || !group.LastPulseTime.Equal(now) {
		t.Error("restored primary group lost its pulse timer")
	}
}

func TestRestoreWithoutLadder(t *testing.T) {
	c := newTestCharacter(t)
	snap := c.Snapshot()

	restored := Restore(snap, nil, progression.DefaultParams())
	if restored.Level() != 1 {
		t.Errorf("restored level = %d, want 1", restored.Level())
	}
	if restored.CheckAdvance() {
		t.Error("empty ladder should never advance")
	}
}
